package errclass

// Failure strings. They follow the naming used across the codebase for
// network failures so that logs remain greppable.
const (
	FailureConnectionAborted       = "connection_aborted"
	FailureConnectionAlreadyClosed = "connection_already_closed"
	FailureConnectionRefused       = "connection_refused"
	FailureConnectionReset         = "connection_reset"
	FailureDNSNXDOMAINError        = "dns_nxdomain_error"
	FailureDNSServerMisbehaving    = "dns_server_misbehaving"
	FailureDNSTemporaryError       = "dns_temporary_error"
	FailureEOFError                = "eof_error"
	FailureGenericTimeoutError     = "generic_timeout_error"
	FailureHostUnreachable         = "host_unreachable"
	FailureInterrupted             = "interrupted"
	FailureNetworkDown             = "network_down"
	FailureNetworkUnreachable      = "network_unreachable"
	FailureNotConnected            = "not_connected"
	FailureTimedOut                = "timed_out"
)

// We use these strings to string-match errors in the standard library.
const (
	DNSNoSuchHostSuffix        = "no such host"
	DNSServerMisbehavingSuffix = "server misbehaving"
)
