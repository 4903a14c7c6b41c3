// Package errclass maps transport errors onto the three classes the
// controller cares about: cancellation, connectivity problems, and
// everything else.
//
// The classification first looks at typed errors (context errors,
// [*net.DNSError], [syscall.Errno], [net.Error]) and only then falls
// back to matching well-known suffixes of the error string, because
// several layers of the standard library and of third-party transports
// flatten errors into strings.
package errclass

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"
)

// Class is the class of a transport error.
type Class int

const (
	// ClassNone means that there was no error.
	ClassNone = Class(iota)

	// ClassCancelled means that the caller aborted the operation.
	ClassCancelled

	// ClassConnection means that we could not reach the server or
	// lost the connection (DNS, connect, reset, timeout).
	ClassConnection

	// ClassUnknown means any other error.
	ClassUnknown
)

// String implements fmt.Stringer.
func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassCancelled:
		return "cancelled"
	case ClassConnection:
		return "connection"
	case ClassUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Classify returns the class of err and a failure string describing it.
// A nil err yields ClassNone and an empty failure.
func Classify(err error) (Class, string) {
	if err == nil {
		return ClassNone, ""
	}

	// Cancellation comes first: a cancelled request often also carries
	// a connection-looking error string that we must not report.
	if errors.Is(err, context.Canceled) {
		return ClassCancelled, FailureInterrupted
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassConnection, FailureGenericTimeoutError
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return ClassConnection, FailureDNSNXDOMAINError
		case dnsErr.IsTimeout:
			return ClassConnection, FailureGenericTimeoutError
		case dnsErr.IsTemporary:
			return ClassConnection, FailureDNSTemporaryError
		}
	}

	if failure := classifySyscallError(err); failure != "" {
		return ClassConnection, failure
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ClassConnection, FailureEOFError
	}
	if errors.Is(err, net.ErrClosed) {
		return ClassConnection, FailureConnectionAlreadyClosed
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassConnection, FailureGenericTimeoutError
	}

	return classifyWithStringSuffix(err)
}

// classifySyscallError maps the errno values that indicate a
// connectivity problem. It returns an empty string otherwise.
func classifySyscallError(err error) string {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return ""
	}
	switch errno {
	case syscall.ECONNREFUSED:
		return FailureConnectionRefused
	case syscall.ECONNRESET:
		return FailureConnectionReset
	case syscall.ECONNABORTED:
		return FailureConnectionAborted
	case syscall.EHOSTUNREACH:
		return FailureHostUnreachable
	case syscall.ENETUNREACH:
		return FailureNetworkUnreachable
	case syscall.ENETDOWN:
		return FailureNetworkDown
	case syscall.ENOTCONN:
		return FailureNotConnected
	case syscall.ETIMEDOUT:
		return FailureTimedOut
	}
	return ""
}

// classifyWithStringSuffix is the last resort: it inspects the error
// string. Unmatched errors are ClassUnknown.
func classifyWithStringSuffix(err error) (Class, string) {
	s := err.Error()
	switch {
	case strings.HasSuffix(s, "operation was canceled"):
		return ClassCancelled, FailureInterrupted
	case strings.HasSuffix(s, "context deadline exceeded"),
		strings.HasSuffix(s, "i/o timeout"),
		strings.HasSuffix(s, "TLS handshake timeout"),
		strings.HasSuffix(s, "Client.Timeout exceeded while awaiting headers)"):
		return ClassConnection, FailureGenericTimeoutError
	case strings.HasSuffix(s, DNSNoSuchHostSuffix):
		return ClassConnection, FailureDNSNXDOMAINError
	case strings.HasSuffix(s, DNSServerMisbehavingSuffix):
		return ClassConnection, FailureDNSServerMisbehaving
	case strings.HasSuffix(s, "connection refused"):
		return ClassConnection, FailureConnectionRefused
	case strings.HasSuffix(s, "connection reset by peer"):
		return ClassConnection, FailureConnectionReset
	case strings.HasSuffix(s, "network is unreachable"):
		return ClassConnection, FailureNetworkUnreachable
	case strings.HasSuffix(s, "no route to host"):
		return ClassConnection, FailureHostUnreachable
	case strings.HasSuffix(s, "use of closed network connection"):
		return ClassConnection, FailureConnectionAlreadyClosed
	case strings.HasSuffix(s, "EOF"):
		return ClassConnection, FailureEOFError
	}
	return ClassUnknown, fmt.Sprintf("unknown_failure: %s", s)
}
