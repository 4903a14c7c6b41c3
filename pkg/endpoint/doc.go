// Package endpoint models REST API calls as declarative values.
//
// A [Descriptor] describes one call: where it goes, which parameters and
// body it carries, which status codes and media types are acceptable, and
// how to decode the response body into a typed payload. A [Controller]
// turns descriptors into wire requests, dispatches them through a
// [Transport], validates the responses with a [Validator], and delivers
// typed results through a completion function.
//
// # Errors
//
// Failures are reported as either a [*RequestError] (the request could not
// be built, sent, or decoded) or a [*ValidationError] (the server answered
// with something we did not accept). Both support [errors.Is] against the
// exported sentinels, e.g.:
//
//	if errors.Is(err, endpoint.ErrNotFound) { ... }
//
// # Concurrency
//
// Descriptors are immutable once in use and can be shared. A controller
// can serve concurrent loads; the only shared mutable state is the set of
// extra headers (e.g., the bearer token) and the recording directory.
package endpoint

import "github.com/endpointkit/endpoint/internal/model"

// WireRequest is a fully resolved request ready for a [Transport].
type WireRequest = model.WireRequest

// Response is the response metadata produced by a [Transport].
type Response = model.Response

// Transport sends a [WireRequest] and reports the outcome exactly once.
type Transport = model.Transport

// TransportCallback receives the outcome of [Transport.Execute].
type TransportCallback = model.TransportCallback

// Logger is the logger interface used by this package. The apex/log
// log.Log value satisfies it.
type Logger = model.Logger

// Probe reports whether the network is reachable.
type Probe = model.Probe
