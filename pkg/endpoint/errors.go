package endpoint

//
// Request errors
//

import "fmt"

// RequestErrorKind is the kind of a [*RequestError].
type RequestErrorKind int

const (
	// RequestBuildFailed means we could not build the wire request.
	RequestBuildFailed = RequestErrorKind(iota)

	// ParseFailed means the decoder rejected a validated body.
	ParseFailed

	// NoParser means the descriptor has no decoder.
	NoParser

	// Cancelled means the caller cancelled the request.
	Cancelled

	// ServerUnreachable means the network was not reachable, so we
	// did not even try sending the request.
	ServerUnreachable

	// ConnectionError means the connection failed or timed out.
	ConnectionError

	// UnknownError means any other transport failure.
	UnknownError

	// ResponseTooLarge means the response body exceeded the maximum
	// size the transport accepts.
	ResponseTooLarge
)

// String implements fmt.Stringer.
func (k RequestErrorKind) String() string {
	switch k {
	case RequestBuildFailed:
		return "request_build_failed"
	case ParseFailed:
		return "parse_failed"
	case NoParser:
		return "no_parser"
	case Cancelled:
		return "cancelled"
	case ServerUnreachable:
		return "server_unreachable"
	case ConnectionError:
		return "connection_error"
	case UnknownError:
		return "unknown_error"
	case ResponseTooLarge:
		return "response_too_large"
	default:
		return fmt.Sprintf("RequestErrorKind(%d)", int(k))
	}
}

// RequestError is an error that prevented a request from producing a
// payload, other than the server answering with something unacceptable.
type RequestError struct {
	// Kind is the kind of error.
	Kind RequestErrorKind

	// Failure is the OPTIONAL classified failure (e.g., "connection_refused").
	Failure string

	// Err is the OPTIONAL underlying error.
	Err error
}

var _ error = &RequestError{}

// newRequestError creates a [*RequestError] wrapping err.
func newRequestError(kind RequestErrorKind, err error) *RequestError {
	return &RequestError{Kind: kind, Err: err}
}

// newTransportError creates a [*RequestError] for a transport failure.
func newTransportError(kind RequestErrorKind, failure string, err error) *RequestError {
	return &RequestError{Kind: kind, Failure: failure, Err: err}
}

// Error implements error.
func (e *RequestError) Error() string {
	switch {
	case e.Failure != "":
		return fmt.Sprintf("endpoint: %s: %s", e.Kind, e.Failure)
	case e.Err != nil:
		return fmt.Sprintf("endpoint: %s: %s", e.Kind, e.Err.Error())
	default:
		return fmt.Sprintf("endpoint: %s", e.Kind)
	}
}

// Unwrap allows errors.Is and errors.As to see the underlying error.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is returns whether target is a [*RequestError] with the same kind.
func (e *RequestError) Is(target error) bool {
	other, good := target.(*RequestError)
	return good && other.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrRequestBuildFailed = &RequestError{Kind: RequestBuildFailed}
	ErrParseFailed        = &RequestError{Kind: ParseFailed}
	ErrNoParser           = &RequestError{Kind: NoParser}
	ErrCancelled          = &RequestError{Kind: Cancelled}
	ErrServerUnreachable  = &RequestError{Kind: ServerUnreachable}
	ErrConnection         = &RequestError{Kind: ConnectionError}
	ErrUnknown            = &RequestError{Kind: UnknownError}
	ErrResponseTooLarge   = &RequestError{Kind: ResponseTooLarge}
)
