package endpoint

//
// Validation errors
//

import (
	"fmt"
	"net/http"
	"reflect"
)

// ValidationErrorKind is the kind of a [*ValidationError].
type ValidationErrorKind int

const (
	// ValidationUnknown means an unexpected status code.
	ValidationUnknown = ValidationErrorKind(iota)

	// ValidationInvalidMimeType means an unacceptable Content-Type.
	ValidationInvalidMimeType

	// ValidationInvalidResponseShape means there is no HTTP response metadata.
	ValidationInvalidResponseShape

	// ValidationNoData means there is no body and the status is not 204.
	ValidationNoData

	// ValidationServerError means a 5xx status code.
	ValidationServerError

	// ValidationBadRequest means a 400 status code.
	ValidationBadRequest

	// ValidationUnauthorized means a 401 status code.
	ValidationUnauthorized

	// ValidationPaymentRequired means a 402 status code.
	ValidationPaymentRequired

	// ValidationForbidden means a 403 status code.
	ValidationForbidden

	// ValidationNotFound means a 404 status code.
	ValidationNotFound

	// ValidationMethodNotAllowed means a 405 status code.
	ValidationMethodNotAllowed
)

// String implements fmt.Stringer.
func (k ValidationErrorKind) String() string {
	switch k {
	case ValidationUnknown:
		return "unknown"
	case ValidationInvalidMimeType:
		return "invalid_mime_type"
	case ValidationInvalidResponseShape:
		return "invalid_response_shape"
	case ValidationNoData:
		return "no_data"
	case ValidationServerError:
		return "server_error"
	case ValidationBadRequest:
		return "bad_request"
	case ValidationUnauthorized:
		return "unauthorized"
	case ValidationPaymentRequired:
		return "payment_required"
	case ValidationForbidden:
		return "forbidden"
	case ValidationNotFound:
		return "not_found"
	case ValidationMethodNotAllowed:
		return "method_not_allowed"
	default:
		return fmt.Sprintf("ValidationErrorKind(%d)", int(k))
	}
}

// carriesServerError returns whether this kind embeds a [ServerError].
func (k ValidationErrorKind) carriesServerError() bool {
	switch k {
	case ValidationServerError, ValidationBadRequest, ValidationUnauthorized,
		ValidationForbidden, ValidationNotFound:
		return true
	default:
		return false
	}
}

// ValidationError means the server response was not acceptable.
type ValidationError struct {
	// Kind is the kind of error.
	Kind ValidationErrorKind

	// StatusCode is the response status code, or zero when there was
	// no response metadata.
	StatusCode int

	// MimeType is the observed media type for [ValidationInvalidMimeType].
	// It is empty when the response had no usable Content-Type.
	MimeType string

	// ServerError is the OPTIONAL decoded server error payload.
	ServerError ServerError
}

var _ error = &ValidationError{}

// NewValidationError maps a status code and an optional server error
// payload to the corresponding [*ValidationError].
func NewValidationError(statusCode int, serverError ServerError) *ValidationError {
	kind := ValidationUnknown
	switch {
	case statusCode >= 500 && statusCode < 600:
		kind = ValidationServerError
	case statusCode == http.StatusBadRequest:
		kind = ValidationBadRequest
	case statusCode == http.StatusUnauthorized:
		kind = ValidationUnauthorized
	case statusCode == http.StatusPaymentRequired:
		kind = ValidationPaymentRequired
	case statusCode == http.StatusForbidden:
		kind = ValidationForbidden
	case statusCode == http.StatusNotFound:
		kind = ValidationNotFound
	case statusCode == http.StatusMethodNotAllowed:
		kind = ValidationMethodNotAllowed
	}
	if !kind.carriesServerError() {
		serverError = nil
	}
	return &ValidationError{Kind: kind, StatusCode: statusCode, ServerError: serverError}
}

// newInvalidMimeTypeError creates a [ValidationInvalidMimeType] error.
func newInvalidMimeTypeError(statusCode int, mimeType string) *ValidationError {
	return &ValidationError{Kind: ValidationInvalidMimeType, StatusCode: statusCode, MimeType: mimeType}
}

// Error implements error.
func (e *ValidationError) Error() string {
	switch {
	case e.Kind == ValidationInvalidMimeType:
		return fmt.Sprintf("endpoint: %s: %q", e.Kind, e.MimeType)
	case e.StatusCode != 0:
		return fmt.Sprintf("endpoint: %s (%d)", e.Kind, e.StatusCode)
	default:
		return fmt.Sprintf("endpoint: %s", e.Kind)
	}
}

// Is returns whether target is a [*ValidationError] with the same kind.
func (e *ValidationError) Is(target error) bool {
	other, good := target.(*ValidationError)
	return good && other.Kind == e.Kind
}

// Equal returns whether e and other are the same error: same kind, plus
// the same status code for [ValidationUnknown], the same media type for
// [ValidationInvalidMimeType], and an equal server error payload for
// the kinds that carry one.
func (e *ValidationError) Equal(other *ValidationError) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind {
		return false
	}
	switch {
	case e.Kind == ValidationUnknown:
		return e.StatusCode == other.StatusCode
	case e.Kind == ValidationInvalidMimeType:
		return e.MimeType == other.MimeType
	case e.Kind.carriesServerError():
		return reflect.DeepEqual(e.ServerError, other.ServerError)
	default:
		return true
	}
}

// Description returns a message suitable for end users, preferring the
// server provided reason. It returns an empty string for kinds that have
// no user facing description.
func (e *ValidationError) Description() string {
	if e.Kind.carriesServerError() && e.ServerError != nil {
		if reason := e.ServerError.ErrorReason(); reason != "" {
			return reason
		}
	}
	switch e.Kind {
	case ValidationUnknown:
		return "An unknown error has occurred."
	case ValidationInvalidMimeType:
		if e.MimeType == "" {
			return ""
		}
		return fmt.Sprintf("Invalid mime type: %s.", e.MimeType)
	case ValidationNoData:
		return "Server returned no data."
	case ValidationServerError:
		return "A server error has occurred."
	case ValidationBadRequest:
		return "The client made a bad request to the server."
	case ValidationUnauthorized:
		return "The user is unauthorized."
	case ValidationForbidden:
		return "Access is forbidden."
	case ValidationNotFound:
		return "The requested resource was not found on the server."
	default:
		return ""
	}
}

// Sentinels for use with errors.Is.
var (
	ErrUnknownStatus        = &ValidationError{Kind: ValidationUnknown}
	ErrInvalidMimeType      = &ValidationError{Kind: ValidationInvalidMimeType}
	ErrInvalidResponseShape = &ValidationError{Kind: ValidationInvalidResponseShape}
	ErrNoData               = &ValidationError{Kind: ValidationNoData}
	ErrServerError          = &ValidationError{Kind: ValidationServerError}
	ErrBadRequest           = &ValidationError{Kind: ValidationBadRequest}
	ErrUnauthorized         = &ValidationError{Kind: ValidationUnauthorized}
	ErrPaymentRequired      = &ValidationError{Kind: ValidationPaymentRequired}
	ErrForbidden            = &ValidationError{Kind: ValidationForbidden}
	ErrNotFound             = &ValidationError{Kind: ValidationNotFound}
	ErrMethodNotAllowed     = &ValidationError{Kind: ValidationMethodNotAllowed}
)
