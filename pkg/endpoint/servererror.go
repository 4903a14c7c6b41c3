package endpoint

import "encoding/json"

// ServerError is a structured error payload returned by the server.
type ServerError interface {
	// ErrorName returns the short error identifier, if any.
	ErrorName() string

	// ErrorReason returns the human readable reason, if any.
	ErrorReason() string

	// ErrorDetail returns additional details, if any.
	ErrorDetail() string
}

// ServerErrorDecoder decodes the body of a rejected response. It returns
// an error when the body is not a server error payload.
type ServerErrorDecoder func(data []byte) (ServerError, error)

// DefaultServerError is the `{"error": ..., "reason": ..., "detail": ...}`
// payload used by many APIs.
type DefaultServerError struct {
	Name   string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`
	Detail string `json:"detail,omitempty"`
}

var _ ServerError = DefaultServerError{}

// ErrorName implements ServerError.
func (se DefaultServerError) ErrorName() string {
	return se.Name
}

// ErrorReason implements ServerError.
func (se DefaultServerError) ErrorReason() string {
	return se.Reason
}

// ErrorDetail implements ServerError.
func (se DefaultServerError) ErrorDetail() string {
	return se.Detail
}

// DecodeDefaultServerError is the default [ServerErrorDecoder].
func DecodeDefaultServerError(data []byte) (ServerError, error) {
	var se DefaultServerError
	if err := json.Unmarshal(data, &se); err != nil {
		return nil, err
	}
	return se, nil
}
