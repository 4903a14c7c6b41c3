package endpoint

//
// Response validation
//

import (
	"net/http"
	"slices"

	"github.com/endpointkit/endpoint/internal/mimetype"
	"github.com/endpointkit/endpoint/internal/model"
)

// DefaultMaxResponseSize is the content length above which we emit a
// diagnostic even for successful responses.
const DefaultMaxResponseSize = 5000

// Validator decides whether a response is acceptable.
//
// The zero value accepts any media type with a 2xx status code and
// discards notifications and diagnostics.
type Validator struct {
	// AcceptedMimeTypes is the OPTIONAL list of acceptable media types,
	// which may contain wildcards. The default is "*/*".
	AcceptedMimeTypes []string

	// AcceptedStatusCodes is the OPTIONAL list of acceptable status codes.
	// The default is [StatusCodeRange](200, 300).
	AcceptedStatusCodes []int

	// DecodeServerError is the OPTIONAL decoder for the body of responses
	// with an unacceptable status code. The default is [DecodeDefaultServerError].
	DecodeServerError ServerErrorDecoder

	// DebugAllHTTP emits a diagnostic for every response.
	DebugAllHTTP bool

	// MaxResponseSize is the OPTIONAL diagnostic size threshold. The
	// default is [DefaultMaxResponseSize].
	MaxResponseSize int64

	// Events is the OPTIONAL sink for [EventUnauthorized].
	Events EventSink

	// Diagnostics is the OPTIONAL sink for diagnostics.
	Diagnostics DiagnosticSink
}

// Validate checks body and resp, which were received for req, and
// returns nil or a [*ValidationError]. A nil body means that there
// was no body at all, while an empty body means there was one with
// zero length. A nil resp means that there was no HTTP response.
//
// It emits a diagnostic when validation fails, when DebugAllHTTP is
// set, or when the content length exceeds MaxResponseSize.
func (v *Validator) Validate(body []byte, resp *Response, req *WireRequest) error {
	verr := v.validate(body, resp, req)
	var err error
	if verr != nil {
		err = verr
	}
	maxSize := v.maxResponseSize()
	tooLarge := model.ContentLength(resp) > maxSize
	if (err != nil || v.DebugAllHTTP || tooLarge) && v.Diagnostics != nil {
		v.Diagnostics.Emit(newDiagnostic(req, resp, body, err, maxSize))
	}
	return err
}

func (v *Validator) validate(body []byte, resp *Response, req *WireRequest) *ValidationError {
	if resp == nil {
		return &ValidationError{Kind: ValidationInvalidResponseShape}
	}
	if resp.StatusCode == http.StatusUnauthorized && v.Events != nil {
		v.Events.Notify(&Notification{Event: EventUnauthorized, Request: req})
	}
	noContent := resp.StatusCode == http.StatusNoContent
	if body == nil && !noContent {
		return &ValidationError{Kind: ValidationNoData, StatusCode: resp.StatusCode}
	}
	if !slices.Contains(v.acceptedStatusCodes(), resp.StatusCode) {
		return NewValidationError(resp.StatusCode, v.decodeServerError(body))
	}
	observed, good := mimetype.Parse(resp.ContentType())
	if !good {
		observed = mimetype.Missing
	}
	if !noContent && !observed.MatchesAny(mimetype.ParseAll(v.acceptedMimeTypes())) {
		var name string
		if good {
			name = observed.String()
		}
		return newInvalidMimeTypeError(resp.StatusCode, name)
	}
	return nil
}

func (v *Validator) decodeServerError(body []byte) ServerError {
	if len(body) <= 0 {
		return nil
	}
	decode := v.DecodeServerError
	if decode == nil {
		decode = DecodeDefaultServerError
	}
	se, err := decode(body)
	if err != nil {
		return nil
	}
	return se
}

func (v *Validator) acceptedMimeTypes() []string {
	if len(v.AcceptedMimeTypes) <= 0 {
		return []string{mimetype.Wildcard.String()}
	}
	return v.AcceptedMimeTypes
}

func (v *Validator) acceptedStatusCodes() []int {
	if len(v.AcceptedStatusCodes) <= 0 {
		return StatusCodeRange(200, 300)
	}
	return v.AcceptedStatusCodes
}

func (v *Validator) maxResponseSize() int64 {
	if v.MaxResponseSize <= 0 {
		return DefaultMaxResponseSize
	}
	return v.MaxResponseSize
}

