package endpoint

//
// HTTP diagnostics
//

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/apex/log"
	"github.com/endpointkit/endpoint/internal/humanize"
	"github.com/endpointkit/endpoint/internal/model"
	"github.com/google/uuid"
)

// Placeholders used when a body cannot be shown.
const (
	diagnosticNoData       = "<no data>"
	diagnosticUndecodable  = "<unable to decode>"
	diagnosticNoResponse   = "<no response>"
	diagnosticMissingValue = "<none>"
)

// Diagnostic is a human readable dump of a request and its response.
type Diagnostic struct {
	// ID correlates the lines of this diagnostic in the logs.
	ID string

	// Err is the validation error or nil.
	Err error

	// Method and URL identify the request.
	Method string
	URL    string

	// RequestHeaders contains sorted "Name: value" lines.
	RequestHeaders []string

	// RequestBody is the request body or a placeholder.
	RequestBody string

	// StatusCode is zero when there is no response.
	StatusCode int

	// ResponseHeaders contains sorted "Name: value" lines.
	ResponseHeaders []string

	// ResponseBody is the response body or a placeholder.
	ResponseBody string

	// ContentLength is the declared content length or one of
	// the negative ContentLengthXXX sentinels.
	ContentLength int64

	// TooLarge is true when ContentLength exceeds the threshold.
	TooLarge bool
}

// newDiagnostic creates a [*Diagnostic]. Every argument except
// err may be nil.
func newDiagnostic(req *WireRequest, resp *Response, body []byte, err error, maxSize int64) *Diagnostic {
	d := &Diagnostic{
		ID:            uuid.NewString(),
		Err:           err,
		ResponseBody:  diagnosticText(body),
		ContentLength: model.ContentLength(resp),
	}
	d.TooLarge = d.ContentLength > maxSize
	if req != nil {
		d.Method = req.Method
		if req.URL != nil {
			d.URL = req.URL.String()
		}
		d.RequestHeaders = diagnosticHeaders(req.Header)
		d.RequestBody = diagnosticText(req.Body)
	}
	if resp != nil {
		d.StatusCode = resp.StatusCode
		d.ResponseHeaders = diagnosticHeaders(resp.Header)
	}
	return d
}

// diagnosticText renders a body, which may not be valid UTF-8.
func diagnosticText(data []byte) string {
	switch {
	case data == nil:
		return diagnosticNoData
	case !utf8.Valid(data):
		return diagnosticUndecodable
	default:
		return string(data)
	}
}

func diagnosticHeaders(header http.Header) (out []string) {
	for key, values := range header {
		out = append(out, fmt.Sprintf("%s: %s", key, strings.Join(values, ", ")))
	}
	slices.Sort(out)
	return
}

// Lines returns the diagnostic as log lines.
func (d *Diagnostic) Lines() []string {
	prefix := fmt.Sprintf("endpoint: [%s]", d.ID)
	var out []string
	add := func(format string, v ...any) {
		out = append(out, prefix+" "+fmt.Sprintf(format, v...))
	}
	add("> %s %s", d.Method, d.URL)
	for _, line := range d.RequestHeaders {
		add("> %s", line)
	}
	add("> body: %s", d.RequestBody)
	if d.StatusCode != 0 {
		add("< %d", d.StatusCode)
	} else {
		add("< %s", diagnosticNoResponse)
	}
	for _, line := range d.ResponseHeaders {
		add("< %s", line)
	}
	add("< body: %s", d.ResponseBody)
	if d.ContentLength >= 0 {
		add("content length: %d (%s)", d.ContentLength, humanize.Bytes(d.ContentLength))
	} else {
		add("content length: %d", d.ContentLength)
	}
	if d.TooLarge {
		add("response exceeds the diagnostic size threshold")
	}
	add("error: %s", model.ErrorToStringOrOK(d.Err))
	return out
}

// DiagnosticSink receives diagnostics.
type DiagnosticSink interface {
	Emit(d *Diagnostic)
}

// LoggerDiagnosticSink writes diagnostics line by line using Debug.
type LoggerDiagnosticSink struct {
	// Logger is the MANDATORY logger.
	Logger model.DebugLogger
}

var _ DiagnosticSink = &LoggerDiagnosticSink{}

// Emit implements DiagnosticSink.
func (s *LoggerDiagnosticSink) Emit(d *Diagnostic) {
	for _, line := range d.Lines() {
		s.Logger.Debug(line)
	}
}

// ApexDiagnosticSink writes each diagnostic as a single structured entry.
type ApexDiagnosticSink struct {
	// Logger is the MANDATORY logger (e.g., log.Log).
	Logger log.Interface
}

var _ DiagnosticSink = &ApexDiagnosticSink{}

// Emit implements DiagnosticSink.
func (s *ApexDiagnosticSink) Emit(d *Diagnostic) {
	entry := s.Logger.WithFields(log.Fields{
		"id":               d.ID,
		"method":           d.Method,
		"url":              d.URL,
		"request_headers":  strings.Join(d.RequestHeaders, "\n"),
		"request_body":     d.RequestBody,
		"status_code":      d.StatusCode,
		"response_headers": strings.Join(d.ResponseHeaders, "\n"),
		"response_body":    d.ResponseBody,
		"content_length":   d.ContentLength,
		"too_large":        d.TooLarge,
	})
	if d.Err != nil {
		entry.WithError(d.Err).Debug("endpoint: http diagnostic")
		return
	}
	entry.Debug("endpoint: http diagnostic")
}

// DiagnosticSinkFunc adapts a function to [DiagnosticSink].
type DiagnosticSinkFunc func(d *Diagnostic)

// Emit implements DiagnosticSink.
func (fx DiagnosticSinkFunc) Emit(d *Diagnostic) {
	fx(d)
}
