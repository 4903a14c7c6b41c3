package model

//
// Wire-level HTTP definitions shared by the request builder,
// the validator, and the transports.
//

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// HTTPHeaderAcceptEncoding is the Accept-Encoding we send by default.
	HTTPHeaderAcceptEncoding = "gzip"

	// HTTPHeaderUserAgent is the default User-Agent of the developer tools.
	HTTPHeaderUserAgent = "endpoint/0.1"
)

// WireRequest is a fully resolved request ready to be handed to a [Transport].
//
// Once built, a WireRequest must be treated as read-only: transports and
// diagnostics may observe it concurrently.
type WireRequest struct {
	// Method is the request method (e.g., "GET").
	Method string

	// URL is the resolved URL including the encoded query.
	URL *url.URL

	// Header contains the request headers.
	Header http.Header

	// Body is the OPTIONAL request body.
	Body []byte
}

// NewHTTPRequest converts the WireRequest to an [*http.Request] bound to ctx.
func (r *WireRequest) NewHTTPRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL.String(), bytes.NewReader(r.Body))
	if err != nil {
		return nil, err
	}
	if len(r.Body) <= 0 {
		req.Body = http.NoBody
		req.ContentLength = 0
	}
	req.Header = r.Header.Clone()
	return req, nil
}

// Response is the metadata of a response received by a [Transport].
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Header contains the response headers.
	Header http.Header
}

// ContentType returns the raw Content-Type header or an empty string.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Sentinel values returned by [ContentLength].
const (
	// ContentLengthNoResponse indicates there is no response at all.
	ContentLengthNoResponse = -1

	// ContentLengthMissing indicates the response has no Content-Length.
	ContentLengthMissing = -2

	// ContentLengthInvalid indicates the Content-Length is not a number.
	ContentLengthInvalid = -3
)

// ContentLength returns the value of the Content-Length header of resp
// or one of the negative ContentLengthXXX sentinels.
func ContentLength(resp *Response) int64 {
	if resp == nil {
		return ContentLengthNoResponse
	}
	value := resp.Header.Get("Content-Length")
	if value == "" {
		return ContentLengthMissing
	}
	length, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return ContentLengthInvalid
	}
	return length
}

// TransportCallback receives the outcome of [Transport.Execute]. The body
// is nil when no body was received; resp is nil when no structured response
// metadata is available.
type TransportCallback func(body []byte, resp *Response, err error)

// Transport performs network calls on behalf of the controller.
//
// Execute MUST invoke done exactly once, from any goroutine.
type Transport interface {
	Execute(ctx context.Context, req *WireRequest, done TransportCallback)
}

// HTTPClient is an [*http.Client] like type.
type HTTPClient interface {
	// Do behaves like [*http.Client.Do].
	Do(req *http.Request) (*http.Response, error)

	// CloseIdleConnections behaves like [*http.Client.CloseIdleConnections].
	CloseIdleConnections()
}

// Probe tells whether the network is reachable. Implementations MUST
// be synchronous and free of side effects.
type Probe interface {
	IsReachable() bool
}
