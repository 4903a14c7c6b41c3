package endpoint

//
// Transports
//

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/endpointkit/endpoint/internal/model"
)

// DefaultMaxBodySize is the default maximum body size we read.
const DefaultMaxBodySize = 1 << 22

// ErrBodyTooLarge indicates that the response body exceeds the
// maximum body size of the [*HTTPTransport].
var ErrBodyTooLarge = errors.New("endpoint: response body too large")

// HTTPTransport is a [Transport] using a [model.HTTPClient].
type HTTPTransport struct {
	// Client is the MANDATORY HTTP client.
	Client model.HTTPClient

	// MaxBodySize is the OPTIONAL maximum body size. Zero means
	// [DefaultMaxBodySize].
	MaxBodySize int64
}

var _ Transport = &HTTPTransport{}

// NewHTTPTransport creates an [*HTTPTransport] using client.
func NewHTTPTransport(client model.HTTPClient) *HTTPTransport {
	return &HTTPTransport{Client: client}
}

// Execute implements Transport. It performs the round trip in a
// background goroutine and invokes done from there.
func (txp *HTTPTransport) Execute(ctx context.Context, req *WireRequest, done TransportCallback) {
	go func() {
		done(txp.RoundTrip(ctx, req))
	}()
}

// RoundTrip sends req and reads the whole response body. On success, the
// body is never nil, even when empty. A body longer than the maximum body
// size yields [ErrBodyTooLarge] and no data.
func (txp *HTTPTransport) RoundTrip(ctx context.Context, req *WireRequest) ([]byte, *Response, error) {
	httpReq, err := req.NewHTTPRequest(ctx)
	if err != nil {
		return nil, nil, err
	}
	httpResp, err := txp.Client.Do(httpReq)
	if err != nil {
		return nil, nil, err
	}
	defer httpResp.Body.Close()
	resp := &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header}

	// we set Accept-Encoding ourselves, so the stdlib does not decompress
	var reader io.Reader = httpResp.Body
	if httpResp.Header.Get("Content-Encoding") == "gzip" {
		gzreader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, resp, err
		}
		defer gzreader.Close()
		reader = gzreader
	}
	limit := txp.maxBodySize()
	data, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, resp, err
	}
	if int64(len(data)) > limit {
		return nil, resp, ErrBodyTooLarge
	}
	if data == nil {
		data = []byte{}
	}
	return data, resp, nil
}

func (txp *HTTPTransport) maxBodySize() int64 {
	if txp.MaxBodySize <= 0 {
		return DefaultMaxBodySize
	}
	return txp.MaxBodySize
}

// TransportFunc adapts a synchronous round trip function to [Transport].
type TransportFunc func(ctx context.Context, req *WireRequest) ([]byte, *Response, error)

var _ Transport = TransportFunc(nil)

// Execute implements Transport.
func (fx TransportFunc) Execute(ctx context.Context, req *WireRequest, done TransportCallback) {
	go func() {
		done(fx(ctx, req))
	}()
}

// DefaultTransport returns an [*HTTPTransport] using [http.DefaultClient].
func DefaultTransport() *HTTPTransport {
	return NewHTTPTransport(http.DefaultClient)
}
