package mocks

import (
	"context"
	"net/http"

	"github.com/endpointkit/endpoint/internal/model"
)

// Transport allows mocking model.Transport.
type Transport struct {
	MockExecute func(ctx context.Context, req *model.WireRequest, done model.TransportCallback)
}

var _ model.Transport = &Transport{}

// Execute calls MockExecute.
func (txp *Transport) Execute(ctx context.Context, req *model.WireRequest, done model.TransportCallback) {
	txp.MockExecute(ctx, req, done)
}

// Probe allows mocking model.Probe.
type Probe struct {
	MockIsReachable func() bool
}

var _ model.Probe = &Probe{}

// IsReachable calls MockIsReachable.
func (p *Probe) IsReachable() bool {
	return p.MockIsReachable()
}

// HTTPClient allows mocking model.HTTPClient.
type HTTPClient struct {
	MockDo func(req *http.Request) (*http.Response, error)

	MockCloseIdleConnections func()
}

var _ model.HTTPClient = &HTTPClient{}

// Do calls MockDo.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.MockDo(req)
}

// CloseIdleConnections calls MockCloseIdleConnections.
func (c *HTTPClient) CloseIdleConnections() {
	c.MockCloseIdleConnections()
}
