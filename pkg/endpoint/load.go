package endpoint

//
// Loading descriptors
//

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/endpointkit/endpoint/internal/errclass"
	"github.com/endpointkit/endpoint/internal/model"
)

// Completion receives the outcome of [Load]. Exactly one of payload and
// err is meaningful: when err is not nil, payload is the zero value.
type Completion[P any] func(payload P, err error)

// LoadOption customizes [Load].
type LoadOption func(opts *loadOptions)

type loadOptions struct {
	page        int
	synchronous bool
}

// WithPage selects the page to load. The default is [DefaultPage], which
// also replaces pages below 1.
func WithPage(page int) LoadOption {
	return func(opts *loadOptions) {
		opts.page = page
	}
}

// Synchronous makes [Load] wait for the outcome and run the completion on
// the calling goroutine before returning. Use it from goroutines that can
// block; never from a function running on the controller's dispatcher.
func Synchronous() LoadOption {
	return func(opts *loadOptions) {
		opts.synchronous = true
	}
}

// Load loads d using c and invokes completion exactly once.
//
// The pipeline is: check reachability, build the request, send it with
// the transport, classify transport errors, record the body if recording
// is enabled, validate the response, and decode the body.
//
// Asynchronous loads return immediately and deliver the completion
// through the controller's [Dispatcher], except when ctx says we are
// already running on it (see [WithDispatcher]) and the transport completes
// before Load returns: then the completion runs inline. See [Synchronous]
// otherwise.
func Load[P any](ctx context.Context, c *Controller, d *Descriptor[P], completion Completion[P], options ...LoadOption) {
	opts := &loadOptions{page: DefaultPage}
	for _, option := range options {
		option(opts)
	}
	call := &loadCall[P]{
		c:          c,
		completion: completion,
		d:          d,
		done:       make(chan struct{}),
		opts:       opts,
		t0:         time.Now(),
	}
	call.inline = !opts.synchronous && runningOn(ctx, c.dispatcher)
	metricRequestsInflight.Inc()
	call.start(ctx)
	switch {
	case opts.synchronous:
		<-call.done
		completion(call.payload, call.err)
	case call.inline:
		call.mu.Lock()
		call.returned = true
		ready := call.ready
		call.mu.Unlock()
		if ready {
			completion(call.payload, call.err)
		}
	}
}

// Fetch is the blocking version of [Load].
func Fetch[P any](ctx context.Context, c *Controller, d *Descriptor[P], options ...LoadOption) (P, error) {
	var (
		payload P
		err     error
	)
	options = append(options, Synchronous())
	Load(ctx, c, d, func(p P, e error) {
		payload, err = p, e
	}, options...)
	return payload, err
}

// loadCall is the state of a single [Load].
type loadCall[P any] struct {
	c          *Controller
	completion Completion[P]
	d          *Descriptor[P]
	done       chan struct{}
	inline     bool
	once       sync.Once
	opts       *loadOptions
	t0         time.Time

	// set before closing done or, for inline calls, under mu
	payload P
	err     error

	// protect the inline handoff with Load
	mu       sync.Mutex
	ready    bool
	returned bool
}

func (call *loadCall[P]) start(ctx context.Context) {
	c, d := call.c, call.d

	if !c.probe.IsReachable() {
		c.logger.Info("endpoint: the network is not reachable")
		call.finish(*new(P), newRequestError(ServerUnreachable, nil))
		c.events.Notify(&Notification{Event: EventServerUnreachable})
		return
	}

	req, err := d.BuildRequest(call.opts.page, c.ExtraHeaders(), c.defaultServerBase)
	if err != nil {
		call.finish(*new(P), err)
		c.assertionFailed("cannot build request", err)
		return
	}

	c.logger.Debugf("endpoint: %s %s", req.Method, req.URL.String())
	c.transport.Execute(ctx, req, func(body []byte, resp *Response, err error) {
		var (
			payload P
			failure error = newRequestError(UnknownError, nil)
		)
		defer func() {
			call.finish(payload, failure)
		}()
		payload, failure = call.process(req, body, resp, err)
	})
}

// process maps the transport outcome to the load outcome.
func (call *loadCall[P]) process(req *WireRequest, body []byte, resp *Response, err error) (P, error) {
	c, d := call.c, call.d
	var zero P

	if errors.Is(err, ErrBodyTooLarge) {
		c.logger.Warnf("endpoint: %s %s: %s", req.Method, req.URL.String(), err.Error())
		return zero, newRequestError(ResponseTooLarge, err)
	}

	switch class, failure := errclass.Classify(err); class {
	case errclass.ClassNone:
	case errclass.ClassCancelled:
		c.logger.Debugf("endpoint: %s %s: cancelled", req.Method, req.URL.String())
		return zero, newTransportError(Cancelled, failure, err)
	case errclass.ClassConnection:
		level := model.LogLevelWarn
		if d.FailSilently {
			level = model.LogLevelDebug
		}
		model.Logf(c.logger, level, "endpoint: %s %s: %s", req.Method, req.URL.String(), failure)
		c.events.Notify(&Notification{Event: EventServerNotResponding, Request: req})
		return zero, newTransportError(ConnectionError, failure, err)
	default:
		c.logger.Warnf("endpoint: %s %s: %s", req.Method, req.URL.String(), failure)
		return zero, newTransportError(UnknownError, failure, err)
	}

	if rec := c.currentRecorder(); rec != nil && body != nil {
		if path, err := rec.Record(req.URL, body); err != nil {
			c.logger.Warnf("endpoint: cannot record response: %s", err.Error())
		} else {
			c.logger.Debugf("endpoint: recorded response into %s", path)
		}
	}

	validator := c.validator(d.EffectiveMimeTypes(), d.EffectiveStatusCodes())
	if err := validator.Validate(body, resp, req); err != nil {
		return zero, err
	}

	if d.Decode == nil {
		return zero, newRequestError(NoParser, nil)
	}
	if body == nil {
		body = []byte{}
	}
	return call.decode(body)
}

// decode runs the decoder, turning panics into [ParseFailed].
func (call *loadCall[P]) decode(body []byte) (payload P, err error) {
	defer func() {
		if r := recover(); r != nil {
			payload, err = *new(P), newRequestError(ParseFailed, fmt.Errorf("decoder panic: %v", r))
		}
	}()
	payload, err = call.d.Decode(body)
	if err != nil {
		return *new(P), newRequestError(ParseFailed, err)
	}
	return payload, nil
}

// finish records the outcome and delivers it. Only the first call has
// an effect, so a misbehaving transport cannot complete twice.
func (call *loadCall[P]) finish(payload P, err error) {
	call.once.Do(func() {
		method := string(call.d.EffectiveMethod())
		metricRequestsInflight.Dec()
		metricRequestsCount.WithLabelValues(method, metricsOutcome(err)).Inc()
		metricRequestDurationSeconds.WithLabelValues(method).Observe(time.Since(call.t0).Seconds())
		if err != nil {
			payload = *new(P)
		}
		if call.opts.synchronous {
			call.payload, call.err = payload, err
			close(call.done)
			return
		}
		if call.inline {
			call.mu.Lock()
			if !call.returned {
				call.payload, call.err, call.ready = payload, err, true
				call.mu.Unlock()
				return
			}
			call.mu.Unlock()
		}
		call.c.dispatcher.Dispatch(func() {
			call.completion(payload, err)
		})
	})
}
