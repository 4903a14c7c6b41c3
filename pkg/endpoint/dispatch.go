package endpoint

//
// Delivery of completions
//

import (
	"context"
	"reflect"
	"sync"
)

// Dispatcher runs completion functions on the execution context chosen by
// the application. Dispatch MUST eventually run fn exactly once.
type Dispatcher interface {
	Dispatch(fn func())
}

type dispatcherKey struct{}

// WithDispatcher returns a copy of ctx recording that the caller is
// running on d. An asynchronous [Load] started with such a context on a
// controller using d runs the completion inline, without a hop, when the
// transport completes before [Load] returns.
func WithDispatcher(ctx context.Context, d Dispatcher) context.Context {
	return context.WithValue(ctx, dispatcherKey{}, d)
}

// runningOn returns whether ctx says we are running on d.
func runningOn(ctx context.Context, d Dispatcher) bool {
	current, _ := ctx.Value(dispatcherKey{}).(Dispatcher)
	if current == nil || d == nil {
		return false
	}
	tc, td := reflect.TypeOf(current), reflect.TypeOf(d)
	return tc == td && tc.Comparable() && current == d
}

// InlineDispatcher runs functions immediately on the calling goroutine,
// which, for asynchronous loads, is the goroutine of the transport.
type InlineDispatcher struct{}

var _ Dispatcher = InlineDispatcher{}

// Dispatch implements Dispatcher.
func (InlineDispatcher) Dispatch(fn func()) {
	fn()
}

// SerialQueue runs functions one at a time, in FIFO order, on a
// dedicated goroutine. Dispatch never blocks.
type SerialQueue struct {
	cond   *sync.Cond
	closed bool
	done   chan struct{}
	jobs   []func()
	mu     sync.Mutex
}

var _ Dispatcher = &SerialQueue{}

// NewSerialQueue creates a [*SerialQueue] and starts its goroutine.
func NewSerialQueue() *SerialQueue {
	q := &SerialQueue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.loop()
	return q
}

func (q *SerialQueue) loop() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.jobs) <= 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.jobs) <= 0 {
			q.mu.Unlock()
			return
		}
		job := q.jobs[0]
		q.jobs[0] = nil
		q.jobs = q.jobs[1:]
		q.mu.Unlock()
		job()
	}
}

// Dispatch implements Dispatcher. After [SerialQueue.Close], fn runs
// on the calling goroutine so that completions are never lost.
func (q *SerialQueue) Dispatch(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		fn()
		return
	}
	q.jobs = append(q.jobs, fn)
	q.mu.Unlock()
	q.cond.Signal()
}

// DispatchContext is like [SerialQueue.Dispatch] but passes fn a copy of
// ctx marked with [WithDispatcher], so loads started by fn know they are
// running on q.
func (q *SerialQueue) DispatchContext(ctx context.Context, fn func(ctx context.Context)) {
	q.Dispatch(func() {
		fn(WithDispatcher(ctx, q))
	})
}

// Close runs the pending functions and stops the goroutine. It MUST NOT
// be called from a function running on the queue.
func (q *SerialQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
	<-q.done
}

var mainQueue = sync.OnceValue(NewSerialQueue)

// MainQueue returns the process wide [*SerialQueue] used by controllers
// that do not configure a [Dispatcher]. Do not close it.
func MainQueue() *SerialQueue {
	return mainQueue()
}
