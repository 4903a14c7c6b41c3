package endpoint

//
// Notifications emitted by controllers and validators
//

import (
	"fmt"
	"sync"
)

// Event is the kind of a [Notification].
type Event int

const (
	// EventServerUnreachable means we skipped a request because the
	// network was not reachable.
	EventServerUnreachable = Event(iota)

	// EventServerNotResponding means a request failed with a
	// connection error.
	EventServerNotResponding

	// EventUnauthorized means the server answered 401.
	EventUnauthorized
)

// String implements fmt.Stringer.
func (ev Event) String() string {
	switch ev {
	case EventServerUnreachable:
		return "server_unreachable"
	case EventServerNotResponding:
		return "server_not_responding"
	case EventUnauthorized:
		return "unauthorized"
	default:
		return fmt.Sprintf("Event(%d)", int(ev))
	}
}

// Notification is an application wide event.
type Notification struct {
	// Event is the kind of event.
	Event Event

	// Request is the OPTIONAL request that caused the event. It is nil
	// for [EventServerUnreachable] because no request was sent.
	Request *WireRequest
}

// EventSink receives notifications. Notify MUST NOT block.
type EventSink interface {
	Notify(n *Notification)
}

// EventSinkFunc adapts a function to [EventSink].
type EventSinkFunc func(n *Notification)

var _ EventSink = EventSinkFunc(nil)

// Notify implements EventSink.
func (fx EventSinkFunc) Notify(n *Notification) {
	fx(n)
}

// DiscardEvents is an [EventSink] that ignores all notifications.
var DiscardEvents EventSink = EventSinkFunc(func(*Notification) {})

// Broadcaster is an [EventSink] that fans out notifications to channel
// subscribers. When a subscriber's buffer is full, it misses the
// notification. The zero value is ready to use.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]chan *Notification
}

var _ EventSink = &Broadcaster{}

// NewBroadcaster creates a [*Broadcaster].
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe returns a channel delivering notifications and a function
// that cancels the subscription and closes the channel.
func (b *Broadcaster) Subscribe(buffer int) (<-chan *Notification, func()) {
	ch := make(chan *Notification, buffer)
	b.mu.Lock()
	if b.subs == nil {
		b.subs = map[int]chan *Notification{}
	}
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Notify implements EventSink.
func (b *Broadcaster) Notify(n *Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- n:
		default:
		}
	}
}
