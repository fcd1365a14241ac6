package turn

import (
	"sync"

	"github.com/agentwire/agentwire/internal/core"
)

// eventQueue is an unbounded single-consumer queue between the pump
// goroutines and the caller's event channel. Push never blocks, so a slow or
// absent consumer can never stall the process pipes.
type eventQueue struct {
	mu     sync.Mutex
	buf    []core.AgentEvent
	closed bool
	wake   chan struct{}
	out    chan core.AgentEvent
}

func newEventQueue() *eventQueue {
	q := &eventQueue{
		wake: make(chan struct{}, 1),
		out:  make(chan core.AgentEvent),
	}
	go q.forward()
	return q
}

// Push enqueues one event. Events pushed after Close are dropped.
func (q *eventQueue) Push(ev core.AgentEvent) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.buf = append(q.buf, ev)
	q.mu.Unlock()
	q.signal()
}

// Close marks the queue complete. The output channel closes once every
// buffered event has been delivered. Safe to call more than once.
func (q *eventQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

// Events returns the delivery channel. It closes after the final event.
func (q *eventQueue) Events() <-chan core.AgentEvent {
	return q.out
}

func (q *eventQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *eventQueue) forward() {
	for {
		q.mu.Lock()
		for len(q.buf) == 0 {
			if q.closed {
				q.mu.Unlock()
				close(q.out)
				return
			}
			q.mu.Unlock()
			<-q.wake
			q.mu.Lock()
		}
		ev := q.buf[0]
		q.buf = q.buf[1:]
		q.mu.Unlock()

		q.out <- ev
	}
}
