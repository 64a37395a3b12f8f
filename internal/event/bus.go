package event

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrClosed is returned by Next once the bus is closed and drained. It is
// fatal to the run loop: it can only happen when the consumer side has shut
// the bus down.
var ErrClosed = errors.New("event bus closed")

// Bus is an unbounded multi-producer/single-consumer FIFO queue. Send never
// blocks and never fails from the caller's perspective; sending to a closed
// bus is treated as shutdown and silently dropped. The queue is unbounded
// by design: producers run at human keystroke rate plus a fixed ticker, so
// backpressure buys nothing here.
type Bus struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*Event
	closed bool
	done   chan struct{}
}

func NewBus() *Bus {
	b := &Bus{done: make(chan struct{})}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Send appends an event to the queue and wakes the consumer.
func (b *Bus) Send(ev *Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.queue = append(b.queue, ev)
	b.cond.Signal()
}

// SendApp is shorthand for Send(App(ev)).
func (b *Bus) SendApp(ev AppEvent) { b.Send(App(ev)) }

// SendKey queues a raw key event, as if it arrived from the terminal. Used
// by the help modal's re-injection protocol.
func (b *Bus) SendKey(key tea.KeyMsg) { b.Send(Input(key)) }

// Next blocks until an event is available and returns it. Queued events are
// drained even after Close; once empty and closed it returns ErrClosed.
func (b *Bus) Next() (*Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.queue) == 0 && !b.closed {
		b.cond.Wait()
	}
	if len(b.queue) == 0 {
		return nil, ErrClosed
	}
	ev := b.queue[0]
	b.queue = b.queue[1:]
	return ev, nil
}

// TryNext returns the next event without blocking, or ok=false when the
// queue is empty. Intended for tests that step the queue manually.
func (b *Bus) TryNext() (*Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil, false
	}
	ev := b.queue[0]
	b.queue = b.queue[1:]
	return ev, true
}

// Len reports the number of queued events.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Close shuts the bus down. Producers observe it through Done and stop;
// pending Next calls drain the queue and then fail with ErrClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
	b.cond.Broadcast()
}

// Done is closed when the bus shuts down.
func (b *Bus) Done() <-chan struct{} { return b.done }
