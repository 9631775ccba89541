package bus

import (
	"context"
	"sync"

	"github.com/yubarajDas/payguard-motia/internal/port"
)

// RecordedEvent is one bus emission captured for the event feed.
type RecordedEvent struct {
	Topic      string `json:"topic"`
	Data       any    `json:"data"`
	ReceivedAt string `json:"receivedAt"`
}

// Recorder keeps the most recent bus events in a ring buffer, feeding the
// GET /payguard/events endpoint. Register it with SubscribeAll.
type Recorder struct {
	mu     sync.Mutex
	events []RecordedEvent
	next   int
	full   bool
	clock  port.Clock
}

// NewRecorder creates a recorder retaining up to size events.
func NewRecorder(size int, clock port.Clock) *Recorder {
	if size <= 0 {
		size = 100
	}
	return &Recorder{events: make([]RecordedEvent, size), clock: clock}
}

// Record captures one event. It never fails.
func (r *Recorder) Record(_ context.Context, evt port.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[r.next] = RecordedEvent{
		Topic:      evt.Topic,
		Data:       evt.Data,
		ReceivedAt: r.clock.Timestamp(),
	}
	r.next = (r.next + 1) % len(r.events)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// Recent returns captured events, newest first.
func (r *Recorder) Recent() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := len(r.events)
	count := r.next
	if r.full {
		count = size
	}

	out := make([]RecordedEvent, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, r.events[(r.next-i+size)%size])
	}
	return out
}
