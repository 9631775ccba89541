// Package bus provides the in-process event bus driving the PayGuard
// pipeline. Dispatch is synchronous: every subscriber for a topic runs to
// completion inside Emit, which is what guarantees overdue -> escalation ->
// notification ordering for a single bill within one scan pass.
package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/yubarajDas/payguard-motia/internal/infra/observability"
	"github.com/yubarajDas/payguard-motia/internal/port"

	"go.uber.org/zap"
)

// InProcess routes events to registered handlers within the same process.
type InProcess struct {
	mu       sync.RWMutex
	handlers map[string][]port.EventHandler
	taps     []port.EventHandler

	metrics *observability.Metrics
	logger  *zap.Logger
}

// New creates an empty bus. metrics may be nil in tests.
func New(metrics *observability.Metrics, logger *zap.Logger) *InProcess {
	return &InProcess{
		handlers: make(map[string][]port.EventHandler),
		metrics:  metrics,
		logger:   logger,
	}
}

// Subscribe registers a handler for one topic. Handlers for a topic run in
// registration order.
func (b *InProcess) Subscribe(topic string, h port.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[topic] = append(b.handlers[topic], h)
}

// SubscribeAll registers a tap that observes every emitted event. Tap errors
// are logged, never propagated; taps must not affect pipeline outcome.
func (b *InProcess) SubscribeAll(h port.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.taps = append(b.taps, h)
}

// Emit delivers the event to every subscriber of its topic, synchronously.
// The first handler error aborts delivery to later handlers and propagates to
// the emitter so the invoking stage can surface it for redelivery.
func (b *InProcess) Emit(ctx context.Context, evt port.Event) error {
	b.mu.RLock()
	handlers := b.handlers[evt.Topic]
	taps := b.taps
	b.mu.RUnlock()

	if b.metrics != nil {
		b.metrics.IncrEventEmitted(evt.Topic)
	}
	if b.logger != nil {
		b.logger.Debug("event emitted",
			zap.String("topic", evt.Topic),
			zap.Int("subscribers", len(handlers)),
		)
	}

	for _, tap := range taps {
		if err := tap(ctx, evt); err != nil && b.logger != nil {
			b.logger.Warn("event tap failed", zap.String("topic", evt.Topic), zap.Error(err))
		}
	}

	for _, h := range handlers {
		if err := h(ctx, evt); err != nil {
			if b.logger != nil {
				b.logger.Error("event handler failed",
					zap.String("topic", evt.Topic),
					zap.Error(err),
				)
			}
			return fmt.Errorf("bus: handler for %s: %w", evt.Topic, err)
		}
	}
	return nil
}
