package service

import (
	"context"
	"fmt"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/infra/observability"
	"github.com/yubarajDas/payguard-motia/internal/port"

	"go.uber.org/zap"
)

// EscalationEngine consumes bill.overdue events, classifies severity and
// fans out escalation.evaluate events. Stateless: no store access, one output
// event per input event.
type EscalationEngine struct {
	bus     port.EventBus
	clock   port.Clock
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewEscalationEngine wires the escalation stage.
func NewEscalationEngine(bus port.EventBus, clock port.Clock, metrics *observability.Metrics, logger *zap.Logger) *EscalationEngine {
	return &EscalationEngine{bus: bus, clock: clock, metrics: metrics, logger: logger}
}

// HandleBillOverdue is the bus subscriber for the bill.overdue topic.
func (e *EscalationEngine) HandleBillOverdue(ctx context.Context, evt port.Event) error {
	overdue, ok := evt.Data.(domain.BillOverdueEvent)
	if !ok {
		return fmt.Errorf("escalation: unexpected payload %T on %s", evt.Data, evt.Topic)
	}

	timestamp := e.clock.Timestamp()
	level := domain.ClassifyEscalation(overdue.DaysOverdue)

	escalationContext := domain.EscalationContext{
		BillID:      overdue.Bill.ID,
		DaysOverdue: overdue.DaysOverdue,
		Level:       level,
		Timestamp:   timestamp,
	}

	if e.metrics != nil {
		e.metrics.IncrEscalation(string(level))
	}

	e.logger.Info("escalation evaluated",
		zap.String("bill_id", overdue.Bill.ID),
		zap.Int("days_overdue", overdue.DaysOverdue),
		zap.String("level", string(level)),
	)

	return e.bus.Emit(ctx, port.Event{
		Topic: domain.TopicEscalationEvaluate,
		Data: domain.EscalationEvaluateEvent{
			EscalationContext: escalationContext,
			Bill:              overdue.Bill,
			Timestamp:         timestamp,
		},
	})
}
