package service

import (
	"context"
	"fmt"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/infra/observability"
	"github.com/yubarajDas/payguard-motia/internal/port"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Message templates selected by escalation level.
const (
	TemplateBillDueToday        = "bill_due_today"
	TemplateBillOverdueWarning  = "bill_overdue_warning"
	TemplateBillOverdueCritical = "bill_overdue_critical"
	TemplateBillOverdueGeneric  = "bill_overdue_generic"
)

// NotificationDispatcher consumes escalation.evaluate events and emits one
// notification intent each. Actual delivery is someone else's job; the
// dispatcher only decides template, recipient and payload.
type NotificationDispatcher struct {
	bus      port.EventBus
	clock    port.Clock
	resolver port.RecipientResolver
	breaker  *gobreaker.CircuitBreaker
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewNotificationDispatcher wires the notification stage. The resolver call
// goes through the circuit breaker so a misbehaving recipient directory trips
// fast instead of stalling every pipeline pass.
func NewNotificationDispatcher(bus port.EventBus, clock port.Clock, resolver port.RecipientResolver, breaker *gobreaker.CircuitBreaker, metrics *observability.Metrics, logger *zap.Logger) *NotificationDispatcher {
	return &NotificationDispatcher{
		bus:      bus,
		clock:    clock,
		resolver: resolver,
		breaker:  breaker,
		metrics:  metrics,
		logger:   logger,
	}
}

// TemplateForLevel maps an escalation level to its message template.
// Unrecognized levels cannot occur given the classifier is total, but the
// generic fallback keeps the dispatcher total as well.
func TemplateForLevel(level domain.EscalationLevel) string {
	switch level {
	case domain.EscalationInfo:
		return TemplateBillDueToday
	case domain.EscalationWarning:
		return TemplateBillOverdueWarning
	case domain.EscalationCritical:
		return TemplateBillOverdueCritical
	default:
		return TemplateBillOverdueGeneric
	}
}

// HandleEscalation is the bus subscriber for the escalation.evaluate topic.
func (d *NotificationDispatcher) HandleEscalation(ctx context.Context, evt port.Event) error {
	escalation, ok := evt.Data.(domain.EscalationEvaluateEvent)
	if !ok {
		return fmt.Errorf("notification: unexpected payload %T on %s", evt.Data, evt.Topic)
	}

	timestamp := d.clock.Timestamp()
	template := TemplateForLevel(escalation.EscalationContext.Level)
	traceID := observability.TraceIDFromContext(ctx)

	recipient, err := d.breaker.Execute(func() (any, error) {
		return d.resolver.Resolve(ctx, escalation.Bill)
	})
	if err != nil {
		return fmt.Errorf("notification: resolve recipient for %s: %w", escalation.Bill.ID, err)
	}

	if d.metrics != nil {
		d.metrics.IncrNotification(template)
	}

	d.logger.Info("notification intent emitted",
		zap.String("bill_id", escalation.Bill.ID),
		zap.String("template", template),
		zap.String("level", string(escalation.EscalationContext.Level)),
		zap.String("trace_id", traceID),
	)

	return d.bus.Emit(ctx, port.Event{
		Topic: domain.TopicNotificationSend,
		Data: domain.NotificationSendEvent{
			Recipient:       recipient.(string),
			MessageTemplate: template,
			ContextData: domain.NotificationContext{
				BillID:          escalation.Bill.ID,
				BillName:        escalation.Bill.Name,
				Amount:          escalation.Bill.Amount,
				DueDate:         escalation.Bill.DueDate,
				DaysOverdue:     escalation.EscalationContext.DaysOverdue,
				EscalationLevel: escalation.EscalationContext.Level,
				Status:          escalation.Bill.Status,
			},
			Timestamp: timestamp,
			TraceID:   traceID,
		},
	})
}
