package service

import (
	"context"
	"fmt"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/infra/observability"
	"github.com/yubarajDas/payguard-motia/internal/port"

	"go.uber.org/zap"
)

// AuditHandler observes creation events for the audit trail. It mutates no
// state; it logs the reminder policy that will apply to a new bill and the
// projected renewal date of a new subscription.
type AuditHandler struct {
	clock          port.Clock
	reminderPolicy domain.ReminderPolicy
	logger         *zap.Logger
}

// NewAuditHandler wires the audit stage.
func NewAuditHandler(clock port.Clock, reminderPolicy domain.ReminderPolicy, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{clock: clock, reminderPolicy: reminderPolicy, logger: logger}
}

// HandleBillCreated is the bus subscriber for the bill.created topic.
func (a *AuditHandler) HandleBillCreated(ctx context.Context, evt port.Event) error {
	created, ok := evt.Data.(domain.BillCreatedEvent)
	if !ok {
		return fmt.Errorf("audit: unexpected payload %T on %s", evt.Data, evt.Topic)
	}

	schedule := ProjectSchedule(created.Bill, a.reminderPolicy, a.clock.Today())

	a.logger.Info("bill creation processed",
		zap.String("bill_id", created.Bill.ID),
		zap.String("name", created.Bill.Name),
		zap.Int64("amount", created.Bill.Amount),
		zap.String("due_date", created.Bill.DueDate),
		zap.Int("notify_before_days", a.reminderPolicy.NotifyBeforeDays),
		zap.Bool("notify_on_due_date", a.reminderPolicy.NotifyOnDueDate),
		zap.Bool("repeat_overdue_daily", a.reminderPolicy.RepeatOverdueDaily),
		zap.Int("projected_reminders", len(schedule)),
		zap.String("trace_id", observability.TraceIDFromContext(ctx)),
	)
	return nil
}

// HandleSubscriptionCreated is the bus subscriber for the
// subscription.created topic.
func (a *AuditHandler) HandleSubscriptionCreated(ctx context.Context, evt port.Event) error {
	created, ok := evt.Data.(domain.SubscriptionCreatedEvent)
	if !ok {
		return fmt.Errorf("audit: unexpected payload %T on %s", evt.Data, evt.Topic)
	}

	nextRenewal := domain.NextRenewalDate(created.Subscription.RenewalDay, a.clock.Today())

	a.logger.Info("subscription creation processed",
		zap.String("subscription_id", created.Subscription.ID),
		zap.String("name", created.Subscription.Name),
		zap.Int("renewal_day", created.Subscription.RenewalDay),
		zap.String("next_renewal_date", nextRenewal),
		zap.Bool("is_active", created.Subscription.IsActive),
		zap.String("trace_id", observability.TraceIDFromContext(ctx)),
	)
	return nil
}
