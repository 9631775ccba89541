package service

import (
	"context"
	"fmt"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/infra/observability"
	"github.com/yubarajDas/payguard-motia/internal/port"

	"go.uber.org/zap"
)

// OverdueScanner is the cron-driven stage that detects bills past their due
// date. Each run re-derives the current date and walks every non-paid bill;
// nothing carries over between runs.
type OverdueScanner struct {
	store   port.StateStore
	bus     port.EventBus
	clock   port.Clock
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewOverdueScanner wires the scan stage.
func NewOverdueScanner(store port.StateStore, bus port.EventBus, clock port.Clock, metrics *observability.Metrics, logger *zap.Logger) *OverdueScanner {
	return &OverdueScanner{store: store, bus: bus, clock: clock, metrics: metrics, logger: logger}
}

// Run executes one scan pass. For every unpaid bill past its due date it
// transitions pending bills to overdue and emits one bill.overdue event; bills
// already overdue are re-emitted without a state write so downstream
// escalation and notification fire again each cycle (daily repeat reminders).
//
// Running twice on the same logical day is idempotent for state but not for
// emission: consumers must treat notifications as intent, not delivery.
//
// A failure processing one bill aborts the rest of the pass; the error
// surfaces to the scheduler, whose retry re-drives the whole scan.
func (s *OverdueScanner) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "OverdueScanner.Run")
	defer span.End()

	currentDate := s.clock.Today()
	timestamp := s.clock.Timestamp()

	var bills []domain.Bill
	if err := s.store.GetGroup(ctx, domain.CollectionBills, &bills); err != nil {
		return fmt.Errorf("overdue scan: load bills: %w", err)
	}

	s.logger.Info("overdue scan started",
		zap.String("current_date", currentDate),
		zap.Int("bill_count", len(bills)),
	)

	var checked, overdueFound, updated int
	for _, bill := range bills {
		if bill.Status == domain.BillStatusPaid {
			continue
		}
		checked++

		daysOverdue := domain.DaysOverdue(bill.DueDate, currentDate)
		if daysOverdue == 0 {
			continue
		}
		overdueFound++

		switch bill.Status {
		case domain.BillStatusPending:
			bill.Status = domain.BillStatusOverdue
			bill.UpdatedAt = timestamp

			if err := s.store.Set(ctx, domain.CollectionBills, bill.ID, bill); err != nil {
				return fmt.Errorf("overdue scan: persist %s: %w", bill.ID, err)
			}
			updated++

			s.logger.Info("bill transitioned to overdue",
				zap.String("bill_id", bill.ID),
				zap.String("due_date", bill.DueDate),
				zap.Int("days_overdue", daysOverdue),
			)

			if err := s.emitOverdue(ctx, bill, daysOverdue, timestamp); err != nil {
				return err
			}

		case domain.BillStatusOverdue:
			// Already overdue: re-emit with the current record, no write.
			if err := s.emitOverdue(ctx, bill, daysOverdue, timestamp); err != nil {
				return err
			}
		}
	}

	if s.metrics != nil {
		s.metrics.AddBillsChecked(checked)
	}

	s.logger.Info("overdue scan completed",
		zap.Int("checked", checked),
		zap.Int("overdue", overdueFound),
		zap.Int("updated", updated),
		zap.String("current_date", currentDate),
	)

	return nil
}

func (s *OverdueScanner) emitOverdue(ctx context.Context, bill domain.Bill, daysOverdue int, timestamp string) error {
	err := s.bus.Emit(ctx, port.Event{
		Topic: domain.TopicBillOverdue,
		Data: domain.BillOverdueEvent{
			Bill:        bill,
			DaysOverdue: daysOverdue,
			Timestamp:   timestamp,
		},
	})
	if err != nil {
		return fmt.Errorf("overdue scan: emit for %s: %w", bill.ID, err)
	}
	return nil
}
