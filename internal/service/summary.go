package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/infra/cache"
	"github.com/yubarajDas/payguard-motia/internal/port"

	"go.uber.org/zap"
)

const dashboardCacheKey = "dashboard"

// SummaryService computes bill rollups: the daily summary event (cron-driven)
// and the dashboard snapshot behind GET /payguard/summary. Both are full
// recomputations over the bill set; there is no incremental state.
type SummaryService struct {
	store       port.StateStore
	bus         port.EventBus
	clock       port.Clock
	dashCache   *cache.InMemory[domain.DashboardSummary]
	dueSoonDays int
	logger      *zap.Logger
}

// NewSummaryService wires the aggregation service.
func NewSummaryService(store port.StateStore, bus port.EventBus, clock port.Clock, dashCache *cache.InMemory[domain.DashboardSummary], dueSoonDays int, logger *zap.Logger) *SummaryService {
	if dueSoonDays <= 0 {
		dueSoonDays = 7
	}
	return &SummaryService{
		store:       store,
		bus:         bus,
		clock:       clock,
		dashCache:   dashCache,
		dueSoonDays: dueSoonDays,
		logger:      logger,
	}
}

// Run executes one aggregation pass and emits exactly one
// daily.summary.generated event, even over an empty bill set.
//
// Counting rules: totalAmount covers all bills regardless of status; paid
// bills contribute nothing else. Unpaid bills count toward totalBills, overdue
// ones toward overdue/overdueAmount, and those more than 3 days overdue toward
// critical. By construction overdue <= totalBills, critical <= overdue and
// overdueAmount <= totalAmount.
func (s *SummaryService) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "SummaryService.Run")
	defer span.End()

	currentDate := s.clock.Today()
	timestamp := s.clock.Timestamp()

	var bills []domain.Bill
	if err := s.store.GetGroup(ctx, domain.CollectionBills, &bills); err != nil {
		return fmt.Errorf("daily summary: load bills: %w", err)
	}

	summary := domain.DailySummary{Date: currentDate}
	for _, bill := range bills {
		summary.TotalAmount += bill.Amount

		if bill.Status == domain.BillStatusPaid {
			continue
		}
		summary.TotalBills++

		daysOverdue := domain.DaysOverdue(bill.DueDate, currentDate)
		if daysOverdue == 0 {
			continue
		}
		summary.Overdue++
		summary.OverdueAmount += bill.Amount
		if daysOverdue > 3 {
			summary.Critical++
		}
	}

	s.logger.Info("daily summary generated",
		zap.String("date", summary.Date),
		zap.Int("total_bills", summary.TotalBills),
		zap.Int("overdue", summary.Overdue),
		zap.Int("critical", summary.Critical),
		zap.Int64("total_amount", summary.TotalAmount),
		zap.Int64("overdue_amount", summary.OverdueAmount),
	)

	if err := s.bus.Emit(ctx, port.Event{
		Topic: domain.TopicDailySummaryGenerated,
		Data: domain.DailySummaryGeneratedEvent{
			Summary:   summary,
			Timestamp: timestamp,
		},
	}); err != nil {
		return fmt.Errorf("daily summary: emit: %w", err)
	}

	return nil
}

// Dashboard returns the read-side snapshot for the frontend, cached briefly
// to absorb dashboard polling.
func (s *SummaryService) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	ctx, span := tracer.Start(ctx, "SummaryService.Dashboard")
	defer span.End()

	if s.dashCache != nil {
		if cached, ok := s.dashCache.Get(dashboardCacheKey); ok {
			return &cached, nil
		}
	}

	var bills []domain.Bill
	if err := s.store.GetGroup(ctx, domain.CollectionBills, &bills); err != nil {
		return nil, &domain.ErrInternal{Op: "SummaryService.Dashboard", Err: err}
	}

	currentDate := s.clock.Today()
	dueSoonCutoff := addDays(currentDate, s.dueSoonDays)

	dash := domain.DashboardSummary{LastUpdated: s.clock.Timestamp()}
	for _, bill := range bills {
		dash.TotalAmount += bill.Amount

		if bill.Status == domain.BillStatusPaid {
			continue
		}
		dash.TotalBills++

		daysOverdue := domain.DaysOverdue(bill.DueDate, currentDate)
		if daysOverdue > 0 {
			dash.OverdueBills++
			dash.OverdueAmount += bill.Amount
			if daysOverdue > 3 {
				dash.CriticalBills++
			}
		}

		if bill.DueDate >= currentDate && bill.DueDate <= dueSoonCutoff {
			dash.DueSoonBills++
		}
	}

	// Most recently created bills first, capped at 5.
	sort.Slice(bills, func(i, j int) bool { return bills[i].CreatedAt > bills[j].CreatedAt })
	if len(bills) > 5 {
		bills = bills[:5]
	}
	dash.RecentBills = bills

	if s.dashCache != nil {
		s.dashCache.Set(dashboardCacheKey, dash)
	}
	return &dash, nil
}

// InvalidateDashboard drops the cached snapshot after a bill mutation.
func (s *SummaryService) InvalidateDashboard() {
	if s.dashCache != nil {
		s.dashCache.Delete(dashboardCacheKey)
	}
}

func addDays(date string, days int) string {
	t, _ := time.Parse(domain.DateLayout, date)
	return t.AddDate(0, 0, days).Format(domain.DateLayout)
}
