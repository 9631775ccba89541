package service

import (
	"context"
	"strings"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service")

// BillService owns the bill lifecycle state machine: creation with
// validation, payment, deletion and reads. All mutations go through the state
// store as whole-record replacements.
type BillService struct {
	store  port.StateStore
	bus    port.EventBus
	clock  port.Clock
	logger *zap.Logger
}

// NewBillService wires the bill lifecycle service.
func NewBillService(store port.StateStore, bus port.EventBus, clock port.Clock, logger *zap.Logger) *BillService {
	return &BillService{store: store, bus: bus, clock: clock, logger: logger}
}

// Create validates the request, stores the new bill in pending status and
// emits exactly one bill.created event carrying the stored record unchanged.
// Validation failures leave no state and emit nothing.
func (s *BillService) Create(ctx context.Context, req *domain.CreateBillRequest) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "BillService.Create")
	defer span.End()

	if strings.TrimSpace(req.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if !domain.IsValidDate(req.DueDate) {
		return nil, &domain.ErrValidation{Field: "dueDate", Message: "invalid format, use YYYY-MM-DD"}
	}

	// The due date is validated against the clock at creation time only;
	// nothing re-checks it later.
	today := s.clock.Today()
	if req.DueDate < today {
		return nil, &domain.ErrValidation{Field: "dueDate", Message: "cannot be in the past"}
	}

	timestamp := s.clock.Timestamp()
	bill := domain.Bill{
		ID:        domain.NewBillID(),
		Name:      req.Name,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Status:    domain.BillStatusPending,
		CreatedAt: timestamp,
		UpdatedAt: timestamp,
	}

	// Defense in depth: re-validate the constructed record before it can
	// reach the store.
	if err := bill.Validate(); err != nil {
		s.logger.Error("constructed bill failed validation", zap.String("bill_id", bill.ID), zap.Error(err))
		return nil, err
	}

	if err := s.store.Set(ctx, domain.CollectionBills, bill.ID, bill); err != nil {
		return nil, &domain.ErrInternal{Op: "BillService.Create", Err: err}
	}

	if err := s.bus.Emit(ctx, port.Event{
		Topic: domain.TopicBillCreated,
		Data: domain.BillCreatedEvent{
			Bill:      bill,
			Timestamp: timestamp,
		},
	}); err != nil {
		return nil, &domain.ErrInternal{Op: "BillService.Create", Err: err}
	}

	s.logger.Info("bill created",
		zap.String("bill_id", bill.ID),
		zap.String("name", bill.Name),
		zap.Int64("amount", bill.Amount),
		zap.String("due_date", bill.DueDate),
	)

	return &bill, nil
}

// Get returns a single bill by id.
func (s *BillService) Get(ctx context.Context, billID string) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "BillService.Get")
	defer span.End()

	var bill domain.Bill
	found, err := s.store.Get(ctx, domain.CollectionBills, billID, &bill)
	if err != nil {
		return nil, &domain.ErrInternal{Op: "BillService.Get", Err: err}
	}
	if !found {
		return nil, &domain.ErrNotFound{Resource: "bill", ID: billID}
	}
	return &bill, nil
}

// List returns every bill in the store, ordered by id.
func (s *BillService) List(ctx context.Context) ([]domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "BillService.List")
	defer span.End()

	var bills []domain.Bill
	if err := s.store.GetGroup(ctx, domain.CollectionBills, &bills); err != nil {
		return nil, &domain.ErrInternal{Op: "BillService.List", Err: err}
	}
	return bills, nil
}

// Pay transitions a bill into the terminal paid state. Paying a bill that is
// already paid is a conflict, not an idempotent success, and leaves the record
// (including updatedAt) untouched.
func (s *BillService) Pay(ctx context.Context, billID string) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "BillService.Pay")
	defer span.End()

	bill, err := s.Get(ctx, billID)
	if err != nil {
		return nil, err
	}

	if bill.Status == domain.BillStatusPaid {
		return nil, &domain.ErrConflict{Resource: "bill", ID: billID, Reason: "already paid"}
	}

	previousStatus := bill.Status
	bill.Status = domain.BillStatusPaid
	bill.UpdatedAt = s.clock.Timestamp()

	if err := s.store.Set(ctx, domain.CollectionBills, billID, bill); err != nil {
		return nil, &domain.ErrInternal{Op: "BillService.Pay", Err: err}
	}

	s.logger.Info("bill paid",
		zap.String("bill_id", billID),
		zap.String("previous_status", string(previousStatus)),
	)

	return bill, nil
}

// Delete removes a bill unconditionally given a valid id.
func (s *BillService) Delete(ctx context.Context, billID string) (*domain.Bill, error) {
	ctx, span := tracer.Start(ctx, "BillService.Delete")
	defer span.End()

	bill, err := s.Get(ctx, billID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, domain.CollectionBills, billID); err != nil {
		return nil, &domain.ErrInternal{Op: "BillService.Delete", Err: err}
	}

	s.logger.Info("bill deleted",
		zap.String("bill_id", billID),
		zap.String("name", bill.Name),
	)

	return bill, nil
}
