package service

import (
	"context"
	"strings"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/port"

	"go.uber.org/zap"
)

// SubscriptionService handles recurring charges. Subscriptions share the
// store with bills but never enter the overdue pipeline.
type SubscriptionService struct {
	store  port.StateStore
	bus    port.EventBus
	clock  port.Clock
	logger *zap.Logger
}

// NewSubscriptionService wires the subscription service.
func NewSubscriptionService(store port.StateStore, bus port.EventBus, clock port.Clock, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{store: store, bus: bus, clock: clock, logger: logger}
}

// Create validates the request, stores the subscription as active and emits
// one subscription.created event.
func (s *SubscriptionService) Create(ctx context.Context, req *domain.CreateSubscriptionRequest) (*domain.Subscription, error) {
	ctx, span := tracer.Start(ctx, "SubscriptionService.Create")
	defer span.End()

	if strings.TrimSpace(req.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if req.RenewalDay < 1 || req.RenewalDay > 31 {
		return nil, &domain.ErrValidation{Field: "renewalDay", Message: "must be between 1 and 31"}
	}

	timestamp := s.clock.Timestamp()
	sub := domain.Subscription{
		ID:         domain.NewSubscriptionID(),
		Name:       req.Name,
		Amount:     req.Amount,
		RenewalDay: req.RenewalDay,
		IsActive:   true,
		CreatedAt:  timestamp,
		UpdatedAt:  timestamp,
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, domain.CollectionSubscriptions, sub.ID, sub); err != nil {
		return nil, &domain.ErrInternal{Op: "SubscriptionService.Create", Err: err}
	}

	if err := s.bus.Emit(ctx, port.Event{
		Topic: domain.TopicSubscriptionCreated,
		Data: domain.SubscriptionCreatedEvent{
			Subscription: sub,
			Timestamp:    timestamp,
		},
	}); err != nil {
		return nil, &domain.ErrInternal{Op: "SubscriptionService.Create", Err: err}
	}

	s.logger.Info("subscription created",
		zap.String("subscription_id", sub.ID),
		zap.String("name", sub.Name),
		zap.Int("renewal_day", sub.RenewalDay),
	)

	return &sub, nil
}

// List returns every subscription, ordered by id.
func (s *SubscriptionService) List(ctx context.Context) ([]domain.Subscription, error) {
	ctx, span := tracer.Start(ctx, "SubscriptionService.List")
	defer span.End()

	var subs []domain.Subscription
	if err := s.store.GetGroup(ctx, domain.CollectionSubscriptions, &subs); err != nil {
		return nil, &domain.ErrInternal{Op: "SubscriptionService.List", Err: err}
	}
	return subs, nil
}
