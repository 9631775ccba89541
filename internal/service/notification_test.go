package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/infra/bus"
	"github.com/yubarajDas/payguard-motia/internal/infra/client"
	"github.com/yubarajDas/payguard-motia/internal/infra/resilience"
	"github.com/yubarajDas/payguard-motia/internal/port"
	"github.com/yubarajDas/payguard-motia/internal/service"

	"go.uber.org/zap"
)

func TestTemplateForLevel(t *testing.T) {
	tests := []struct {
		level domain.EscalationLevel
		want  string
	}{
		{domain.EscalationInfo, service.TemplateBillDueToday},
		{domain.EscalationWarning, service.TemplateBillOverdueWarning},
		{domain.EscalationCritical, service.TemplateBillOverdueCritical},
		{domain.EscalationLevel("UNKNOWN"), service.TemplateBillOverdueGeneric},
	}

	for _, tt := range tests {
		if got := service.TemplateForLevel(tt.level); got != tt.want {
			t.Errorf("TemplateForLevel(%s) = %s, want %s", tt.level, got, tt.want)
		}
	}
}

func escalationEvent(bill domain.Bill, daysOverdue int, level domain.EscalationLevel) port.Event {
	return port.Event{
		Topic: domain.TopicEscalationEvaluate,
		Data: domain.EscalationEvaluateEvent{
			EscalationContext: domain.EscalationContext{
				BillID:      bill.ID,
				DaysOverdue: daysOverdue,
				Level:       level,
				Timestamp:   "2025-12-25T00:05:00Z",
			},
			Bill:      bill,
			Timestamp: "2025-12-25T00:05:00Z",
		},
	}
}

func TestNotificationDispatcher_HandleEscalation(t *testing.T) {
	eventBus := bus.New(nil, zap.NewNop())
	rec := &collector{}
	eventBus.Subscribe(domain.TopicNotificationSend, rec.handle)
	clock := &fakeClock{today: "2025-12-25", ts: "2025-12-25T00:05:00Z"}
	resolver := client.NewStaticResolver("user@example.com")
	breaker := resilience.NewCircuitBreaker("recipient-test")
	dispatcher := service.NewNotificationDispatcher(eventBus, clock, resolver, breaker, nil, zap.NewNop())

	bill := testBill(domain.BillStatusOverdue, "2025-12-20")
	err := dispatcher.HandleEscalation(context.Background(), escalationEvent(bill, 5, domain.EscalationCritical))
	if err != nil {
		t.Fatalf("HandleEscalation: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("got %d events, want 1", len(rec.events))
	}
	payload, ok := rec.events[0].Data.(domain.NotificationSendEvent)
	if !ok {
		t.Fatalf("payload type %T", rec.events[0].Data)
	}
	if payload.Recipient != "user@example.com" {
		t.Errorf("recipient = %s", payload.Recipient)
	}
	if payload.MessageTemplate != service.TemplateBillOverdueCritical {
		t.Errorf("template = %s, want %s", payload.MessageTemplate, service.TemplateBillOverdueCritical)
	}
	if payload.TraceID == "" {
		t.Error("traceId must always be set")
	}

	cd := payload.ContextData
	if cd.BillID != bill.ID || cd.BillName != bill.Name || cd.Amount != bill.Amount {
		t.Errorf("contextData identity mismatch: %+v", cd)
	}
	if cd.DaysOverdue != 5 || cd.EscalationLevel != domain.EscalationCritical {
		t.Errorf("contextData severity mismatch: %+v", cd)
	}
	if cd.Status != domain.BillStatusOverdue || cd.DueDate != bill.DueDate {
		t.Errorf("contextData state mismatch: %+v", cd)
	}
}

func TestNotificationDispatcher_ResolverFailure(t *testing.T) {
	eventBus := bus.New(nil, zap.NewNop())
	rec := &collector{}
	eventBus.Subscribe(domain.TopicNotificationSend, rec.handle)
	clock := &fakeClock{today: "2025-12-25", ts: "2025-12-25T00:05:00Z"}
	breaker := resilience.NewCircuitBreaker("recipient-test")
	dispatcher := service.NewNotificationDispatcher(eventBus, clock, failingResolver{}, breaker, nil, zap.NewNop())

	bill := testBill(domain.BillStatusOverdue, "2025-12-20")
	err := dispatcher.HandleEscalation(context.Background(), escalationEvent(bill, 5, domain.EscalationCritical))
	if err == nil {
		t.Fatal("expected resolver failure to propagate")
	}
	if len(rec.events) != 0 {
		t.Errorf("emitted %d events despite resolver failure", len(rec.events))
	}
}

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, domain.Bill) (string, error) {
	return "", errors.New("directory unavailable")
}
