package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/handler"
	"github.com/yubarajDas/payguard-motia/internal/infra/bus"
	"github.com/yubarajDas/payguard-motia/internal/infra/cache"
	"github.com/yubarajDas/payguard-motia/internal/infra/client"
	"github.com/yubarajDas/payguard-motia/internal/infra/observability"
	"github.com/yubarajDas/payguard-motia/internal/infra/resilience"
	"github.com/yubarajDas/payguard-motia/internal/infra/state"
	"github.com/yubarajDas/payguard-motia/internal/service"

	"go.uber.org/zap"
)

// mutableClock lets the test move the pipeline's logical date forward.
type mutableClock struct {
	mu    sync.Mutex
	today string
	ts    string
}

func (c *mutableClock) Today() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.today
}

func (c *mutableClock) Timestamp() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ts
}

func (c *mutableClock) advanceTo(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = date
	c.ts = date + "T00:05:00Z"
}

type pipeline struct {
	server    *httptest.Server
	clock     *mutableClock
	recorder  *bus.Recorder
	scanner   *service.OverdueScanner
	summaries *service.SummaryService
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := state.NewMemory()
	clock := &mutableClock{today: "2025-12-20", ts: "2025-12-20T09:00:00Z"}

	eventBus := bus.New(metrics, logger)
	recorder := bus.NewRecorder(100, clock)
	eventBus.SubscribeAll(recorder.Record)

	billSvc := service.NewBillService(store, eventBus, clock, logger)
	subSvc := service.NewSubscriptionService(store, eventBus, clock, logger)
	summarySvc := service.NewSummaryService(store, eventBus, clock,
		cache.New[domain.DashboardSummary](time.Minute), 7, logger)
	scanner := service.NewOverdueScanner(store, eventBus, clock, metrics, logger)

	escalation := service.NewEscalationEngine(eventBus, clock, metrics, logger)
	dispatcher := service.NewNotificationDispatcher(eventBus, clock,
		client.NewStaticResolver("user@example.com"),
		resilience.NewCircuitBreaker("recipient"), metrics, logger)

	eventBus.Subscribe(domain.TopicBillOverdue, escalation.HandleBillOverdue)
	eventBus.Subscribe(domain.TopicEscalationEvaluate, dispatcher.HandleEscalation)

	srv := httptest.NewServer(handler.NewRouter(handler.Deps{
		Bills:          billSvc,
		Subscriptions:  subSvc,
		Summary:        summarySvc,
		Recorder:       recorder,
		Metrics:        metrics,
		Logger:         logger,
		AllowedOrigins: "*",
	}))
	t.Cleanup(srv.Close)

	return &pipeline{
		server:    srv,
		clock:     clock,
		recorder:  recorder,
		scanner:   scanner,
		summaries: summarySvc,
	}
}

// topicsByOccurrence counts the recorded events per topic.
func topicsByOccurrence(events []bus.RecordedEvent) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Topic]++
	}
	return counts
}

// TestIntegration_OverduePipeline runs the full lifecycle: a bill is created
// over HTTP, the clock advances past its due date, the scan transitions it and
// the escalation and notification stages fire in order within the same pass.
func TestIntegration_OverduePipeline(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	// Day 0: create a bill due in five days.
	resp, err := http.Post(p.server.URL+"/payguard/bills", "application/json",
		strings.NewReader(`{"name":"Electricity","amount":12500,"dueDate":"2025-12-25"}`))
	if err != nil {
		t.Fatalf("POST bills: %v", err)
	}
	var created domain.Bill
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode bill: %v", err)
	}
	resp.Body.Close()

	// Scanning before the due date does nothing.
	if err := p.scanner.Run(ctx); err != nil {
		t.Fatalf("scan (before due): %v", err)
	}
	counts := topicsByOccurrence(p.recorder.Recent())
	if counts[domain.TopicBillOverdue] != 0 {
		t.Fatalf("premature overdue event: %v", counts)
	}

	// Six days past the due date: deep in critical territory.
	p.clock.advanceTo("2025-12-31")
	if err := p.scanner.Run(ctx); err != nil {
		t.Fatalf("scan (after due): %v", err)
	}

	counts = topicsByOccurrence(p.recorder.Recent())
	for topic, want := range map[string]int{
		domain.TopicBillCreated:        1,
		domain.TopicBillOverdue:        1,
		domain.TopicEscalationEvaluate: 1,
		domain.TopicNotificationSend:   1,
	} {
		if counts[topic] != want {
			t.Errorf("%s events = %d, want %d", topic, counts[topic], want)
		}
	}

	// The notification intent reflects the critical escalation (6 days late).
	var notif domain.NotificationSendEvent
	for _, e := range p.recorder.Recent() {
		if e.Topic == domain.TopicNotificationSend {
			notif = e.Data.(domain.NotificationSendEvent)
		}
	}
	if notif.MessageTemplate != "bill_overdue_critical" {
		t.Errorf("template = %s, want bill_overdue_critical", notif.MessageTemplate)
	}
	if notif.Recipient != "user@example.com" {
		t.Errorf("recipient = %s", notif.Recipient)
	}
	if notif.ContextData.DaysOverdue != 6 || notif.ContextData.BillID != created.ID {
		t.Errorf("contextData = %+v", notif.ContextData)
	}

	// A second scan the same day re-drives escalation and notification but
	// leaves the stored bill unchanged.
	if err := p.scanner.Run(ctx); err != nil {
		t.Fatalf("scan (repeat): %v", err)
	}
	counts = topicsByOccurrence(p.recorder.Recent())
	if counts[domain.TopicNotificationSend] != 2 {
		t.Errorf("notification.send events = %d after repeat scan, want 2", counts[domain.TopicNotificationSend])
	}

	// Daily summary sees the overdue bill as critical.
	if err := p.summaries.Run(ctx); err != nil {
		t.Fatalf("summary run: %v", err)
	}
	var summary domain.DailySummary
	for _, e := range p.recorder.Recent() {
		if e.Topic == domain.TopicDailySummaryGenerated {
			summary = e.Data.(domain.DailySummaryGeneratedEvent).Summary
			break
		}
	}
	if summary.TotalBills != 1 || summary.Overdue != 1 || summary.Critical != 1 {
		t.Errorf("summary = %+v, want 1/1/1", summary)
	}
	if summary.OverdueAmount != 12500 {
		t.Errorf("overdueAmount = %d, want 12500", summary.OverdueAmount)
	}

	// Paying the overdue bill settles it; paying again conflicts.
	req, _ := http.NewRequest(http.MethodPatch, p.server.URL+"/payguard/bills/"+created.ID+"/pay", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH pay: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pay status = %d", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodPatch, p.server.URL+"/payguard/bills/"+created.ID+"/pay", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH pay twice: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("double pay status = %d, want 409", resp.StatusCode)
	}

	// Once paid, subsequent scans leave the bill alone.
	if err := p.scanner.Run(ctx); err != nil {
		t.Fatalf("scan (after pay): %v", err)
	}
	counts = topicsByOccurrence(p.recorder.Recent())
	if counts[domain.TopicBillOverdue] != 2 {
		t.Errorf("bill.overdue events = %d after pay, want unchanged 2", counts[domain.TopicBillOverdue])
	}
}

// TestIntegration_EscalationProgression drives one bill through the three
// severity bands over successive scan days.
func TestIntegration_EscalationProgression(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	resp, err := http.Post(p.server.URL+"/payguard/bills", "application/json",
		strings.NewReader(`{"name":"Gas","amount":4200,"dueDate":"2025-12-21"}`))
	if err != nil {
		t.Fatalf("POST bills: %v", err)
	}
	resp.Body.Close()

	wantTemplates := map[string]string{
		"2025-12-22": "bill_overdue_warning",  // 1 day late
		"2025-12-24": "bill_overdue_warning",  // 3 days late, still warning
		"2025-12-26": "bill_overdue_critical", // 5 days late
	}

	for _, day := range []string{"2025-12-22", "2025-12-24", "2025-12-26"} {
		p.clock.advanceTo(day)
		if err := p.scanner.Run(ctx); err != nil {
			t.Fatalf("scan on %s: %v", day, err)
		}

		// Newest first: the latest notification is the first in the feed.
		var template string
		for _, e := range p.recorder.Recent() {
			if e.Topic == domain.TopicNotificationSend {
				template = e.Data.(domain.NotificationSendEvent).MessageTemplate
				break
			}
		}
		if template != wantTemplates[day] {
			t.Errorf("on %s: template = %s, want %s", day, template, wantTemplates[day])
		}
	}
}
