package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/yubarajDas/payguard-motia/internal/config"
	"github.com/yubarajDas/payguard-motia/internal/domain"
	"github.com/yubarajDas/payguard-motia/internal/handler"
	"github.com/yubarajDas/payguard-motia/internal/infra/bus"
	"github.com/yubarajDas/payguard-motia/internal/infra/cache"
	"github.com/yubarajDas/payguard-motia/internal/infra/client"
	"github.com/yubarajDas/payguard-motia/internal/infra/clock"
	"github.com/yubarajDas/payguard-motia/internal/infra/observability"
	"github.com/yubarajDas/payguard-motia/internal/infra/resilience"
	"github.com/yubarajDas/payguard-motia/internal/infra/sched"
	"github.com/yubarajDas/payguard-motia/internal/infra/state"
	"github.com/yubarajDas/payguard-motia/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("scan_interval", cfg.ScanInterval),
		zap.Duration("summary_interval", cfg.SummaryInterval),
		zap.Int("notify_before_days", cfg.NotifyBeforeDays),
		zap.Bool("notify_on_due_date", cfg.NotifyOnDueDate),
		zap.Bool("repeat_overdue_daily", cfg.RepeatOverdueDaily),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdownTracer, err := observability.InitTracer(cfg.OTLPEndpoint, "payguard")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdownTracer(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Collaborators ---
	sysClock := clock.NewSystem()
	store := state.NewMemory()
	eventBus := bus.New(metrics, logger)

	recorder := bus.NewRecorder(cfg.EventLogSize, sysClock)
	eventBus.SubscribeAll(recorder.Record)

	// --- Reminder policy (one global policy, explicit everywhere) ---
	policy := domain.ReminderPolicy{
		NotifyBeforeDays:   cfg.NotifyBeforeDays,
		NotifyOnDueDate:    cfg.NotifyOnDueDate,
		RepeatOverdueDaily: cfg.RepeatOverdueDaily,
	}

	// --- Services ---
	billSvc := service.NewBillService(store, eventBus, sysClock, logger)
	subSvc := service.NewSubscriptionService(store, eventBus, sysClock, logger)
	summarySvc := service.NewSummaryService(store, eventBus, sysClock,
		cache.New[domain.DashboardSummary](cfg.SummaryCacheTTL), cfg.DueSoonDays, logger)
	scanner := service.NewOverdueScanner(store, eventBus, sysClock, metrics, logger)
	escalation := service.NewEscalationEngine(eventBus, sysClock, metrics, logger)

	resolver := client.NewStaticResolver(cfg.NotificationRecipient)
	dispatcher := service.NewNotificationDispatcher(
		eventBus, sysClock, resolver,
		resilience.NewCircuitBreaker("recipient-directory"),
		metrics, logger,
	)
	audit := service.NewAuditHandler(sysClock, policy, logger)

	// --- Pipeline wiring ---
	// Stages subscribe synchronously, which is what guarantees the
	// overdue -> escalation -> notification order per bill.
	eventBus.Subscribe(domain.TopicBillOverdue, escalation.HandleBillOverdue)
	eventBus.Subscribe(domain.TopicEscalationEvaluate, dispatcher.HandleEscalation)
	eventBus.Subscribe(domain.TopicBillCreated, audit.HandleBillCreated)
	eventBus.Subscribe(domain.TopicSubscriptionCreated, audit.HandleSubscriptionCreated)

	// --- Scheduler ---
	runner := sched.NewRunner(resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
	}, metrics, logger)
	runner.Add(sched.Job{Name: "overdue-scan", Interval: cfg.ScanInterval, Run: scanner.Run})
	runner.Add(sched.Job{Name: "daily-summary", Interval: cfg.SummaryInterval, Run: summarySvc.Run})

	// --- Router ---
	router := handler.NewRouter(handler.Deps{
		Bills:          billSvc,
		Subscriptions:  subSvc,
		Summary:        summarySvc,
		Recorder:       recorder,
		Metrics:        metrics,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return runner.Start(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
