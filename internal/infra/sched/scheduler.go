// Package sched runs the cron-triggered pipeline stages. Each job is invoked
// on its own cadence; a run that fails is redelivered with bounded backoff by
// the runner, never by the stage itself, and overlapping runs of the same job
// are skipped rather than stacked.
package sched

import (
	"context"
	"time"

	"github.com/yubarajDas/payguard-motia/internal/infra/observability"
	"github.com/yubarajDas/payguard-motia/internal/infra/resilience"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("sched")

// Job is one scheduled stage. Run must recompute everything from scratch:
// cadence independence is part of the pipeline contract.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner drives a set of jobs until its context is cancelled.
type Runner struct {
	jobs    []Job
	retry   resilience.Config
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewRunner creates a runner with the given redelivery policy.
func NewRunner(retry resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Runner {
	return &Runner{retry: retry, metrics: metrics, logger: logger}
}

// Add registers a job. Not safe to call after Start.
func (r *Runner) Add(job Job) {
	r.jobs = append(r.jobs, job)
}

// Start blocks running all jobs until ctx is cancelled, then returns nil.
func (r *Runner) Start(ctx context.Context) error {
	done := make(chan struct{})
	for _, job := range r.jobs {
		go func(job Job) {
			r.runLoop(ctx, job)
			done <- struct{}{}
		}(job)
	}
	for range r.jobs {
		<-done
	}
	return nil
}

func (r *Runner) runLoop(ctx context.Context, job Job) {
	guard := resilience.NewBulkhead(1)
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	r.logger.Info("job scheduled",
		zap.String("job", job.Name),
		zap.Duration("interval", job.Interval),
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !guard.TryAcquire() {
				r.logger.Warn("previous run still active, skipping tick", zap.String("job", job.Name))
				continue
			}
			go func() {
				defer guard.Release()
				r.runOnce(ctx, job)
			}()
		}
	}
}

// runOnce executes one delivery of the job, retrying with backoff on failure.
// Exhausted retries are logged and dropped; the next tick re-derives state
// from scratch anyway.
func (r *Runner) runOnce(ctx context.Context, job Job) {
	runCtx, span := tracer.Start(ctx, "job "+job.Name)
	defer span.End()

	start := time.Now()
	err := resilience.RetryWithBackoff(runCtx, r.retry, func() error {
		return job.Run(runCtx)
	})

	if r.metrics != nil {
		r.metrics.RecordJobDuration(job.Name, time.Since(start))
	}

	if err != nil {
		span.RecordError(err)
		if r.metrics != nil {
			r.metrics.IncrJobRun(job.Name, "error")
		}
		r.logger.Error("job failed after retries",
			zap.String("job", job.Name),
			zap.Int("max_retries", r.retry.MaxRetries),
			zap.Error(err),
		)
		return
	}

	if r.metrics != nil {
		r.metrics.IncrJobRun(job.Name, "success")
	}
	r.logger.Info("job completed",
		zap.String("job", job.Name),
		zap.Duration("took", time.Since(start)),
	)
}
