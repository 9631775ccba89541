package sched_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yubarajDas/payguard-motia/internal/infra/resilience"
	"github.com/yubarajDas/payguard-motia/internal/infra/sched"

	"go.uber.org/zap"
)

func TestRunnerRunsJobOnInterval(t *testing.T) {
	runner := sched.NewRunner(resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond}, nil, zap.NewNop())

	var runs atomic.Int32
	runner.Add(sched.Job{
		Name:     "tick",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := runner.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := runs.Load(); got < 3 {
		t.Errorf("job ran %d times over 100ms at 10ms interval, want >= 3", got)
	}
}

func TestRunnerRetriesFailedRun(t *testing.T) {
	runner := sched.NewRunner(resilience.Config{MaxRetries: 2, InitialBackoff: time.Millisecond}, nil, zap.NewNop())

	var calls atomic.Int32
	runner.Add(sched.Job{
		Name:     "flaky",
		Interval: 20 * time.Millisecond,
		Run: func(ctx context.Context) error {
			if calls.Add(1) == 1 {
				return errors.New("transient")
			}
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := runner.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// The first delivery fails once and is retried within the same tick.
	if got := calls.Load(); got < 2 {
		t.Errorf("job called %d times, want the retry to have fired", got)
	}
}

func TestRunnerSkipsOverlappingRuns(t *testing.T) {
	runner := sched.NewRunner(resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond}, nil, zap.NewNop())

	var active, maxActive atomic.Int32
	runner.Add(sched.Job{
		Name:     "slow",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			cur := active.Add(1)
			if cur > maxActive.Load() {
				maxActive.Store(cur)
			}
			time.Sleep(35 * time.Millisecond)
			active.Add(-1)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	if err := runner.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := maxActive.Load(); got > 1 {
		t.Errorf("observed %d concurrent runs of the same job, want at most 1", got)
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	runner := sched.NewRunner(resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond}, nil, zap.NewNop())
	runner.Add(sched.Job{
		Name:     "noop",
		Interval: 5 * time.Millisecond,
		Run:      func(ctx context.Context) error { return nil },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}
