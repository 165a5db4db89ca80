package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSchedulerRunsJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	var calls atomic.Int32
	s.Add("count", 5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestSchedulerNoOverlap(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	var active, maxActive, calls atomic.Int32
	s.Add("slow", 2*time.Millisecond, func(ctx context.Context) error {
		n := active.Add(1)
		defer active.Add(-1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	require.Equal(t, int32(1), maxActive.Load())
}

func TestSchedulerDisabledJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	s.Add("off", 0, func(ctx context.Context) error {
		t.Error("disabled job must not run")
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))
}
