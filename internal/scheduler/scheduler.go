package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type Job func(ctx context.Context) error

type Scheduler interface {
	// Add registers job to run every interval. interval <= 0 disables the job.
	Add(name string, interval time.Duration, job Job)
	// Run blocks until ctx is cancelled and all running jobs return.
	Run(ctx context.Context) error
}

type entry struct {
	name     string
	interval time.Duration
	job      Job
	running  atomic.Bool
}

type scheduler struct {
	entries []*entry
	zaplog  *zap.Logger
}

func NewScheduler(zaplog *zap.Logger) Scheduler {
	return &scheduler{zaplog: zaplog}
}

func (s *scheduler) Add(name string, interval time.Duration, job Job) {
	if interval <= 0 {
		s.zaplog.Info("job disabled", zap.String("job", name))
		return
	}
	s.entries = append(s.entries, &entry{name: name, interval: interval, job: job})
}

func (s *scheduler) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, e := range s.entries {
		wg.Add(1)
		go func(e *entry) {
			defer wg.Done()
			s.loop(ctx, e, &wg)
		}(e)
	}
	wg.Wait()
	return nil
}

func (s *scheduler) loop(ctx context.Context, e *entry, wg *sync.WaitGroup) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Предыдущий запуск не закончился - пропускаем тик
			if !e.running.CompareAndSwap(false, true) {
				s.zaplog.Warn("job still running, tick skipped", zap.String("job", e.name))
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer e.running.Store(false)
				s.exec(ctx, e)
			}()
		}
	}
}

func (s *scheduler) exec(ctx context.Context, e *entry) {
	start := time.Now()
	err := e.job(ctx)
	if err != nil {
		s.zaplog.Error("job failed", zap.String("job", e.name), zap.Error(err))
		return
	}
	s.zaplog.Info("job done", zap.String("job", e.name), zap.Duration("duration", time.Since(start)))
}
