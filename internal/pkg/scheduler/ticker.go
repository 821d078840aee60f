package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Job func(ctx context.Context) error

// Ticker runs a job at a fixed interval on its own goroutine. Runs never overlap; a tick that
// arrives while the job is still running is dropped.
type Ticker struct {
	name     string
	interval time.Duration
	job      Job
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTicker(name string, interval time.Duration, job Job, logger *slog.Logger) *Ticker {
	return &Ticker{
		name:     name,
		interval: interval,
		job:      job,
		logger:   logger.With(slog.String("job", name)),
	}
}

// Start is idempotent. The job keeps running until Stop, independent of ctx's deadline.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.run(runCtx)
	t.logger.Info("scheduler started", slog.Duration("interval", t.interval))
}

// Stop cancels the running job and waits for it to return.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel == nil {
		return
	}
	t.cancel()
	t.cancel = nil
	<-t.done
	t.logger.Info("scheduler stopped")
}

func (t *Ticker) run(ctx context.Context) {
	defer close(t.done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.job(ctx); err != nil && ctx.Err() == nil {
				t.logger.Warn("scheduled job failed", slog.Any("error", err))
			}
		}
	}
}
