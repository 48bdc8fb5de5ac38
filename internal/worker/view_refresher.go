package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ViewRefresher rebuilds the gateway's cached catalog and order views. It
// wakes on admin mutation signals and on a periodic tick so views never
// grow stale even without mutations.
type ViewRefresher struct {
	views    Refreshable
	signals  <-chan struct{}
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// Refreshable is what the refresher needs from the gateway.
type Refreshable interface {
	Invalidate()
	WarmUp(ctx context.Context) error
}

// NewViewRefresher constructs the background refresher.
func NewViewRefresher(views Refreshable, signals <-chan struct{}, interval time.Duration, logger *slog.Logger) *ViewRefresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ViewRefresher{
		views:    views,
		signals:  signals,
		interval: interval,
		logger:   logger,
	}
}

// Start launches background refreshing.
func (r *ViewRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.run(runCtx)
}

// Stop waits for the refresh loop to finish.
func (r *ViewRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *ViewRefresher) run(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.signals:
			r.refresh(ctx)
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh drops the cached views and rebuilds them. Failures are logged
// and left for the next cycle; callers reading through the gateway still
// get the ladder's fallback behaviour.
func (r *ViewRefresher) refresh(ctx context.Context) {
	r.views.Invalidate()
	if err := r.views.WarmUp(ctx); err != nil {
		r.logger.Error("view refresh failed", slog.String("error", err.Error()))
		return
	}
	r.logger.Debug("views refreshed")
}
