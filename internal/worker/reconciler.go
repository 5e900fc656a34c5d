package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ReconcileFacade exposes the subset of application functionality required
// by the background sweeper.
type ReconcileFacade interface {
	Reconcile(ctx context.Context, now time.Time) error
}

// Reconciler periodically runs the streak-decay sweep. Each tick is one
// full, idempotent sweep; there is no cross-request state to coordinate.
type Reconciler struct {
	facade   ReconcileFacade
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the background reconciliation runner.
func NewReconciler(facade ReconcileFacade, interval time.Duration, logger *slog.Logger) *Reconciler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Reconciler{
		facade:   facade,
		interval: interval,
		logger:   logger,
	}
}

// Start launches background sweeping.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.loop(runCtx)
}

// Stop waits for an in-flight sweep to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reconciler) sweep(ctx context.Context) {
	if err := r.facade.Reconcile(ctx, time.Now()); err != nil {
		r.logger.Error("reconciliation sweep failed", slog.String("error", err.Error()))
	}
}
