package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PublisherReconciler is the counter maintenance the scheduler runs.
type PublisherReconciler interface {
	ReconcilePublisherTotals(ctx context.Context) (int, error)
}

// ReconcileWorker periodically repairs denormalized publisher counters,
// which are maintained by best-effort event handlers and can drift.
type ReconcileWorker struct {
	reconciler PublisherReconciler
	logger     *zap.Logger
	cron       *cron.Cron
	timeout    time.Duration
}

// NewReconcileWorker schedules reconciliation using a standard cron spec or
// a descriptor such as "@hourly".
func NewReconcileWorker(reconciler PublisherReconciler, schedule string, timeout time.Duration, logger *zap.Logger) (*ReconcileWorker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	w := &ReconcileWorker{
		reconciler: reconciler,
		logger:     logger,
		cron:       cron.New(),
		timeout:    timeout,
	}
	if _, err := w.cron.AddFunc(schedule, w.runOnce); err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Start launches the scheduler.
func (w *ReconcileWorker) Start() {
	if w == nil {
		return
	}
	w.cron.Start()
	w.logger.Info("publisher reconciliation scheduled")
}

// Stop waits for a running job to finish or ctx to expire.
func (w *ReconcileWorker) Stop(ctx context.Context) {
	if w == nil {
		return
	}
	stopCtx := w.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

func (w *ReconcileWorker) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	corrected, err := w.reconciler.ReconcilePublisherTotals(ctx)
	if err != nil {
		w.logger.Error("publisher reconciliation failed", zap.Error(err))
		return
	}
	w.logger.Debug("publisher reconciliation finished", zap.Int("corrected", corrected))
}
