package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nestegg/internal/amqp"
	"nestegg/internal/core"
)

// BaselineSnapshotKey is where the no-scenario timeline is persisted so the
// API can serve a warm copy immediately after restart.
const BaselineSnapshotKey = "baseline"

// TimelineSource produces projection timelines; satisfied by
// services.ProjectionService.
type TimelineSource interface {
	Timeline(ctx context.Context, sc core.Scenario, today core.Date) ([]core.ProjectionPoint, error)
}

// SnapshotStore persists computed timelines.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, key string, points []core.ProjectionPoint) error
}

// ProjectionWorker keeps the baseline projection snapshot fresh: it reacts to
// instrument change messages and additionally refreshes on a timer in case
// messages are lost.
type ProjectionWorker struct {
	projections TimelineSource
	snapshots   SnapshotStore
}

func NewProjectionWorker(projections TimelineSource, snapshots SnapshotStore) *ProjectionWorker {
	return &ProjectionWorker{projections: projections, snapshots: snapshots}
}

// HandleChangeMessage recomputes the snapshot after any instrument change.
// The message only signals that something changed; the portfolio is reloaded
// from storage, so upserts and deletes take the same path.
func (w *ProjectionWorker) HandleChangeMessage(ctx context.Context, msg *amqp.InstrumentChangedMessage) error {
	slog.InfoContext(ctx, "Refreshing projection snapshot", "trigger_id", msg.ID, "op", msg.Op)
	return w.Refresh(ctx)
}

// Refresh recomputes and stores the baseline timeline.
func (w *ProjectionWorker) Refresh(ctx context.Context) error {
	points, err := w.projections.Timeline(ctx, core.Scenario{}, core.Today())
	if err != nil {
		return fmt.Errorf("compute baseline timeline: %w", err)
	}
	if err := w.snapshots.SaveSnapshot(ctx, BaselineSnapshotKey, points); err != nil {
		return fmt.Errorf("save baseline snapshot: %w", err)
	}
	slog.InfoContext(ctx, "Baseline snapshot refreshed", "points", len(points))
	return nil
}

// RunPeriodicRefresh refreshes on the given interval until the context is
// cancelled. Failures are logged and retried on the next tick.
func (w *ProjectionWorker) RunPeriodicRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Starting periodic snapshot refresh", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic snapshot refresh", "reason", ctx.Err())
			return
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic snapshot refresh failed", "error", err)
			}
		}
	}
}
