package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// TrackingRefresher is the slice of the orders service the job needs.
type TrackingRefresher interface {
	RefreshTracking(ctx context.Context) error
}

// TrackingRefreshJob periodically reconciles order statuses against the
// carrier's tracking feed.
type TrackingRefreshJob struct {
	Orders TrackingRefresher
	Logger *slog.Logger
}

// NewTrackingRefreshJob initialises the tracking refresh handler.
func NewTrackingRefreshJob(orders TrackingRefresher, logger *slog.Logger) *TrackingRefreshJob {
	return &TrackingRefreshJob{Orders: orders, Logger: logger}
}

// Handle executes one tracking reconciliation pass.
func (j *TrackingRefreshJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Orders == nil {
		return errors.New("tracking refresh: handler not configured")
	}
	start := time.Now()
	j.Logger.Info("starting tracking refresh")
	if err := j.Orders.RefreshTracking(ctx); err != nil {
		j.Logger.Error("tracking refresh failed", slog.Any("error", err))
		return err
	}
	j.Logger.Info("tracking refresh complete",
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
