package jobs

import "github.com/hibiken/asynq"

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTrackingRefresh polls the carrier for label progress.
	TaskTrackingRefresh = "shipment:tracking_refresh"
	// TaskIdempotencyCleanup prunes processed request keys past retention.
	TaskIdempotencyCleanup = "shared:idempotency_cleanup"
)

// NewTrackingRefreshTask constructs the periodic tracking poll task. It
// carries no payload; the handler discovers trackable orders itself.
func NewTrackingRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskTrackingRefresh, nil)
}

// NewIdempotencyCleanupTask constructs the periodic key pruning task.
func NewIdempotencyCleanupTask() *asynq.Task {
	return asynq.NewTask(TaskIdempotencyCleanup, nil)
}
