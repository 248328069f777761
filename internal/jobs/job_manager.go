package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/notifications"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleOrderReminderJob *StaleOrderReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the query handler and subscriber registry as dependencies to wire up
// job execution.
func NewJobManager(
	staleOrdersHandler queries.GetStaleCreatedOrdersQueryHandler,
	registry *notifications.Registry,
	reminderAge time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleOrderReminderJob: NewStaleOrderReminderJob(staleOrdersHandler, registry, reminderAge, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleOrderReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale order reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleOrderReminderJob.Stop()
}
