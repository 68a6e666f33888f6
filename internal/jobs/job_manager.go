package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"foodshare/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	requestExpiryJob *RequestExpiryJob
}

func NewJobManager(
	expireRequestsHandler commands.ExpireRequestsCommandHandler,
	sweepInterval time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		requestExpiryJob: NewRequestExpiryJob(expireRequestsHandler, sweepInterval, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.requestExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start request expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.requestExpiryJob.Stop()
}
