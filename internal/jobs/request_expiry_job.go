package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodshare/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const DefaultSweepInterval = time.Minute

// RequestExpiryJob periodically flips overdue pending requests to expired.
// Runs never overlap: a tick that arrives while a sweep is still running is
// skipped.
type RequestExpiryJob struct {
	handler  commands.ExpireRequestsCommandHandler
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewRequestExpiryJob(
	handler commands.ExpireRequestsCommandHandler, interval time.Duration, logger *slog.Logger,
) *RequestExpiryJob {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &RequestExpiryJob{
		handler:  handler,
		interval: interval,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "request_expiry_job"),
	}
}

func (j *RequestExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("request expiry job started", "interval", j.interval.String())
	return nil
}

// Run performs one sweep and returns how many requests it expired.
func (j *RequestExpiryJob) Run(ctx context.Context) int {
	expired, err := j.handler.Handle(ctx, commands.NewExpireRequestsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "request expiry sweep failed", "error", err)
		return 0
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "expired overdue requests", "count", expired)
	}
	return expired
}

// Stop waits for a running sweep to finish.
func (j *RequestExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("request expiry job stopped")
}
