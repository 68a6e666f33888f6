// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron schedules (github.com/robfig/cron/v3, seconds precision)
// that drive command handlers.
//
// # Available Jobs
//
// RequestExpiryJob sweeps pending requests whose expiry has passed and flips
// them to expired in one conditional batch. Reads and accepts also expire
// overdue requests lazily, so the sweep interval only bounds how long a
// stale request can sit unexpired in listings that bypass those paths.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expireRequestsHandler, cfg.SweepInterval, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick.
package jobs
