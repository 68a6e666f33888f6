package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "foodshare/internal/adapters/in/http"
	"foodshare/internal/adapters/out/email"
	"foodshare/internal/adapters/out/memory"
	"foodshare/internal/adapters/out/notify"
	"foodshare/internal/adapters/out/postgres"
	"foodshare/internal/adapters/out/ratelimit"
	"foodshare/internal/adapters/out/wshub"
	"foodshare/internal/core/application/usecases/commands"
	"foodshare/internal/core/ports"
	"foodshare/internal/jobs"
	"foodshare/internal/pkg/clock"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CompositionRoot owns every long-lived component and the order they are
// released in.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB     *gorm.DB
	redis      *redis.Client
	uowFactory ports.UnitOfWorkFactory
	hub        *wshub.Hub
	dispatcher *notify.Async
	limiter    ports.RateLimiter
	deps       commands.Dependencies
}

func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	if err := c.openStore(); err != nil {
		return nil, err
	}
	if err := c.openLimiter(); err != nil {
		_ = c.Close(context.Background())
		return nil, err
	}
	c.openNotifications()

	c.deps = commands.Dependencies{
		UoWFactory: c.uowFactory,
		Clock:      clock.NewSystem(),
		Notifier:   c.dispatcher,
		Logger:     logger,
	}
	return c, nil
}

func (c *CompositionRoot) openStore() error {
	switch c.cfg.Store {
	case StorePostgres:
		db, err := gorm.Open(gorm_postgres.Open(c.cfg.Database.DSN()), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		if err := postgres.Migrate(db); err != nil {
			return err
		}
		c.gormDB = db
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	default:
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	}
	c.logger.Info("store ready", "store", c.cfg.Store)
	return nil
}

func (c *CompositionRoot) openLimiter() error {
	if c.cfg.Redis.Address == "" {
		c.logger.Info("rate limiting disabled")
		return nil
	}

	c.redis = redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.Address,
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	limiter, err := ratelimit.NewRedisLimiter(c.redis, c.cfg.RateLimit.Requests, c.cfg.RateLimit.Window)
	if err != nil {
		return err
	}
	c.limiter = limiter
	return nil
}

func (c *CompositionRoot) openNotifications() {
	c.hub = wshub.NewHub(c.logger)

	sinks := notify.Fanout{notify.NewLog(c.logger), c.hub}
	if c.cfg.Email.SMTPHost != "" {
		sinks = append(sinks, email.NewNotifier(
			email.NewDialer(email.Config{
				Host:     c.cfg.Email.SMTPHost,
				Port:     c.cfg.Email.SMTPPort,
				Username: c.cfg.Email.Username,
				Password: c.cfg.Email.Password,
				From:     c.cfg.Email.From,
			}),
			email.NewUserDirectory(c.uowFactory),
			c.cfg.Email.From,
			email.DefaultEvents,
			c.logger,
		))
	}

	c.dispatcher = notify.NewAsync(sinks, c.cfg.Notify.QueueSize, c.cfg.Notify.Workers, c.logger)
	c.dispatcher.Start()
}

func (c *CompositionRoot) NewEcho() *echo.Echo {
	return httpadapter.NewServer(httpadapter.NewHandlers(c.deps), c.hub, c.limiter, c.logger).NewEcho()
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(commands.NewExpireRequestsCommandHandler(c.deps), c.cfg.SweepInterval, c.logger)
}

// Close drains queued notifications and releases connections.
func (c *CompositionRoot) Close(_ context.Context) error {
	var errs []error

	if c.dispatcher != nil {
		c.dispatcher.Stop()
	}
	if c.hub != nil {
		c.hub.Close()
	}
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
