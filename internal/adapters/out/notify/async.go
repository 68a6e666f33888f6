package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"foodshare/internal/core/ports"
)

var (
	ErrQueueFull = errors.New("notification queue is full")
	ErrStopped   = errors.New("notification dispatcher is stopped")
)

const deliveryTimeout = 10 * time.Second

// Async queues notifications and delivers them from a fixed pool of workers.
// Notify never blocks: when the queue is full the notification is dropped and
// ErrQueueFull returned.
type Async struct {
	next    ports.Notifier
	queue   chan ports.Notification
	workers int
	logger  *slog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewAsync(next ports.Notifier, size, workers int, logger *slog.Logger) *Async {
	if size < 1 {
		size = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Async{
		next:    next,
		queue:   make(chan ports.Notification, size),
		workers: workers,
		logger:  logger.With("component", "notification_dispatcher"),
	}
}

func (a *Async) Start() {
	for range a.workers {
		a.wg.Add(1)
		go a.run()
	}
	a.logger.Info("notification dispatcher started", "workers", a.workers, "queue", cap(a.queue))
}

// Stop closes the queue and waits until every queued notification has been
// handed to the next sink.
func (a *Async) Stop() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.stopped = true
	close(a.queue)
	a.mu.Unlock()

	a.wg.Wait()
	a.logger.Info("notification dispatcher stopped")
}

func (a *Async) Notify(_ context.Context, n ports.Notification) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.stopped {
		return ErrStopped
	}

	select {
	case a.queue <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

func (a *Async) run() {
	defer a.wg.Done()
	for n := range a.queue {
		// the caller's context ends with its request
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		if err := a.next.Notify(ctx, n); err != nil {
			a.logger.WarnContext(ctx, "notification delivery failed",
				"type", n.Type,
				"user_id", n.UserID.String(),
				"error", err,
			)
		}
		cancel()
	}
}
