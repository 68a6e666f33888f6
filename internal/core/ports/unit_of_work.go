// Package ports defines the contracts between the lifecycle core and its
// infrastructure: repositories bound to a unit of work, the clock, the
// notification sink and the rate limiter.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it
// after Begin run inside the transaction; Commit makes every change visible at
// once and Rollback discards them. Rollback after Commit is a harmless error.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	UserRepository() UserRepository
	DonationRepository() DonationRepository
	RequestRepository() RequestRepository
	DeliveryRepository() DeliveryRepository
}
