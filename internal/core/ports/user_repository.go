package ports

import (
	"context"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/user"
)

// UserRepository persists users. Points and activity counters are only ever
// changed with relative updates so concurrent credits never lose each other.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error

	// Get returns errs.ObjectNotFoundError when the user does not exist.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// Update writes the approval and activity flags.
	Update(ctx context.Context, aggregate *user.User) error

	// AddPoints executes points = points + n. n must not be negative.
	AddPoints(ctx context.Context, id kernel.UUID, n int) error

	// AdjustCounter executes counter = max(counter + delta, 0).
	AdjustCounter(ctx context.Context, id kernel.UUID, counter user.Counter, delta int) error
}
