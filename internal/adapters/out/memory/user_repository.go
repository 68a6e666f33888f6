package memory

import (
	"context"
	"fmt"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/pkg/errs"
)

type UserRepository struct {
	uow *UnitOfWork
}

func (r *UserRepository) Add(_ context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(true, func(s *state) error {
		if _, ok := s.users[aggregate.ID()]; ok {
			return fmt.Errorf("user %s already exists", aggregate.ID())
		}
		for id, other := range s.users {
			if other.Email == aggregate.Email() {
				return errs.NewConflictError("user", id, "register", "email taken")
			}
		}
		s.users[aggregate.ID()] = aggregate.Snapshot()
		return nil
	})
}

func (r *UserRepository) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	var snap user.Snapshot
	err := r.uow.run(false, func(s *state) error {
		found, ok := s.users[id]
		if !ok {
			return errs.NewObjectNotFoundError("user", id.String())
		}
		snap = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user.Restore(snap)
}

func (r *UserRepository) Update(_ context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(true, func(s *state) error {
		stored, ok := s.users[aggregate.ID()]
		if !ok {
			return errs.NewObjectNotFoundError("user", aggregate.ID().String())
		}
		stored.IsApproved = aggregate.IsApproved()
		stored.IsActive = aggregate.IsActive()
		s.users[aggregate.ID()] = stored
		return nil
	})
}

func (r *UserRepository) AddPoints(_ context.Context, id kernel.UUID, n int) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause("points", fmt.Errorf("%d is negative", n))
	}
	return r.uow.run(true, func(s *state) error {
		stored, ok := s.users[id]
		if !ok {
			return errs.NewObjectNotFoundError("user", id.String())
		}
		stored.Points += n
		s.users[id] = stored
		return nil
	})
}

func (r *UserRepository) AdjustCounter(_ context.Context, id kernel.UUID, counter user.Counter, delta int) error {
	return r.uow.run(true, func(s *state) error {
		stored, ok := s.users[id]
		if !ok {
			return errs.NewObjectNotFoundError("user", id.String())
		}
		switch counter {
		case user.TotalDonations:
			stored.TotalDonations = max(stored.TotalDonations+delta, 0)
		case user.TotalRequests:
			stored.TotalRequests = max(stored.TotalRequests+delta, 0)
		case user.TotalDeliveries:
			stored.TotalDeliveries = max(stored.TotalDeliveries+delta, 0)
		default:
			return errs.NewValueIsInvalidError("counter")
		}
		s.users[id] = stored
		return nil
	})
}
