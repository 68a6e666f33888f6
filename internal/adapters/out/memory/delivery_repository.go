package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"
)

type DeliveryRepository struct {
	uow *UnitOfWork
}

func (r *DeliveryRepository) Add(_ context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(true, func(s *state) error {
		if _, ok := s.deliveries[aggregate.ID()]; ok {
			return fmt.Errorf("delivery %s already exists", aggregate.ID())
		}
		s.deliveries[aggregate.ID()] = aggregate.Snapshot()
		return nil
	})
}

func (r *DeliveryRepository) Get(_ context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	var snap delivery.Snapshot
	err := r.uow.run(false, func(s *state) error {
		found, ok := s.deliveries[id]
		if !ok {
			return errs.NewObjectNotFoundError("delivery", id.String())
		}
		snap = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	snap.Issues = slices.Clone(snap.Issues)
	return delivery.Restore(snap)
}

func (r *DeliveryRepository) Update(_ context.Context, aggregate *delivery.Delivery, expected delivery.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.modify(aggregate.ID(), func(stored *delivery.Snapshot) error {
		if stored.Status != expected {
			return errs.NewConflictError("delivery", aggregate.ID(), "update", stored.Status.String())
		}
		next := aggregate.Snapshot()
		next.Issues = stored.Issues
		next.CurrentLocation = stored.CurrentLocation
		next.LocationUpdatedAt = stored.LocationUpdatedAt
		next.PointsAwarded = stored.PointsAwarded
		next.RequesterConfirmed = stored.RequesterConfirmed
		next.RatingFromDonor = stored.RatingFromDonor
		next.RatingFromRequester = stored.RatingFromRequester
		*stored = next
		return nil
	})
}

func (r *DeliveryRepository) UpdateLocation(
	_ context.Context, id kernel.UUID, location kernel.GeoLocation, at time.Time,
) error {
	return r.modify(id, func(stored *delivery.Snapshot) error {
		stored.CurrentLocation = &location
		stored.LocationUpdatedAt = &at
		return nil
	})
}

func (r *DeliveryRepository) AppendIssue(_ context.Context, id kernel.UUID, issue delivery.Issue) error {
	return r.modify(id, func(stored *delivery.Snapshot) error {
		stored.Issues = append(slices.Clone(stored.Issues), issue)
		return nil
	})
}

func (r *DeliveryRepository) MarkRequesterConfirmed(_ context.Context, id kernel.UUID) error {
	return r.modify(id, func(stored *delivery.Snapshot) error {
		if stored.Status != delivery.Delivered {
			return errs.NewConflictError("delivery", id, "confirm receipt of", stored.Status.String())
		}
		stored.RequesterConfirmed = true
		return nil
	})
}

func (r *DeliveryRepository) LatchPointsAwarded(_ context.Context, id kernel.UUID) (bool, error) {
	flipped := false
	err := r.modify(id, func(stored *delivery.Snapshot) error {
		if stored.PointsAwarded || !stored.RequesterConfirmed {
			return nil
		}
		stored.PointsAwarded = true
		flipped = true
		return nil
	})
	return flipped, err
}

func (r *DeliveryRepository) SaveRating(
	_ context.Context, id kernel.UUID, source ports.RatingSource, rating delivery.Rating,
) error {
	return r.modify(id, func(stored *delivery.Snapshot) error {
		slot := &stored.RatingFromRequester
		if source == ports.RatingFromDonor {
			slot = &stored.RatingFromDonor
		}
		if *slot != nil {
			return errs.NewConflictError("delivery", id, "rate", "already rated by "+string(source))
		}
		*slot = &rating
		return nil
	})
}

func (r *DeliveryRepository) modify(id kernel.UUID, fn func(*delivery.Snapshot) error) error {
	return r.uow.run(true, func(s *state) error {
		stored, ok := s.deliveries[id]
		if !ok {
			return errs.NewObjectNotFoundError("delivery", id.String())
		}
		if err := fn(&stored); err != nil {
			return err
		}
		s.deliveries[id] = stored
		return nil
	})
}
