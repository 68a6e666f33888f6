package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"
)

type DonationRepository struct {
	uow *UnitOfWork
}

func (r *DonationRepository) Add(_ context.Context, aggregate *donation.Donation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(true, func(s *state) error {
		if _, ok := s.donations[aggregate.ID()]; ok {
			return fmt.Errorf("donation %s already exists", aggregate.ID())
		}
		s.donations[aggregate.ID()] = aggregate.Snapshot()
		return nil
	})
}

func (r *DonationRepository) Get(_ context.Context, id kernel.UUID) (*donation.Donation, error) {
	var snap donation.Snapshot
	err := r.uow.run(false, func(s *state) error {
		found, ok := s.donations[id]
		if !ok {
			return errs.NewObjectNotFoundError("donation", id.String())
		}
		snap = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return restoreDonation(snap)
}

func (r *DonationRepository) Update(_ context.Context, aggregate *donation.Donation, expected donation.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(true, func(s *state) error {
		stored, ok := s.donations[aggregate.ID()]
		if !ok {
			return errs.NewObjectNotFoundError("donation", aggregate.ID().String())
		}
		if stored.Status != expected {
			return errs.NewConflictError("donation", aggregate.ID(), "update", stored.Status.String())
		}
		s.donations[aggregate.ID()] = aggregate.Snapshot()
		return nil
	})
}

func (r *DonationRepository) Delete(_ context.Context, id kernel.UUID, expected donation.Status) error {
	return r.uow.run(true, func(s *state) error {
		stored, ok := s.donations[id]
		if !ok {
			return errs.NewObjectNotFoundError("donation", id.String())
		}
		if stored.Status != expected {
			return errs.NewConflictError("donation", id, "delete", stored.Status.String())
		}
		delete(s.donations, id)
		return nil
	})
}

func (r *DonationRepository) FindNearby(_ context.Context, filter ports.NearbyFilter) ([]ports.NearbyDonation, error) {
	var matches []ports.NearbyDonation
	err := r.uow.run(false, func(s *state) error {
		for _, snap := range s.donations {
			if filter.Status != donation.Unknown && snap.Status != filter.Status {
				continue
			}
			distance, err := filter.Center.DistanceKm(snap.PickupLocation)
			if err != nil {
				return err
			}
			if distance > filter.RadiusKm {
				continue
			}
			d, err := restoreDonation(snap)
			if err != nil {
				return err
			}
			matches = append(matches, ports.NearbyDonation{Donation: d, DistanceKm: distance})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].DistanceKm < matches[j].DistanceKm })
	if filter.Limit > 0 && len(matches) > filter.Limit {
		matches = matches[:filter.Limit]
	}
	return matches, nil
}

func restoreDonation(snap donation.Snapshot) (*donation.Donation, error) {
	snap.Details.FoodTypes = slices.Clone(snap.Details.FoodTypes)
	return donation.Restore(snap)
}
