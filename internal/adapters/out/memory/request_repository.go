package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"
)

type RequestRepository struct {
	uow *UnitOfWork
}

func (r *RequestRepository) Add(_ context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(true, func(s *state) error {
		if _, ok := s.requests[aggregate.ID()]; ok {
			return fmt.Errorf("request %s already exists", aggregate.ID())
		}
		s.requests[aggregate.ID()] = aggregate.Snapshot()
		return nil
	})
}

func (r *RequestRepository) Get(_ context.Context, id kernel.UUID) (*request.Request, error) {
	var snap request.Snapshot
	err := r.uow.run(false, func(s *state) error {
		found, ok := s.requests[id]
		if !ok {
			return errs.NewObjectNotFoundError("request", id.String())
		}
		snap = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return restoreRequest(snap)
}

func (r *RequestRepository) Update(_ context.Context, aggregate *request.Request, expected request.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(true, func(s *state) error {
		stored, ok := s.requests[aggregate.ID()]
		if !ok {
			return errs.NewObjectNotFoundError("request", aggregate.ID().String())
		}
		if stored.Status != expected {
			return errs.NewConflictError("request", aggregate.ID(), "update", stored.Status.String())
		}
		s.requests[aggregate.ID()] = aggregate.Snapshot()
		return nil
	})
}

func (r *RequestRepository) Delete(_ context.Context, id kernel.UUID, expected request.Status) error {
	return r.uow.run(true, func(s *state) error {
		stored, ok := s.requests[id]
		if !ok {
			return errs.NewObjectNotFoundError("request", id.String())
		}
		if stored.Status != expected {
			return errs.NewConflictError("request", id, "delete", stored.Status.String())
		}
		delete(s.requests, id)
		return nil
	})
}

func (r *RequestRepository) ExpireOverdue(_ context.Context, now time.Time) ([]ports.ExpiredRequest, error) {
	var expired []ports.ExpiredRequest
	err := r.uow.run(true, func(s *state) error {
		for id, snap := range s.requests {
			if snap.Status != request.Pending || !snap.ExpiresAt.Before(now) {
				continue
			}
			snap.Status = request.Expired
			snap.UpdatedAt = now
			s.requests[id] = snap
			expired = append(expired, ports.ExpiredRequest{ID: id, RequesterID: snap.RequesterID})
		}
		return nil
	})
	return expired, err
}

func (r *RequestRepository) ListPending(_ context.Context, now time.Time, limit int) ([]*request.Request, error) {
	var snaps []request.Snapshot
	err := r.uow.run(false, func(s *state) error {
		for _, snap := range s.requests {
			if snap.Status == request.Pending && !snap.ExpiresAt.Before(now) {
				snaps = append(snaps, snap)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(snaps, func(i, j int) bool {
		if snaps[i].Urgency != snaps[j].Urgency {
			return snaps[i].Urgency > snaps[j].Urgency
		}
		return snaps[i].ExpiresAt.Before(snaps[j].ExpiresAt)
	})
	if limit > 0 && len(snaps) > limit {
		snaps = snaps[:limit]
	}

	result := make([]*request.Request, 0, len(snaps))
	for _, snap := range snaps {
		req, err := restoreRequest(snap)
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, nil
}

func restoreRequest(snap request.Snapshot) (*request.Request, error) {
	snap.Details.Requirements.FoodTypes = slices.Clone(snap.Details.Requirements.FoodTypes)
	snap.Details.Requirements.DietaryRestrictions = slices.Clone(snap.Details.Requirements.DietaryRestrictions)
	return request.Restore(snap)
}
