package ports

import (
	"context"
	"time"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
)

// ExpiredRequest identifies a request flipped to expired by a sweep.
type ExpiredRequest struct {
	ID          kernel.UUID
	RequesterID kernel.UUID
}

type RequestRepository interface {
	Add(ctx context.Context, aggregate *request.Request) error

	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// Update writes the aggregate only if the stored status still equals
	// expected, returning errs.ConflictError otherwise.
	Update(ctx context.Context, aggregate *request.Request, expected request.Status) error

	// Delete removes the request only if the stored status equals expected.
	Delete(ctx context.Context, id kernel.UUID, expected request.Status) error

	// ExpireOverdue flips every pending request with expiresAt < now to
	// expired in one conditional batch and reports which ones it flipped.
	ExpireOverdue(ctx context.Context, now time.Time) ([]ExpiredRequest, error)

	// ListPending returns pending requests with expiresAt >= now, most urgent
	// first and then soonest to expire.
	ListPending(ctx context.Context, now time.Time, limit int) ([]*request.Request, error)
}
