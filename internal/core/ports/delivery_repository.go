package ports

import (
	"context"
	"time"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/kernel"
)

// RatingSource says which party wrote a delivery rating.
type RatingSource string

const (
	RatingFromDonor     RatingSource = "donor"
	RatingFromRequester RatingSource = "requester"
)

// DeliveryRepository persists deliveries. Fields with their own concurrency
// rules (issues, ratings, live location and the two latches) are written by
// dedicated methods and never by Update.
type DeliveryRepository interface {
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// Update writes lifecycle fields only if the stored status equals expected,
	// returning errs.ConflictError otherwise.
	Update(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error

	// UpdateLocation overwrites the live position regardless of status.
	UpdateLocation(ctx context.Context, id kernel.UUID, location kernel.GeoLocation, at time.Time) error

	// AppendIssue adds one entry to the issue log without rewriting it.
	AppendIssue(ctx context.Context, id kernel.UUID, issue delivery.Issue) error

	// MarkRequesterConfirmed sets requesterConfirmed on a delivered delivery.
	MarkRequesterConfirmed(ctx context.Context, id kernel.UUID) error

	// LatchPointsAwarded flips pointsAwarded from false to true and reports
	// whether this call performed the flip.
	LatchPointsAwarded(ctx context.Context, id kernel.UUID) (bool, error)

	// SaveRating stores a rating only if that source has not rated yet,
	// returning errs.ConflictError otherwise.
	SaveRating(ctx context.Context, id kernel.UUID, source RatingSource, rating delivery.Rating) error
}
