package ports

import (
	"context"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
)

// NearbyFilter selects donations within RadiusKm great-circle distance of Center.
type NearbyFilter struct {
	Center   kernel.GeoLocation
	RadiusKm float64
	Status   donation.Status
	Limit    int
}

// NearbyDonation pairs a donation with its distance from the filter center.
type NearbyDonation struct {
	Donation   *donation.Donation
	DistanceKm float64
}

type DonationRepository interface {
	Add(ctx context.Context, aggregate *donation.Donation) error

	Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error)

	// Update writes the aggregate only if the stored status still equals
	// expected. Otherwise it returns errs.ConflictError and changes nothing.
	Update(ctx context.Context, aggregate *donation.Donation, expected donation.Status) error

	// Delete removes the donation only if the stored status equals expected.
	Delete(ctx context.Context, id kernel.UUID, expected donation.Status) error

	// FindNearby returns matches ordered nearest first.
	FindNearby(ctx context.Context, filter NearbyFilter) ([]NearbyDonation, error)
}
