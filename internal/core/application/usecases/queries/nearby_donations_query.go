package queries

import (
	"errors"
	"fmt"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"
	"foodshare/internal/pkg/guard"
)

const (
	DefaultRadiusKm = 10.0
	MaxRadiusKm     = 500.0
)

var ErrNearbyDonationsQueryIsNotConstructed = errors.New(
	"NearbyDonationsQuery must be created via NewNearbyDonationsQuery constructor",
)

// NearbyDonationsQuery finds donations around a point, nearest first.
type NearbyDonationsQuery struct {
	center   kernel.GeoLocation
	radiusKm float64
	status   donation.Status
	limit    int

	guard guard.ConstructorGuard
}

// NewNearbyDonationsQuery uses DefaultRadiusKm for a zero radius and
// DefaultPageSize for a zero limit.
func NewNearbyDonationsQuery(
	center kernel.GeoLocation, radiusKm float64, status donation.Status, limit int,
) (NearbyDonationsQuery, error) {
	if radiusKm == 0 {
		radiusKm = DefaultRadiusKm
	}
	var radiusErr error
	if radiusKm < 0 || radiusKm > MaxRadiusKm {
		radiusErr = errs.NewValueIsInvalidErrorWithCause("radiusKm",
			fmt.Errorf("%.2f is outside (0, %.0f]", radiusKm, MaxRadiusKm))
	}
	limit, limitErr := pageSize(limit)

	if err := errors.Join(center.Validate(), status.Validate(), radiusErr, limitErr); err != nil {
		return NearbyDonationsQuery{}, err
	}
	return NearbyDonationsQuery{
		center:   center,
		radiusKm: radiusKm,
		status:   status,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q NearbyDonationsQuery) Validate() error {
	return q.guard.Validate(ErrNearbyDonationsQueryIsNotConstructed)
}

func (q NearbyDonationsQuery) Center() kernel.GeoLocation { return q.center }
func (q NearbyDonationsQuery) RadiusKm() float64          { return q.radiusKm }
func (q NearbyDonationsQuery) Status() donation.Status    { return q.status }
func (q NearbyDonationsQuery) Limit() int                 { return q.limit }
