package donationrepo

import (
	"context"
	"errors"

	"foodshare/internal/adapters/out/postgres/pgtypes"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"

	"gorm.io/gorm"
)

const entityName = "donation"

// nearbySQL ranks donations by great-circle distance in km from (@lat, @lon).
// LEAST clamps rounding noise so ASIN never sees a value above 1.
const nearbySQL = `
SELECT d.*, dist.km AS distance_km
FROM donations d
CROSS JOIN LATERAL (
	SELECT 2 * 6371.0 * ASIN(LEAST(1, SQRT(
		POWER(SIN(RADIANS(d.pickup_latitude - @lat) / 2), 2) +
		COS(RADIANS(@lat)) * COS(RADIANS(d.pickup_latitude)) *
		POWER(SIN(RADIANS(d.pickup_longitude - @lon) / 2), 2)
	))) AS km
) dist
WHERE (@status = '' OR d.status = @status) AND dist.km <= @max_km
ORDER BY dist.km ASC, d.created_at ASC
LIMIT @limit`

type GormDonationRepository struct {
	db *gorm.DB
}

func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

func (r *GormDonationRepository) Add(ctx context.Context, aggregate *donation.Donation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.TranslateInsert(err, entityName, aggregate.ID())
	}

	return nil
}

func (r *GormDonationRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DonationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entityName, id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update rewrites every mutable column in a single statement guarded by the
// expected status.
func (r *GormDonationRepository) Update(
	ctx context.Context, aggregate *donation.Donation, expected donation.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DonationDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select("*").Omit("id", "donor_id", "created_at").
		Updates(&dto)
	if err := pgtypes.CheckConditional(ctx, r.db, result, &DonationDTO{}, entityName, aggregate.ID(), "update"); err != nil {
		return err
	}

	return nil
}

func (r *GormDonationRepository) Delete(ctx context.Context, id kernel.UUID, expected donation.Status) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id.Bytes(), expected.String()).
		Delete(&DonationDTO{})
	return pgtypes.CheckConditional(ctx, r.db, result, &DonationDTO{}, entityName, id, "delete")
}

type nearbyRow struct {
	DonationDTO `gorm:"embedded"`
	DistanceKm  float64
}

func (r *GormDonationRepository) FindNearby(
	ctx context.Context, filter ports.NearbyFilter,
) ([]ports.NearbyDonation, error) {
	if err := filter.Center.Validate(); err != nil {
		return nil, err
	}

	status := ""
	if filter.Status != donation.Unknown {
		status = filter.Status.String()
	}
	limit := any(nil)
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	var rows []nearbyRow
	err := r.db.WithContext(ctx).Raw(nearbySQL, map[string]any{
		"lat":    filter.Center.Latitude(),
		"lon":    filter.Center.Longitude(),
		"status": status,
		"max_km": filter.RadiusKm,
		"limit":  limit,
	}).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	matches := make([]ports.NearbyDonation, 0, len(rows))
	for _, row := range rows {
		d, err := toDomain(row.DonationDTO)
		if err != nil {
			return nil, err
		}
		matches = append(matches, ports.NearbyDonation{Donation: d, DistanceKm: row.DistanceKm})
	}
	return matches, nil
}
