package deliveryrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"foodshare/internal/adapters/out/postgres/pgtypes"
	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"

	"gorm.io/gorm"
)

const entityName = "delivery"

// ownColumns are written only by the dedicated methods, never by Update.
var ownColumns = []string{
	"id", "ngo_id", "donor_id", "requester_id", "donation_id", "request_id",
	"issues", "current_latitude", "current_longitude", "current_address", "location_updated_at",
	"points_awarded", "requester_confirmed", "rating_from_donor", "rating_from_requester",
}

type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.TranslateInsert(err, entityName, aggregate.ID())
	}

	return nil
}

func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entityName, id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDeliveryRepository) Update(
	ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select("*").Omit(ownColumns...).
		Updates(&dto)
	if err := pgtypes.CheckConditional(ctx, r.db, result, &DeliveryDTO{}, entityName, aggregate.ID(), "update"); err != nil {
		return err
	}

	return nil
}

func (r *GormDeliveryRepository) UpdateLocation(
	ctx context.Context, id kernel.UUID, location kernel.GeoLocation, at time.Time,
) error {
	if err := location.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"current_latitude":    location.Latitude(),
			"current_longitude":   location.Longitude(),
			"current_address":     location.Address(),
			"location_updated_at": at,
		})
	return r.expectRow(result, id)
}

// AppendIssue concatenates onto the stored array so concurrent reports are
// all kept.
func (r *GormDeliveryRepository) AppendIssue(ctx context.Context, id kernel.UUID, issue delivery.Issue) error {
	entry, err := json.Marshal([]issueDTO{issueFromDomain(issue)})
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ?", id.Bytes()).
		Update("issues", gorm.Expr("issues || CAST(? AS jsonb)", string(entry)))
	return r.expectRow(result, id)
}

func (r *GormDeliveryRepository) MarkRequesterConfirmed(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), delivery.Delivered.String()).
		Update("requester_confirmed", true)
	return pgtypes.CheckConditional(ctx, r.db, result, &DeliveryDTO{}, entityName, id, "confirm receipt of")
}

// LatchPointsAwarded is a compare-and-set on points_awarded; the row lock
// taken by UPDATE makes exactly one concurrent caller see a flipped row.
func (r *GormDeliveryRepository) LatchPointsAwarded(ctx context.Context, id kernel.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND points_awarded = ? AND requester_confirmed = ?", id.Bytes(), false, true).
		Update("points_awarded", true)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	return false, r.ensureExists(ctx, id)
}

func (r *GormDeliveryRepository) SaveRating(
	ctx context.Context, id kernel.UUID, source ports.RatingSource, rating delivery.Rating,
) error {
	column := "rating_from_requester"
	if source == ports.RatingFromDonor {
		column = "rating_from_donor"
	}

	encoded, err := encodeRating(&rating)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND "+column+" IS NULL", id.Bytes()).
		Update(column, encoded)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if err := r.ensureExists(ctx, id); err != nil {
		return err
	}
	return errs.NewConflictError(entityName, id, "rate", "already rated by "+string(source))
}

func (r *GormDeliveryRepository) ensureExists(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(entityName, id.String())
	}
	return nil
}

func (r *GormDeliveryRepository) expectRow(result *gorm.DB, id kernel.UUID) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entityName, id.String())
	}
	return nil
}
