package requestrepo

import (
	"context"
	"errors"
	"time"

	"foodshare/internal/adapters/out/postgres/pgtypes"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityName = "request"

// urgencyRank orders the stored urgency names from least to most urgent.
const urgencyRank = `CASE urgency
	WHEN 'critical' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END`

type GormRequestRepository struct {
	db *gorm.DB
}

func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgtypes.TranslateInsert(err, entityName, aggregate.ID())
	}

	return nil
}

func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entityName, id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.Request, expected request.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select("*").Omit("id", "requester_id", "created_at").
		Updates(&dto)
	if err := pgtypes.CheckConditional(ctx, r.db, result, &RequestDTO{}, entityName, aggregate.ID(), "update"); err != nil {
		return err
	}

	return nil
}

func (r *GormRequestRepository) Delete(ctx context.Context, id kernel.UUID, expected request.Status) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id.Bytes(), expected.String()).
		Delete(&RequestDTO{})
	return pgtypes.CheckConditional(ctx, r.db, result, &RequestDTO{}, entityName, id, "delete")
}

// ExpireOverdue flips all overdue pending rows in one UPDATE ... RETURNING,
// so two concurrent sweeps never report the same request.
func (r *GormRequestRepository) ExpireOverdue(ctx context.Context, now time.Time) ([]ports.ExpiredRequest, error) {
	var flipped []RequestDTO
	err := r.db.WithContext(ctx).Model(&flipped).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "requester_id"}}}).
		Where("status = ? AND expires_at < ?", request.Pending.String(), now).
		Updates(map[string]any{
			"status":     request.Expired.String(),
			"updated_at": now,
		}).Error
	if err != nil {
		return nil, err
	}

	expired := make([]ports.ExpiredRequest, 0, len(flipped))
	for _, dto := range flipped {
		id, err := pgtypes.UUID(dto.ID)
		if err != nil {
			return nil, err
		}
		requesterID, err := pgtypes.UUID(dto.RequesterID)
		if err != nil {
			return nil, err
		}
		expired = append(expired, ports.ExpiredRequest{ID: id, RequesterID: requesterID})
	}
	return expired, nil
}

func (r *GormRequestRepository) ListPending(ctx context.Context, now time.Time, limit int) ([]*request.Request, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND expires_at >= ?", request.Pending.String(), now).
		Order(urgencyRank + " DESC").
		Order("expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []RequestDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]*request.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, nil
}
