package userrepo

import (
	"context"
	"errors"
	"fmt"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/pkg/errs"

	"gorm.io/gorm"
)

const entityName = "user"

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add inserts a new user. A taken email yields errs.ConflictError.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var taken int64
	if err := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("email = ?", aggregate.Email()).Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return errs.NewConflictError(entityName, aggregate.ID(), "register", "email taken")
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(entityName, aggregate.ID(), "register", "email taken", err)
		}
		return err
	}

	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(entityName, id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update writes the approval and activity flags only; points and counters
// move through AddPoints and AdjustCounter.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"is_approved": aggregate.IsApproved(),
			"is_active":   aggregate.IsActive(),
		})
	if err := r.expectRow(result, aggregate.ID()); err != nil {
		return err
	}

	return nil
}

func (r *GormUserRepository) AddPoints(ctx context.Context, id kernel.UUID, n int) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause("points", fmt.Errorf("%d is negative", n))
	}

	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", id.Bytes()).
		Update("points", gorm.Expr("points + ?", n))
	return r.expectRow(result, id)
}

func (r *GormUserRepository) AdjustCounter(ctx context.Context, id kernel.UUID, counter user.Counter, delta int) error {
	column, err := counterColumn(counter)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ?", id.Bytes()).
		Update(column, gorm.Expr("GREATEST("+column+" + ?, 0)", delta))
	return r.expectRow(result, id)
}

// counterColumn whitelists the columns AdjustCounter may splice into SQL.
func counterColumn(counter user.Counter) (string, error) {
	switch counter {
	case user.TotalDonations, user.TotalRequests, user.TotalDeliveries:
		return string(counter), nil
	default:
		return "", errs.NewValueIsInvalidError("counter")
	}
}

func (r *GormUserRepository) expectRow(result *gorm.DB, id kernel.UUID) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entityName, id.String())
	}
	return nil
}
