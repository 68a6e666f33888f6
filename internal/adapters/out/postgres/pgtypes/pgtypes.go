// Package pgtypes holds the column types and helpers shared by the
// per-aggregate repositories.
package pgtypes

import (
	"context"
	"errors"
	"time"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationDTO is embedded with a prefix, e.g. pickup_latitude.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
	Address   string  `gorm:"type:varchar(512)"`
}

func LocationFromDomain(loc kernel.GeoLocation) LocationDTO {
	return LocationDTO{Latitude: loc.Latitude(), Longitude: loc.Longitude(), Address: loc.Address()}
}

func (l LocationDTO) ToDomain() (kernel.GeoLocation, error) {
	return kernel.NewGeoLocation(l.Latitude, l.Longitude, l.Address)
}

// QuantityDTO is embedded with the quantity_ prefix.
type QuantityDTO struct {
	Amount float64 `gorm:"type:double precision;not null"`
	Unit   string  `gorm:"type:varchar(32);not null"`
}

func QuantityFromDomain(q kernel.Quantity) QuantityDTO {
	return QuantityDTO{Amount: q.Amount(), Unit: q.Unit()}
}

func (q QuantityDTO) ToDomain() (kernel.Quantity, error) {
	return kernel.NewQuantity(q.Amount, q.Unit)
}

func OptionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func OptionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func UUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

// OptionalLocation maps nullable coordinate columns. All three must be
// present for a location to exist.
func OptionalLocation(lat, lon *float64, address *string) (*kernel.GeoLocation, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	addr := ""
	if address != nil {
		addr = *address
	}
	loc, err := kernel.NewGeoLocation(*lat, *lon, addr)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// UTC normalizes a nullable timestamp read back from a timestamptz column.
func UTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// CheckConditional turns a conditional write that matched no row into either
// ObjectNotFoundError or ConflictError carrying the row's actual status.
func CheckConditional(
	ctx context.Context, db *gorm.DB, result *gorm.DB, model any, entity string, id kernel.UUID, action string,
) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var actual string
	err := db.WithContext(ctx).Model(model).Select("status").Where("id = ?", id.Bytes()).Scan(&actual).Error
	if err != nil {
		return err
	}
	if actual == "" {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	return errs.NewConflictError(entity, id, action, actual)
}

// TranslateInsert maps a duplicate key on insert to a ConflictError.
func TranslateInsert(err error, entity string, id kernel.UUID) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause(entity, id, "create", "exists", err)
	}
	return err
}
