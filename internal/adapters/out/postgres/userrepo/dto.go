// Package userrepo persists marketplace users.
package userrepo

import (
	"time"

	"foodshare/internal/adapters/out/postgres/pgtypes"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the users row. Location columns are nullable as a group.
type UserDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Email           string    `gorm:"type:varchar(320);not null;uniqueIndex"`
	Role            string    `gorm:"type:varchar(16);not null;index"`
	LocationLat     *float64  `gorm:"column:location_latitude;type:double precision"`
	LocationLon     *float64  `gorm:"column:location_longitude;type:double precision"`
	LocationAddress *string   `gorm:"column:location_address;type:varchar(512)"`
	Points          int       `gorm:"not null;default:0"`
	TotalDonations  int       `gorm:"not null;default:0"`
	TotalRequests   int       `gorm:"not null;default:0"`
	TotalDeliveries int       `gorm:"not null;default:0"`
	IsApproved      bool      `gorm:"not null"`
	IsActive        bool      `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	s := u.Snapshot()
	dto := UserDTO{
		ID:              s.ID.Bytes(),
		Name:            s.Name,
		Email:           s.Email,
		Role:            s.Role.String(),
		Points:          s.Points,
		TotalDonations:  s.TotalDonations,
		TotalRequests:   s.TotalRequests,
		TotalDeliveries: s.TotalDeliveries,
		IsApproved:      s.IsApproved,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
	}
	if loc := s.Location; loc != nil {
		lat, lon, addr := loc.Latitude(), loc.Longitude(), loc.Address()
		dto.LocationLat, dto.LocationLon, dto.LocationAddress = &lat, &lon, &addr
	}
	return dto
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := pgtypes.UUID(dto.ID)
	if err != nil {
		return nil, err
	}
	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	loc, err := pgtypes.OptionalLocation(dto.LocationLat, dto.LocationLon, dto.LocationAddress)
	if err != nil {
		return nil, err
	}

	return user.Restore(user.Snapshot{
		ID:              id,
		Name:            dto.Name,
		Email:           dto.Email,
		Role:            role,
		Location:        loc,
		Points:          dto.Points,
		TotalDonations:  dto.TotalDonations,
		TotalRequests:   dto.TotalRequests,
		TotalDeliveries: dto.TotalDeliveries,
		IsApproved:      dto.IsApproved,
		IsActive:        dto.IsActive,
		CreatedAt:       dto.CreatedAt.UTC(),
	})
}
