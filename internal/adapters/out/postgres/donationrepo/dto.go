// Package donationrepo persists donations and answers radius searches with a
// haversine expression evaluated in PostgreSQL.
package donationrepo

import (
	"time"

	"foodshare/internal/adapters/out/postgres/pgtypes"
	"foodshare/internal/core/domain/model/donation"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type DonationDTO struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	DonorID            uuid.UUID           `gorm:"type:uuid;not null;index"`
	Title              string              `gorm:"type:varchar(255);not null"`
	Description        string              `gorm:"type:text"`
	Category           string              `gorm:"type:varchar(64)"`
	FoodTypes          pq.StringArray      `gorm:"type:text[]"`
	Quantity           pgtypes.QuantityDTO `gorm:"embedded;embeddedPrefix:quantity_"`
	ExpiryTime         time.Time           `gorm:"not null"`
	Pickup             pgtypes.LocationDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Status             string              `gorm:"type:varchar(32);not null;index"`
	AssignedNGO        *uuid.UUID          `gorm:"column:assigned_ngo;type:uuid;index"`
	AssignedRequester  *uuid.UUID          `gorm:"type:uuid"`
	CancellationReason string              `gorm:"type:text"`
	CreatedAt          time.Time           `gorm:"not null;autoCreateTime:false"`
	UpdatedAt          time.Time           `gorm:"not null;autoUpdateTime:false"`
}

func (DonationDTO) TableName() string {
	return "donations"
}

func fromDomain(d *donation.Donation) DonationDTO {
	s := d.Snapshot()
	return DonationDTO{
		ID:                 s.ID.Bytes(),
		DonorID:            s.DonorID.Bytes(),
		Title:              s.Details.Title,
		Description:        s.Details.Description,
		Category:           s.Details.Category,
		FoodTypes:          pq.StringArray(s.Details.FoodTypes),
		Quantity:           pgtypes.QuantityFromDomain(s.Quantity),
		ExpiryTime:         s.ExpiryTime,
		Pickup:             pgtypes.LocationFromDomain(s.PickupLocation),
		Status:             s.Status.String(),
		AssignedNGO:        pgtypes.OptionalID(s.AssignedNGO),
		AssignedRequester:  pgtypes.OptionalID(s.AssignedRequester),
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func toDomain(dto DonationDTO) (*donation.Donation, error) {
	id, err := pgtypes.UUID(dto.ID)
	if err != nil {
		return nil, err
	}
	donorID, err := pgtypes.UUID(dto.DonorID)
	if err != nil {
		return nil, err
	}
	ngoID, err := pgtypes.OptionalUUID(dto.AssignedNGO)
	if err != nil {
		return nil, err
	}
	requesterID, err := pgtypes.OptionalUUID(dto.AssignedRequester)
	if err != nil {
		return nil, err
	}
	quantity, err := dto.Quantity.ToDomain()
	if err != nil {
		return nil, err
	}
	pickup, err := dto.Pickup.ToDomain()
	if err != nil {
		return nil, err
	}
	status, err := donation.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var foodTypes []string
	if len(dto.FoodTypes) > 0 {
		foodTypes = []string(dto.FoodTypes)
	}

	return donation.Restore(donation.Snapshot{
		ID:      id,
		DonorID: donorID,
		Details: donation.Details{
			Title:       dto.Title,
			Description: dto.Description,
			Category:    dto.Category,
			FoodTypes:   foodTypes,
		},
		Quantity:           quantity,
		ExpiryTime:         dto.ExpiryTime.UTC(),
		PickupLocation:     pickup,
		Status:             status,
		AssignedNGO:        ngoID,
		AssignedRequester:  requesterID,
		CancellationReason: dto.CancellationReason,
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
	})
}
