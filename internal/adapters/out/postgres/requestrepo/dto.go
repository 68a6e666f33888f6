// Package requestrepo persists requests and runs the batch expiry sweep.
package requestrepo

import (
	"time"

	"foodshare/internal/adapters/out/postgres/pgtypes"
	"foodshare/internal/core/domain/model/request"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RequestDTO struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primaryKey"`
	RequesterID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	Title               string              `gorm:"type:varchar(255);not null"`
	Description         string              `gorm:"type:text"`
	FoodTypes           pq.StringArray      `gorm:"type:text[]"`
	Quantity            pgtypes.QuantityDTO `gorm:"embedded;embeddedPrefix:quantity_"`
	DietaryRestrictions pq.StringArray      `gorm:"type:text[]"`
	Urgency             string              `gorm:"type:varchar(16);not null"`
	Delivery            pgtypes.LocationDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	ExpiresAt           time.Time           `gorm:"not null;index:idx_requests_status_expires,priority:2"`
	Status              string              `gorm:"type:varchar(32);not null;index:idx_requests_status_expires,priority:1"`
	AcceptanceKind      string              `gorm:"type:varchar(16);not null;default:none"`
	AcceptedBy          *uuid.UUID          `gorm:"type:uuid"`
	AssignedDonation    *uuid.UUID          `gorm:"type:uuid"`
	AcceptedAt          *time.Time
	CancelledAt         *time.Time
	CancellationReason  string    `gorm:"type:text"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt           time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (RequestDTO) TableName() string {
	return "requests"
}

func fromDomain(r *request.Request) RequestDTO {
	s := r.Snapshot()
	return RequestDTO{
		ID:                  s.ID.Bytes(),
		RequesterID:         s.RequesterID.Bytes(),
		Title:               s.Details.Title,
		Description:         s.Details.Description,
		FoodTypes:           pq.StringArray(s.Details.Requirements.FoodTypes),
		Quantity:            pgtypes.QuantityFromDomain(s.Details.Requirements.Quantity),
		DietaryRestrictions: pq.StringArray(s.Details.Requirements.DietaryRestrictions),
		Urgency:             s.Urgency.String(),
		Delivery:            pgtypes.LocationFromDomain(s.DeliveryLocation),
		ExpiresAt:           s.ExpiresAt,
		Status:              s.Status.String(),
		AcceptanceKind:      s.Acceptance.Kind().String(),
		AcceptedBy:          pgtypes.OptionalID(s.Acceptance.AcceptorPtr()),
		AssignedDonation:    pgtypes.OptionalID(s.AssignedDonation),
		AcceptedAt:          s.AcceptedAt,
		CancelledAt:         s.CancelledAt,
		CancellationReason:  s.CancellationReason,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func toDomain(dto RequestDTO) (*request.Request, error) {
	id, err := pgtypes.UUID(dto.ID)
	if err != nil {
		return nil, err
	}
	requesterID, err := pgtypes.UUID(dto.RequesterID)
	if err != nil {
		return nil, err
	}
	acceptorID, err := pgtypes.OptionalUUID(dto.AcceptedBy)
	if err != nil {
		return nil, err
	}
	acceptance, err := request.RestoreAcceptance(dto.AcceptanceKind, acceptorID)
	if err != nil {
		return nil, err
	}
	donationID, err := pgtypes.OptionalUUID(dto.AssignedDonation)
	if err != nil {
		return nil, err
	}
	quantity, err := dto.Quantity.ToDomain()
	if err != nil {
		return nil, err
	}
	location, err := dto.Delivery.ToDomain()
	if err != nil {
		return nil, err
	}
	urgency, err := request.ParseUrgency(dto.Urgency)
	if err != nil {
		return nil, err
	}
	status, err := request.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return request.Restore(request.Snapshot{
		ID:          id,
		RequesterID: requesterID,
		Details: request.Details{
			Title:       dto.Title,
			Description: dto.Description,
			Requirements: request.Requirements{
				FoodTypes:           optionalStrings(dto.FoodTypes),
				Quantity:            quantity,
				DietaryRestrictions: optionalStrings(dto.DietaryRestrictions),
			},
		},
		Urgency:            urgency,
		DeliveryLocation:   location,
		ExpiresAt:          dto.ExpiresAt.UTC(),
		Status:             status,
		Acceptance:         acceptance,
		AssignedDonation:   donationID,
		AcceptedAt:         pgtypes.UTC(dto.AcceptedAt),
		CancelledAt:        pgtypes.UTC(dto.CancelledAt),
		CancellationReason: dto.CancellationReason,
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
	})
}

func optionalStrings(a pq.StringArray) []string {
	if len(a) == 0 {
		return nil
	}
	return []string(a)
}
