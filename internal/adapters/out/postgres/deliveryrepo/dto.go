// Package deliveryrepo persists deliveries. Handover confirmations, ratings
// and the issue log are stored as jsonb documents.
package deliveryrepo

import (
	"encoding/json"
	"time"

	"foodshare/internal/adapters/out/postgres/pgtypes"
	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DeliveryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	NGOID       uuid.UUID `gorm:"column:ngo_id;type:uuid;not null;index"`
	DonorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	DonationID  uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(32);not null;index"`
	Priority    string    `gorm:"type:varchar(16);not null"`

	Pickup            pgtypes.LocationDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff           pgtypes.LocationDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	CurrentLatitude   *float64            `gorm:"type:double precision"`
	CurrentLongitude  *float64            `gorm:"type:double precision"`
	CurrentAddress    *string             `gorm:"type:varchar(512)"`
	LocationUpdatedAt *time.Time

	ScheduledPickup   time.Time `gorm:"not null"`
	ActualPickup      *time.Time
	ScheduledDelivery time.Time `gorm:"not null"`
	ActualDelivery    *time.Time

	ConditionAtPickup    string         `gorm:"type:varchar(16)"`
	ConditionAtDelivery  string         `gorm:"type:varchar(16)"`
	PickupConfirmation   datatypes.JSON `gorm:"type:jsonb"`
	DeliveryConfirmation datatypes.JSON `gorm:"type:jsonb"`
	Issues               datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`

	PointsEarned        int            `gorm:"not null;default:0"`
	PointsAwarded       bool           `gorm:"not null;default:false"`
	RequesterConfirmed  bool           `gorm:"not null;default:false"`
	RatingFromDonor     datatypes.JSON `gorm:"type:jsonb"`
	RatingFromRequester datatypes.JSON `gorm:"type:jsonb"`

	AssignedAt          time.Time `gorm:"not null"`
	EstimatedCompletion time.Time `gorm:"not null"`
	ActualCompletion    *time.Time

	CancelledBy        *uuid.UUID `gorm:"type:uuid"`
	CancelledAt        *time.Time
	CancellationReason string `gorm:"type:text"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

type confirmationDTO struct {
	ConfirmedBy uuid.UUID `json:"confirmedBy"`
	ConfirmedAt time.Time `json:"confirmedAt"`
	Notes       string    `json:"notes,omitempty"`
	Photos      []string  `json:"photos,omitempty"`
}

type ratingDTO struct {
	DonorRating int       `json:"donorRating,omitempty"`
	NGORating   int       `json:"ngoRating"`
	Feedback    string    `json:"feedback,omitempty"`
	RatedAt     time.Time `json:"ratedAt"`
}

type issueDTO struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	ReportedBy  uuid.UUID `json:"reportedBy"`
	ReportedAt  time.Time `json:"reportedAt"`
}

func fromDomain(d *delivery.Delivery) (DeliveryDTO, error) {
	s := d.Snapshot()
	dto := DeliveryDTO{
		ID:                  s.ID.Bytes(),
		NGOID:               s.Parties.NGOID.Bytes(),
		DonorID:             s.Parties.DonorID.Bytes(),
		RequesterID:         s.Parties.RequesterID.Bytes(),
		DonationID:          s.Parties.DonationID.Bytes(),
		RequestID:           s.Parties.RequestID.Bytes(),
		Status:              s.Status.String(),
		Priority:            s.Priority.String(),
		Pickup:              pgtypes.LocationFromDomain(s.PickupLocation),
		Dropoff:             pgtypes.LocationFromDomain(s.DeliveryLocation),
		LocationUpdatedAt:   s.LocationUpdatedAt,
		ScheduledPickup:     s.ScheduledPickup,
		ActualPickup:        s.ActualPickup,
		ScheduledDelivery:   s.ScheduledDelivery,
		ActualDelivery:      s.ActualDelivery,
		ConditionAtPickup:   conditionName(s.ConditionAtPickup),
		ConditionAtDelivery: conditionName(s.ConditionAtDelivery),
		PointsEarned:        s.PointsEarned,
		PointsAwarded:       s.PointsAwarded,
		RequesterConfirmed:  s.RequesterConfirmed,
		AssignedAt:          s.AssignedAt,
		EstimatedCompletion: s.EstimatedCompletion,
		ActualCompletion:    s.ActualCompletion,
		CancelledBy:         pgtypes.OptionalID(s.CancelledBy),
		CancelledAt:         s.CancelledAt,
		CancellationReason:  s.CancellationReason,
	}
	if loc := s.CurrentLocation; loc != nil {
		lat, lon, addr := loc.Latitude(), loc.Longitude(), loc.Address()
		dto.CurrentLatitude, dto.CurrentLongitude, dto.CurrentAddress = &lat, &lon, &addr
	}

	var err error
	if dto.PickupConfirmation, err = encodeConfirmation(s.PickupConfirmation); err != nil {
		return DeliveryDTO{}, err
	}
	if dto.DeliveryConfirmation, err = encodeConfirmation(s.DeliveryConfirmation); err != nil {
		return DeliveryDTO{}, err
	}
	if dto.RatingFromDonor, err = encodeRating(s.RatingFromDonor); err != nil {
		return DeliveryDTO{}, err
	}
	if dto.RatingFromRequester, err = encodeRating(s.RatingFromRequester); err != nil {
		return DeliveryDTO{}, err
	}
	if dto.Issues, err = encodeIssues(s.Issues); err != nil {
		return DeliveryDTO{}, err
	}
	return dto, nil
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	s := delivery.Snapshot{
		LocationUpdatedAt:   pgtypes.UTC(dto.LocationUpdatedAt),
		ScheduledPickup:     dto.ScheduledPickup.UTC(),
		ActualPickup:        pgtypes.UTC(dto.ActualPickup),
		ScheduledDelivery:   dto.ScheduledDelivery.UTC(),
		ActualDelivery:      pgtypes.UTC(dto.ActualDelivery),
		PointsEarned:        dto.PointsEarned,
		PointsAwarded:       dto.PointsAwarded,
		RequesterConfirmed:  dto.RequesterConfirmed,
		AssignedAt:          dto.AssignedAt.UTC(),
		EstimatedCompletion: dto.EstimatedCompletion.UTC(),
		ActualCompletion:    pgtypes.UTC(dto.ActualCompletion),
		CancelledAt:         pgtypes.UTC(dto.CancelledAt),
		CancellationReason:  dto.CancellationReason,
	}

	var err error
	if s.ID, err = pgtypes.UUID(dto.ID); err != nil {
		return nil, err
	}
	if s.Parties, err = partiesFromDTO(dto); err != nil {
		return nil, err
	}
	if s.Status, err = delivery.ParseStatus(dto.Status); err != nil {
		return nil, err
	}
	if s.Priority, err = delivery.ParsePriority(dto.Priority); err != nil {
		return nil, err
	}
	if s.PickupLocation, err = dto.Pickup.ToDomain(); err != nil {
		return nil, err
	}
	if s.DeliveryLocation, err = dto.Dropoff.ToDomain(); err != nil {
		return nil, err
	}
	if s.CurrentLocation, err = pgtypes.OptionalLocation(
		dto.CurrentLatitude, dto.CurrentLongitude, dto.CurrentAddress); err != nil {
		return nil, err
	}
	if s.ConditionAtPickup, err = parseCondition(dto.ConditionAtPickup); err != nil {
		return nil, err
	}
	if s.ConditionAtDelivery, err = parseCondition(dto.ConditionAtDelivery); err != nil {
		return nil, err
	}
	if s.PickupConfirmation, err = decodeConfirmation(dto.PickupConfirmation); err != nil {
		return nil, err
	}
	if s.DeliveryConfirmation, err = decodeConfirmation(dto.DeliveryConfirmation); err != nil {
		return nil, err
	}
	if s.RatingFromDonor, err = decodeRating(dto.RatingFromDonor); err != nil {
		return nil, err
	}
	if s.RatingFromRequester, err = decodeRating(dto.RatingFromRequester); err != nil {
		return nil, err
	}
	if s.Issues, err = decodeIssues(dto.Issues); err != nil {
		return nil, err
	}
	if s.CancelledBy, err = pgtypes.OptionalUUID(dto.CancelledBy); err != nil {
		return nil, err
	}

	return delivery.Restore(s)
}

func partiesFromDTO(dto DeliveryDTO) (delivery.Parties, error) {
	var p delivery.Parties
	var err error
	for _, pair := range []struct {
		dst *kernel.UUID
		raw uuid.UUID
	}{
		{&p.NGOID, dto.NGOID},
		{&p.DonorID, dto.DonorID},
		{&p.RequesterID, dto.RequesterID},
		{&p.DonationID, dto.DonationID},
		{&p.RequestID, dto.RequestID},
	} {
		if *pair.dst, err = pgtypes.UUID(pair.raw); err != nil {
			return delivery.Parties{}, err
		}
	}
	return p, nil
}

func conditionName(c delivery.FoodCondition) string {
	if c == delivery.ConditionUnknown {
		return ""
	}
	return c.String()
}

func parseCondition(name string) (delivery.FoodCondition, error) {
	if name == "" {
		return delivery.ConditionUnknown, nil
	}
	return delivery.ParseFoodCondition(name)
}

// isNull reports whether a jsonb column held SQL NULL or a JSON null.
func isNull(raw datatypes.JSON) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func encodeConfirmation(c *delivery.Confirmation) (datatypes.JSON, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(confirmationDTO{
		ConfirmedBy: c.ConfirmedBy.Bytes(),
		ConfirmedAt: c.ConfirmedAt,
		Notes:       c.Notes,
		Photos:      c.Photos,
	})
}

func decodeConfirmation(raw datatypes.JSON) (*delivery.Confirmation, error) {
	if isNull(raw) {
		return nil, nil
	}
	var dto confirmationDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}
	by, err := pgtypes.UUID(dto.ConfirmedBy)
	if err != nil {
		return nil, err
	}
	return &delivery.Confirmation{
		ConfirmedBy: by,
		ConfirmedAt: dto.ConfirmedAt.UTC(),
		Notes:       dto.Notes,
		Photos:      dto.Photos,
	}, nil
}

func encodeRating(r *delivery.Rating) (datatypes.JSON, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(ratingDTO(*r))
}

func decodeRating(raw datatypes.JSON) (*delivery.Rating, error) {
	if isNull(raw) {
		return nil, nil
	}
	var dto ratingDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}
	dto.RatedAt = dto.RatedAt.UTC()
	r := delivery.Rating(dto)
	return &r, nil
}

func issueFromDomain(issue delivery.Issue) issueDTO {
	return issueDTO{
		ID:          issue.ID.Bytes(),
		Type:        string(issue.Type),
		Description: issue.Description,
		ReportedBy:  issue.ReportedBy.Bytes(),
		ReportedAt:  issue.ReportedAt,
	}
}

func encodeIssues(issues []delivery.Issue) (datatypes.JSON, error) {
	dtos := make([]issueDTO, 0, len(issues))
	for _, issue := range issues {
		dtos = append(dtos, issueFromDomain(issue))
	}
	return json.Marshal(dtos)
}

func decodeIssues(raw datatypes.JSON) ([]delivery.Issue, error) {
	if isNull(raw) {
		return []delivery.Issue{}, nil
	}
	var dtos []issueDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	issues := make([]delivery.Issue, 0, len(dtos))
	for _, dto := range dtos {
		id, err := pgtypes.UUID(dto.ID)
		if err != nil {
			return nil, err
		}
		by, err := pgtypes.UUID(dto.ReportedBy)
		if err != nil {
			return nil, err
		}
		issues = append(issues, delivery.Issue{
			ID:          id,
			Type:        delivery.IssueType(dto.Type),
			Description: dto.Description,
			ReportedBy:  by,
			ReportedAt:  dto.ReportedAt.UTC(),
		})
	}
	return issues, nil
}
