package http

import (
	"time"

	"foodshare/internal/core/application/usecases/queries"
	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/ports"
)

type Location struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Address   string   `json:"address,omitempty"`
}

func (l Location) toDomain() (kernel.GeoLocation, error) {
	return kernel.NewGeoLocation(*l.Latitude, *l.Longitude, l.Address)
}

func locationOf(g kernel.GeoLocation) Location {
	lat, lon := g.Latitude(), g.Longitude()
	return Location{Latitude: &lat, Longitude: &lon, Address: g.Address()}
}

func optionalLocationOf(g *kernel.GeoLocation) *Location {
	if g == nil {
		return nil
	}
	l := locationOf(*g)
	return &l
}

type Quantity struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Unit   string  `json:"unit" validate:"required"`
}

func (q Quantity) toDomain() (kernel.Quantity, error) {
	return kernel.NewQuantity(q.Amount, q.Unit)
}

func quantityOf(q kernel.Quantity) Quantity {
	return Quantity{Amount: q.Amount(), Unit: q.Unit()}
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// Inputs.

type RegisterUserInput struct {
	Name     string    `json:"name" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Role     string    `json:"role" validate:"required,oneof=donor requester ngo admin"`
	Location *Location `json:"location,omitempty"`
}

type CreateDonationInput struct {
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	FoodTypes      []string  `json:"foodTypes"`
	Quantity       Quantity  `json:"quantity"`
	ExpiryTime     time.Time `json:"expiryTime" validate:"required"`
	PickupLocation Location  `json:"pickupLocation"`
}

type AssignNGOInput struct {
	NGOID string `json:"ngoId" validate:"required,uuid"`
}

type ReasonInput struct {
	Reason string `json:"reason"`
}

type CreateRequestInput struct {
	Title               string   `json:"title" validate:"required"`
	Description         string   `json:"description"`
	FoodTypes           []string `json:"foodTypes"`
	Quantity            Quantity `json:"quantity"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	Urgency             string   `json:"urgency" validate:"omitempty,oneof=low medium high critical"`
	DeliveryLocation    Location `json:"deliveryLocation"`
}

type AcceptRequestInput struct {
	DonationID *string `json:"donationId,omitempty" validate:"omitempty,uuid"`
}

type ExtendRequestInput struct {
	Minutes int `json:"minutes"`
}

type CreateDeliveryInput struct {
	DonationID string `json:"donationId" validate:"required,uuid"`
	RequestID  string `json:"requestId" validate:"required,uuid"`
}

type HandoverInput struct {
	Condition string   `json:"condition" validate:"required,oneof=excellent good fair poor"`
	Notes     string   `json:"notes"`
	Photos    []string `json:"photos" validate:"omitempty,dive,required"`
}

type IssueInput struct {
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type RequesterRatingInput struct {
	DonorRating int    `json:"donorRating" validate:"required"`
	NGORating   int    `json:"ngoRating" validate:"required"`
	Feedback    string `json:"feedback"`
}

type DonorRatingInput struct {
	NGORating int    `json:"ngoRating" validate:"required"`
	Feedback  string `json:"feedback"`
}

// Responses.

type Created struct {
	ID string `json:"id"`
}

type UserResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Location        *Location `json:"location,omitempty"`
	Points          int       `json:"points"`
	TotalDonations  int       `json:"totalDonations"`
	TotalRequests   int       `json:"totalRequests"`
	TotalDeliveries int       `json:"totalDeliveries"`
	IsApproved      bool      `json:"isApproved"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

func userResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:              u.ID().String(),
		Name:            u.Name(),
		Email:           u.Email(),
		Role:            u.Role().String(),
		Location:        optionalLocationOf(u.Location()),
		Points:          u.Points(),
		TotalDonations:  u.TotalDonations(),
		TotalRequests:   u.TotalRequests(),
		TotalDeliveries: u.TotalDeliveries(),
		IsApproved:      u.IsApproved(),
		IsActive:        u.IsActive(),
		CreatedAt:       u.CreatedAt(),
	}
}

type DonationResponse struct {
	ID                 string    `json:"id"`
	DonorID            string    `json:"donorId"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Category           string    `json:"category,omitempty"`
	FoodTypes          []string  `json:"foodTypes"`
	Quantity           Quantity  `json:"quantity"`
	ExpiryTime         time.Time `json:"expiryTime"`
	PickupLocation     Location  `json:"pickupLocation"`
	Status             string    `json:"status"`
	AssignedNGO        *string   `json:"assignedNgo,omitempty"`
	AssignedRequester  *string   `json:"assignedRequester,omitempty"`
	CancellationReason string    `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	DistanceKm         *float64  `json:"distanceKm,omitempty"`
}

func donationResponse(d *donation.Donation) DonationResponse {
	details := d.Details()
	return DonationResponse{
		ID:                 d.ID().String(),
		DonorID:            d.DonorID().String(),
		Title:              details.Title,
		Description:        details.Description,
		Category:           details.Category,
		FoodTypes:          nonNil(details.FoodTypes),
		Quantity:           quantityOf(d.Quantity()),
		ExpiryTime:         d.ExpiryTime(),
		PickupLocation:     locationOf(d.PickupLocation()),
		Status:             d.Status().String(),
		AssignedNGO:        optionalString(d.AssignedNGO()),
		AssignedRequester:  optionalString(d.AssignedRequester()),
		CancellationReason: d.CancellationReason(),
		CreatedAt:          d.CreatedAt(),
		UpdatedAt:          d.UpdatedAt(),
	}
}

func nearbyResponse(matches []ports.NearbyDonation) []DonationResponse {
	out := make([]DonationResponse, len(matches))
	for i, m := range matches {
		distance := m.DistanceKm
		out[i] = donationResponse(m.Donation)
		out[i].DistanceKm = &distance
	}
	return out
}

type RequestResponse struct {
	ID                   string     `json:"id"`
	RequesterID          string     `json:"requesterId"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	FoodTypes            []string   `json:"foodTypes"`
	Quantity             Quantity   `json:"quantity"`
	DietaryRestrictions  []string   `json:"dietaryRestrictions"`
	Urgency              string     `json:"urgency"`
	DeliveryLocation     Location   `json:"deliveryLocation"`
	ExpiresAt            time.Time  `json:"expiresAt"`
	Status               string     `json:"status"`
	AcceptedByKind       string     `json:"acceptedByKind"`
	AcceptedBy           *string    `json:"acceptedBy,omitempty"`
	AssignedDonation     *string    `json:"assignedDonation,omitempty"`
	AcceptedAt           *time.Time `json:"acceptedAt,omitempty"`
	CancelledAt          *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason   string     `json:"cancellationReason,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
	TimeRemainingSeconds int64      `json:"timeRemainingSeconds"`
}

func requestResponse(view queries.RequestView) RequestResponse {
	r := view.Request
	details := r.Details()

	var acceptedBy *string
	if id, ok := r.Acceptance().AcceptorID(); ok {
		acceptedBy = optionalString(&id)
	}

	return RequestResponse{
		ID:                   r.ID().String(),
		RequesterID:          r.RequesterID().String(),
		Title:                details.Title,
		Description:          details.Description,
		FoodTypes:            nonNil(details.Requirements.FoodTypes),
		Quantity:             quantityOf(details.Requirements.Quantity),
		DietaryRestrictions:  nonNil(details.Requirements.DietaryRestrictions),
		Urgency:              r.Urgency().String(),
		DeliveryLocation:     locationOf(r.DeliveryLocation()),
		ExpiresAt:            r.ExpiresAt(),
		Status:               r.Status().String(),
		AcceptedByKind:       r.Acceptance().Kind().String(),
		AcceptedBy:           acceptedBy,
		AssignedDonation:     optionalString(r.AssignedDonation()),
		AcceptedAt:           r.AcceptedAt(),
		CancelledAt:          r.CancelledAt(),
		CancellationReason:   r.CancellationReason(),
		CreatedAt:            r.CreatedAt(),
		UpdatedAt:            r.UpdatedAt(),
		TimeRemainingSeconds: int64(view.TimeRemaining / time.Second),
	}
}

type Confirmation struct {
	ConfirmedBy string    `json:"confirmedBy"`
	ConfirmedAt time.Time `json:"confirmedAt"`
	Notes       string    `json:"notes,omitempty"`
	Photos      []string  `json:"photos"`
}

func confirmationOf(c *delivery.Confirmation) *Confirmation {
	if c == nil {
		return nil
	}
	return &Confirmation{
		ConfirmedBy: c.ConfirmedBy.String(),
		ConfirmedAt: c.ConfirmedAt,
		Notes:       c.Notes,
		Photos:      nonNil(c.Photos),
	}
}

type Issue struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	ReportedBy  string    `json:"reportedBy"`
	ReportedAt  time.Time `json:"reportedAt"`
}

type Rating struct {
	DonorRating int       `json:"donorRating,omitempty"`
	NGORating   int       `json:"ngoRating"`
	Feedback    string    `json:"feedback,omitempty"`
	RatedAt     time.Time `json:"ratedAt"`
}

func ratingOf(r *delivery.Rating) *Rating {
	if r == nil {
		return nil
	}
	return &Rating{DonorRating: r.DonorRating, NGORating: r.NGORating, Feedback: r.Feedback, RatedAt: r.RatedAt}
}

type DeliveryResponse struct {
	ID                   string        `json:"id"`
	NGOID                string        `json:"ngoId"`
	DonorID              string        `json:"donorId"`
	RequesterID          string        `json:"requesterId"`
	DonationID           string        `json:"donationId"`
	RequestID            string        `json:"requestId"`
	Status               string        `json:"status"`
	Priority             string        `json:"priority"`
	PickupLocation       Location      `json:"pickupLocation"`
	DeliveryLocation     Location      `json:"deliveryLocation"`
	CurrentLocation      *Location     `json:"currentLocation,omitempty"`
	LocationUpdatedAt    *time.Time    `json:"locationUpdatedAt,omitempty"`
	ConditionAtPickup    string        `json:"conditionAtPickup,omitempty"`
	ConditionAtDelivery  string        `json:"conditionAtDelivery,omitempty"`
	PickupConfirmation   *Confirmation `json:"pickupConfirmation,omitempty"`
	DeliveryConfirmation *Confirmation `json:"deliveryConfirmation,omitempty"`
	Issues               []Issue       `json:"issues"`
	PointsEarned         int           `json:"pointsEarned"`
	PointsAwarded        bool          `json:"pointsAwarded"`
	RequesterConfirmed   bool          `json:"requesterConfirmed"`
	RatingFromDonor      *Rating       `json:"ratingFromDonor,omitempty"`
	RatingFromRequester  *Rating       `json:"ratingFromRequester,omitempty"`
	AssignedAt           time.Time     `json:"assignedAt"`
	EstimatedCompletion  time.Time     `json:"estimatedCompletion"`
	ActualCompletion     *time.Time    `json:"actualCompletion,omitempty"`
	CancelledBy          *string       `json:"cancelledBy,omitempty"`
	CancelledAt          *time.Time    `json:"cancelledAt,omitempty"`
	CancellationReason   string        `json:"cancellationReason,omitempty"`
}

func deliveryResponse(d *delivery.Delivery) DeliveryResponse {
	parties := d.Parties()

	issues := make([]Issue, 0, len(d.Issues()))
	for _, i := range d.Issues() {
		issues = append(issues, Issue{
			ID:          i.ID.String(),
			Type:        string(i.Type),
			Description: i.Description,
			ReportedBy:  i.ReportedBy.String(),
			ReportedAt:  i.ReportedAt,
		})
	}

	return DeliveryResponse{
		ID:                   d.ID().String(),
		NGOID:                parties.NGOID.String(),
		DonorID:              parties.DonorID.String(),
		RequesterID:          parties.RequesterID.String(),
		DonationID:           parties.DonationID.String(),
		RequestID:            parties.RequestID.String(),
		Status:               d.Status().String(),
		Priority:             d.Priority().String(),
		PickupLocation:       locationOf(d.PickupLocation()),
		DeliveryLocation:     locationOf(d.DeliveryLocation()),
		CurrentLocation:      optionalLocationOf(d.CurrentLocation()),
		LocationUpdatedAt:    d.LocationUpdatedAt(),
		ConditionAtPickup:    conditionName(d.ConditionAtPickup()),
		ConditionAtDelivery:  conditionName(d.ConditionAtDelivery()),
		PickupConfirmation:   confirmationOf(d.PickupConfirmation()),
		DeliveryConfirmation: confirmationOf(d.DeliveryConfirmation()),
		Issues:               issues,
		PointsEarned:         d.PointsEarned(),
		PointsAwarded:        d.PointsAwarded(),
		RequesterConfirmed:   d.RequesterConfirmed(),
		RatingFromDonor:      ratingOf(d.RatingFromDonor()),
		RatingFromRequester:  ratingOf(d.RatingFromRequester()),
		AssignedAt:           d.AssignedAt(),
		EstimatedCompletion:  d.EstimatedCompletion(),
		ActualCompletion:     d.ActualCompletion(),
		CancelledBy:          optionalString(d.CancelledBy()),
		CancelledAt:          d.CancelledAt(),
		CancellationReason:   d.CancellationReason(),
	}
}

type ConfirmReceiptResponse struct {
	Awarded bool `json:"awarded"`
	Points  int  `json:"points"`
}

func conditionName(c delivery.FoodCondition) string {
	if c == delivery.ConditionUnknown {
		return ""
	}
	return c.String()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
