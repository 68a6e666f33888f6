package delivery

import (
	"errors"
	"time"

	"foodshare/internal/core/domain/model/kernel"
)

// Snapshot is the flat persisted form of a Delivery.
type Snapshot struct {
	ID       kernel.UUID
	Parties  Parties
	Status   Status
	Priority Priority

	PickupLocation    kernel.GeoLocation
	DeliveryLocation  kernel.GeoLocation
	CurrentLocation   *kernel.GeoLocation
	LocationUpdatedAt *time.Time

	ScheduledPickup   time.Time
	ActualPickup      *time.Time
	ScheduledDelivery time.Time
	ActualDelivery    *time.Time

	ConditionAtPickup    FoodCondition
	ConditionAtDelivery  FoodCondition
	PickupConfirmation   *Confirmation
	DeliveryConfirmation *Confirmation

	Issues []Issue

	PointsEarned        int
	PointsAwarded       bool
	RequesterConfirmed  bool
	RatingFromDonor     *Rating
	RatingFromRequester *Rating

	AssignedAt          time.Time
	EstimatedCompletion time.Time
	ActualCompletion    *time.Time

	CancelledBy        *kernel.UUID
	CancelledAt        *time.Time
	CancellationReason string
}

// Restore rebuilds a Delivery from storage. Food conditions are checked
// against the status: a delivery past pickup must carry conditionAtPickup and
// a delivered one conditionAtDelivery.
func Restore(s Snapshot) (*Delivery, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.Parties.Validate(),
		s.Status.Validate(),
		s.Priority.Validate(),
		s.PickupLocation.Validate(),
		s.DeliveryLocation.Validate(),
	); err != nil {
		return nil, err
	}
	if s.Status.in(DeliveryInProgress, Delivered) {
		if err := s.ConditionAtPickup.Validate(); err != nil {
			return nil, err
		}
	}
	if s.Status == Delivered {
		if err := s.ConditionAtDelivery.Validate(); err != nil {
			return nil, err
		}
	}

	issues := s.Issues
	if issues == nil {
		issues = []Issue{}
	}

	return &Delivery{
		id:                  s.ID,
		parties:             s.Parties,
		status:              s.Status,
		priority:            s.Priority,
		pickupLocation:      s.PickupLocation,
		deliveryLocation:    s.DeliveryLocation,
		currentLocation:     s.CurrentLocation,
		locationUpdateAt:    s.LocationUpdatedAt,
		scheduledPickup:     s.ScheduledPickup,
		actualPickup:        s.ActualPickup,
		scheduledDelivery:   s.ScheduledDelivery,
		actualDelivery:      s.ActualDelivery,
		conditionAtPickup:   s.ConditionAtPickup,
		conditionAtDelivery: s.ConditionAtDelivery,
		pickupConfirmation:  s.PickupConfirmation,
		deliveryConf:        s.DeliveryConfirmation,
		issues:              issues,
		pointsEarned:        s.PointsEarned,
		pointsAwarded:       s.PointsAwarded,
		requesterConfirmed:  s.RequesterConfirmed,
		ratingFromDonor:     s.RatingFromDonor,
		ratingFromReq:       s.RatingFromRequester,
		assignedAt:          s.AssignedAt,
		estimatedCompletion: s.EstimatedCompletion,
		actualCompletion:    s.ActualCompletion,
		cancelledBy:         s.CancelledBy,
		cancelledAt:         s.CancelledAt,
		cancellationReason:  s.CancellationReason,
		isConstructed:       true,
	}, nil
}

func (d *Delivery) Snapshot() Snapshot {
	return Snapshot{
		ID:                   d.id,
		Parties:              d.parties,
		Status:               d.status,
		Priority:             d.priority,
		PickupLocation:       d.pickupLocation,
		DeliveryLocation:     d.deliveryLocation,
		CurrentLocation:      d.currentLocation,
		LocationUpdatedAt:    d.locationUpdateAt,
		ScheduledPickup:      d.scheduledPickup,
		ActualPickup:         d.actualPickup,
		ScheduledDelivery:    d.scheduledDelivery,
		ActualDelivery:       d.actualDelivery,
		ConditionAtPickup:    d.conditionAtPickup,
		ConditionAtDelivery:  d.conditionAtDelivery,
		PickupConfirmation:   d.pickupConfirmation,
		DeliveryConfirmation: d.deliveryConf,
		Issues:               d.Issues(),
		PointsEarned:         d.pointsEarned,
		PointsAwarded:        d.pointsAwarded,
		RequesterConfirmed:   d.requesterConfirmed,
		RatingFromDonor:      d.ratingFromDonor,
		RatingFromRequester:  d.ratingFromReq,
		AssignedAt:           d.assignedAt,
		EstimatedCompletion:  d.estimatedCompletion,
		ActualCompletion:     d.actualCompletion,
		CancelledBy:          d.cancelledBy,
		CancelledAt:          d.cancelledAt,
		CancellationReason:   d.cancellationReason,
	}
}
