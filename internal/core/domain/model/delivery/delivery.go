package delivery

import (
	"errors"
	"strings"
	"time"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"
)

const entityName = "delivery"

// EstimatedDuration is added to assignedAt to get the default completion estimate.
const EstimatedDuration = time.Hour

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or Restore")

// Delivery is the aggregate root for an NGO moving food from a donor to a requester.
//
// Invariants:
//   - conditionAtPickup is set once the pickup step completed, conditionAtDelivery once delivered
//   - issues only grow
//   - pointsEarned is fixed at completion and never recomputed
//   - pointsAwarded flips false to true at most once
//   - each side rates at most once, and only after delivery
type Delivery struct {
	id       kernel.UUID
	parties  Parties
	status   Status
	priority Priority

	pickupLocation   kernel.GeoLocation
	deliveryLocation kernel.GeoLocation
	currentLocation  *kernel.GeoLocation
	locationUpdateAt *time.Time

	scheduledPickup   time.Time
	actualPickup      *time.Time
	scheduledDelivery time.Time
	actualDelivery    *time.Time

	conditionAtPickup   FoodCondition
	conditionAtDelivery FoodCondition
	pickupConfirmation  *Confirmation
	deliveryConf        *Confirmation

	issues []Issue

	pointsEarned       int
	pointsAwarded      bool
	requesterConfirmed bool
	ratingFromDonor    *Rating
	ratingFromReq      *Rating

	assignedAt          time.Time
	estimatedCompletion time.Time
	actualCompletion    *time.Time

	cancelledBy        *kernel.UUID
	cancelledAt        *time.Time
	cancellationReason string

	isConstructed bool
}

// NewDelivery creates an assigned delivery. The completion estimate is
// now + EstimatedDuration and pickup is scheduled for now.
func NewDelivery(
	id kernel.UUID,
	parties Parties,
	priority Priority,
	pickupLocation, deliveryLocation kernel.GeoLocation,
	now time.Time,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		parties.Validate(),
		priority.Validate(),
		pickupLocation.Validate(),
		deliveryLocation.Validate(),
	); err != nil {
		return nil, err
	}

	estimate := now.Add(EstimatedDuration)
	return &Delivery{
		id:                  id,
		parties:             parties,
		status:              Assigned,
		priority:            priority,
		pickupLocation:      pickupLocation,
		deliveryLocation:    deliveryLocation,
		scheduledPickup:     now,
		scheduledDelivery:   estimate,
		issues:              []Issue{},
		assignedAt:          now,
		estimatedCompletion: estimate,
		isConstructed:       true,
	}, nil
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID                      { return d.id }
func (d *Delivery) Parties() Parties                     { return d.parties }
func (d *Delivery) Status() Status                       { return d.status }
func (d *Delivery) Priority() Priority                   { return d.priority }
func (d *Delivery) PickupLocation() kernel.GeoLocation   { return d.pickupLocation }
func (d *Delivery) DeliveryLocation() kernel.GeoLocation { return d.deliveryLocation }
func (d *Delivery) CurrentLocation() *kernel.GeoLocation { return d.currentLocation }
func (d *Delivery) LocationUpdatedAt() *time.Time        { return d.locationUpdateAt }
func (d *Delivery) ConditionAtPickup() FoodCondition     { return d.conditionAtPickup }
func (d *Delivery) ConditionAtDelivery() FoodCondition   { return d.conditionAtDelivery }
func (d *Delivery) PickupConfirmation() *Confirmation    { return d.pickupConfirmation }
func (d *Delivery) DeliveryConfirmation() *Confirmation  { return d.deliveryConf }
func (d *Delivery) Issues() []Issue                      { return append([]Issue(nil), d.issues...) }
func (d *Delivery) PointsEarned() int                    { return d.pointsEarned }
func (d *Delivery) PointsAwarded() bool                  { return d.pointsAwarded }
func (d *Delivery) RequesterConfirmed() bool             { return d.requesterConfirmed }
func (d *Delivery) RatingFromDonor() *Rating             { return d.ratingFromDonor }
func (d *Delivery) RatingFromRequester() *Rating         { return d.ratingFromReq }
func (d *Delivery) AssignedAt() time.Time                { return d.assignedAt }
func (d *Delivery) EstimatedCompletion() time.Time       { return d.estimatedCompletion }
func (d *Delivery) ActualCompletion() *time.Time         { return d.actualCompletion }
func (d *Delivery) CancelledBy() *kernel.UUID            { return d.cancelledBy }
func (d *Delivery) CancelledAt() *time.Time              { return d.cancelledAt }
func (d *Delivery) CancellationReason() string           { return d.cancellationReason }

// StartPickup moves an assigned delivery to pickup_in_progress.
func (d *Delivery) StartPickup(ngoID kernel.UUID) error {
	if err := d.ensureNGO(ngoID, "start pickup of"); err != nil {
		return err
	}
	return d.transition("start pickup of", PickupInProgress, Assigned)
}

// CompletePickup records the pickup handover and moves on to delivery_in_progress.
func (d *Delivery) CompletePickup(
	ngoID kernel.UUID, condition FoodCondition, notes string, photos []string, now time.Time,
) error {
	if err := d.ensureNGO(ngoID, "complete pickup of"); err != nil {
		return err
	}
	if err := condition.Validate(); err != nil {
		return err
	}
	if err := d.transition("complete pickup of", DeliveryInProgress, PickupInProgress); err != nil {
		return err
	}

	d.conditionAtPickup = condition
	d.actualPickup = &now
	d.pickupConfirmation = &Confirmation{
		ConfirmedBy: ngoID,
		ConfirmedAt: now,
		Notes:       strings.TrimSpace(notes),
		Photos:      photos,
	}
	return nil
}

// CompleteDelivery records the drop-off, marks the delivery delivered and
// freezes pointsEarned. Nothing is credited here.
func (d *Delivery) CompleteDelivery(
	ngoID kernel.UUID, condition FoodCondition, notes string, photos []string, now time.Time,
) error {
	if err := d.ensureNGO(ngoID, "complete"); err != nil {
		return err
	}
	if err := condition.Validate(); err != nil {
		return err
	}
	if err := d.transition("complete", Delivered, DeliveryInProgress); err != nil {
		return err
	}

	d.conditionAtDelivery = condition
	d.actualDelivery = &now
	d.actualCompletion = &now
	d.deliveryConf = &Confirmation{
		ConfirmedBy: ngoID,
		ConfirmedAt: now,
		Notes:       strings.TrimSpace(notes),
		Photos:      photos,
	}

	estimate := d.estimatedCompletion
	d.pointsEarned = CalculatePoints(PointsInput{
		Priority:            d.priority,
		ConditionAtDelivery: condition,
		AssignedAt:          d.assignedAt,
		EstimatedCompletion: &estimate,
		ActualCompletion:    now,
		IssueCount:          len(d.issues),
	})
	return nil
}

// ConfirmReceipt sets the requesterConfirmed latch. Repeating it is a no-op.
func (d *Delivery) ConfirmReceipt(requesterID kernel.UUID) error {
	if !d.parties.RequesterID.IsEqual(requesterID) {
		return errs.NewForbiddenError(entityName, d.id, requesterID, "confirm receipt of")
	}
	if d.status != Delivered {
		return errs.NewConflictError(entityName, d.id, "confirm receipt of", d.status.String())
	}
	d.requesterConfirmed = true
	return nil
}

// AwardPoints flips the pointsAwarded latch and reports whether this call
// flipped it. The caller credits PointsEarned to the NGO only on true.
func (d *Delivery) AwardPoints() bool {
	if d.pointsAwarded || !d.requesterConfirmed {
		return false
	}
	d.pointsAwarded = true
	return true
}

// UpdateLocation overwrites the NGO's live position.
func (d *Delivery) UpdateLocation(ngoID kernel.UUID, location kernel.GeoLocation, now time.Time) error {
	if err := d.ensureNGO(ngoID, "track"); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}
	d.currentLocation = &location
	d.locationUpdateAt = &now
	return nil
}

// ReportIssue appends to the issue log. Any bound party or an admin may
// report; status and pointsEarned are untouched.
func (d *Delivery) ReportIssue(
	actor kernel.Actor, issueType IssueType, description string, now time.Time,
) (Issue, error) {
	if !actor.IsAdmin() && !d.parties.Involves(actor.ID()) {
		return Issue{}, errs.NewForbiddenError(entityName, d.id, actor.ID(), "report issue on")
	}

	issue, err := newIssue(actor.ID(), issueType, description, now)
	if err != nil {
		return Issue{}, err
	}
	d.issues = append(d.issues, issue)
	return issue, nil
}

// Cancel closes a non-terminal delivery. Only an admin or the assigned NGO may cancel.
func (d *Delivery) Cancel(actor kernel.Actor, reason string, now time.Time) error {
	if !actor.IsAdmin() && !d.parties.NGOID.IsEqual(actor.ID()) {
		return errs.NewForbiddenError(entityName, d.id, actor.ID(), "cancel")
	}
	if d.status.IsTerminal() {
		return errs.NewConflictError(entityName, d.id, "cancel", d.status.String())
	}

	by := actor.ID()
	d.status = Cancelled
	d.cancelledBy = &by
	d.cancelledAt = &now
	d.cancellationReason = strings.TrimSpace(reason)
	return nil
}

// RateByRequester stores the requester's rating of donor and NGO.
func (d *Delivery) RateByRequester(
	requesterID kernel.UUID, donorRating, ngoRating int, feedback string, now time.Time,
) (Rating, error) {
	if !d.parties.RequesterID.IsEqual(requesterID) {
		return Rating{}, errs.NewForbiddenError(entityName, d.id, requesterID, "rate")
	}
	if err := errors.Join(
		validateStars("donorRating", donorRating),
		validateStars("ngoRating", ngoRating),
	); err != nil {
		return Rating{}, err
	}
	if d.status != Delivered || d.ratingFromReq != nil {
		return Rating{}, errs.NewConflictError(entityName, d.id, "rate", d.ratedState(d.ratingFromReq))
	}

	rating := Rating{DonorRating: donorRating, NGORating: ngoRating, Feedback: strings.TrimSpace(feedback), RatedAt: now}
	d.ratingFromReq = &rating
	return rating, nil
}

// RateByDonor stores the donor's rating of the NGO. It earns nobody points.
func (d *Delivery) RateByDonor(donorID kernel.UUID, ngoRating int, feedback string, now time.Time) (Rating, error) {
	if !d.parties.DonorID.IsEqual(donorID) {
		return Rating{}, errs.NewForbiddenError(entityName, d.id, donorID, "rate")
	}
	if err := validateStars("ngoRating", ngoRating); err != nil {
		return Rating{}, err
	}
	if d.status != Delivered || d.ratingFromDonor != nil {
		return Rating{}, errs.NewConflictError(entityName, d.id, "rate", d.ratedState(d.ratingFromDonor))
	}

	rating := Rating{NGORating: ngoRating, Feedback: strings.TrimSpace(feedback), RatedAt: now}
	d.ratingFromDonor = &rating
	return rating, nil
}

func (d *Delivery) ratedState(existing *Rating) string {
	if existing != nil {
		return d.status.String() + " (already rated)"
	}
	return d.status.String()
}

func (d *Delivery) ensureNGO(ngoID kernel.UUID, action string) error {
	if !d.parties.NGOID.IsEqual(ngoID) {
		return errs.NewForbiddenError(entityName, d.id, ngoID, action)
	}
	return nil
}

func (d *Delivery) transition(action string, to Status, from ...Status) error {
	if !d.status.in(from...) {
		return errs.NewConflictError(entityName, d.id, action, d.status.String())
	}
	d.status = to
	return nil
}
