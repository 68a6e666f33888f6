package donation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"
)

const entityName = "donation"

var ErrDonationIsNotConstructed = errors.New("Donation must be created via NewDonation or Restore")

// Details is the descriptive part of a donation supplied by the donor.
type Details struct {
	Title       string
	Description string
	Category    string
	FoodTypes   []string
}

// Donation is the aggregate root for an offer of surplus food.
//
// Invariants:
//   - expiryTime is strictly after the creation instant
//   - assignedNGO is set only in assigned_to_ngo and the states reached from it
//   - assignedRequester is set on the requester-direct path and when a delivery binds one
//   - status never moves backwards except through Reset
type Donation struct {
	id                 kernel.UUID
	donorID            kernel.UUID
	details            Details
	quantity           kernel.Quantity
	expiryTime         time.Time
	pickupLocation     kernel.GeoLocation
	status             Status
	assignedNGO        *kernel.UUID
	assignedRequester  *kernel.UUID
	cancellationReason string
	createdAt          time.Time
	updatedAt          time.Time

	isConstructed bool
}

// NewDonation creates an active donation. It fails with a ValueIsInvalid
// error on expiryTime when the expiry is not strictly in the future.
func NewDonation(
	id, donorID kernel.UUID,
	details Details,
	quantity kernel.Quantity,
	expiryTime time.Time,
	pickupLocation kernel.GeoLocation,
	now time.Time,
) (*Donation, error) {
	d := &Donation{
		id:             id,
		donorID:        donorID,
		quantity:       quantity,
		pickupLocation: pickupLocation,
		status:         Active,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}

	if err := errors.Join(
		id.Validate(),
		donorID.Validate(),
		quantity.Validate(),
		pickupLocation.Validate(),
		d.setDetails(details),
		d.setExpiryTime(expiryTime, now),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Snapshot is the flat persisted form of a Donation.
type Snapshot struct {
	ID                 kernel.UUID
	DonorID            kernel.UUID
	Details            Details
	Quantity           kernel.Quantity
	ExpiryTime         time.Time
	PickupLocation     kernel.GeoLocation
	Status             Status
	AssignedNGO        *kernel.UUID
	AssignedRequester  *kernel.UUID
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Restore rebuilds a Donation from storage without re-checking the
// creation-time expiry rule.
func Restore(s Snapshot) (*Donation, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.DonorID.Validate(),
		s.Quantity.Validate(),
		s.PickupLocation.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Donation{
		id:                 s.ID,
		donorID:            s.DonorID,
		details:            s.Details,
		quantity:           s.Quantity,
		expiryTime:         s.ExpiryTime,
		pickupLocation:     s.PickupLocation,
		status:             s.Status,
		assignedNGO:        s.AssignedNGO,
		assignedRequester:  s.AssignedRequester,
		cancellationReason: s.CancellationReason,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		isConstructed:      true,
	}, nil
}

// Snapshot exports the current state for persistence.
func (d *Donation) Snapshot() Snapshot {
	return Snapshot{
		ID:                 d.id,
		DonorID:            d.donorID,
		Details:            d.details,
		Quantity:           d.quantity,
		ExpiryTime:         d.expiryTime,
		PickupLocation:     d.pickupLocation,
		Status:             d.status,
		AssignedNGO:        d.assignedNGO,
		AssignedRequester:  d.assignedRequester,
		CancellationReason: d.cancellationReason,
		CreatedAt:          d.createdAt,
		UpdatedAt:          d.updatedAt,
	}
}

func (d *Donation) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDonationIsNotConstructed
	}
	return nil
}

func (d *Donation) ID() kernel.UUID                    { return d.id }
func (d *Donation) DonorID() kernel.UUID               { return d.donorID }
func (d *Donation) Details() Details                   { return d.details }
func (d *Donation) Quantity() kernel.Quantity          { return d.quantity }
func (d *Donation) ExpiryTime() time.Time              { return d.expiryTime }
func (d *Donation) PickupLocation() kernel.GeoLocation { return d.pickupLocation }
func (d *Donation) Status() Status                     { return d.status }
func (d *Donation) AssignedNGO() *kernel.UUID          { return d.assignedNGO }
func (d *Donation) AssignedRequester() *kernel.UUID    { return d.assignedRequester }
func (d *Donation) CancellationReason() string         { return d.cancellationReason }
func (d *Donation) CreatedAt() time.Time               { return d.createdAt }
func (d *Donation) UpdatedAt() time.Time               { return d.updatedAt }

// IsOwnedBy reports whether donorID created this donation.
func (d *Donation) IsOwnedBy(donorID kernel.UUID) bool {
	return d.donorID.IsEqual(donorID)
}

// IsExpired compares now with expiryTime; it does not change state.
func (d *Donation) IsExpired(now time.Time) bool {
	return now.After(d.expiryTime)
}

// EnsureClaimable checks that the donation is active and not past its expiry.
// An overdue active donation yields an Expired error; callers are expected to
// persist MarkExpired before returning it.
func (d *Donation) EnsureClaimable(action string, now time.Time) error {
	if d.status != Active {
		return errs.NewConflictError(entityName, d.id, action, d.status.String())
	}
	if d.IsExpired(now) {
		return errs.NewExpiredError(entityName, d.id, d.expiryTime)
	}
	return nil
}

// MarkExpired flips an overdue active donation to expired.
func (d *Donation) MarkExpired(now time.Time) error {
	if d.status != Active {
		return errs.NewConflictError(entityName, d.id, "expire", d.status.String())
	}
	if !d.IsExpired(now) {
		return errs.NewValueIsInvalidErrorWithCause("donation.expiryTime",
			fmt.Errorf("%s has not passed yet", d.expiryTime.Format(time.RFC3339)))
	}
	d.status = Expired
	d.updatedAt = now
	return nil
}

// AssignToNGO hands the donation to an NGO. requesterID is set when a delivery
// binds the donation to a request at the same time.
func (d *Donation) AssignToNGO(ngoID kernel.UUID, requesterID *kernel.UUID, now time.Time) error {
	if err := ngoID.Validate(); err != nil {
		return err
	}
	if err := d.EnsureClaimable("assign to ngo", now); err != nil {
		return err
	}

	d.status = AssignedToNGO
	d.assignedNGO = &ngoID
	d.assignedRequester = requesterID
	d.updatedAt = now
	return nil
}

// AssignToRequester records a donor accepting a request directly.
func (d *Donation) AssignToRequester(requesterID kernel.UUID, now time.Time) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	if err := d.EnsureClaimable("assign to requester", now); err != nil {
		return err
	}

	d.status = AssignedToRequester
	d.assignedRequester = &requesterID
	d.updatedAt = now
	return nil
}

func (d *Donation) MarkPickedUp(now time.Time) error {
	return d.transition("pick up", PickedUp, now, AssignedToNGO, AssignedToRequester)
}

func (d *Donation) MarkDelivered(now time.Time) error {
	return d.transition("deliver", Delivered, now, PickedUp)
}

// Cancel soft-cancels a donation from any non-terminal state.
func (d *Donation) Cancel(reason string, now time.Time) error {
	if d.status.IsTerminal() {
		return errs.NewConflictError(entityName, d.id, "cancel", d.status.String())
	}

	d.status = Cancelled
	d.cancellationReason = strings.TrimSpace(reason)
	d.updatedAt = now
	return nil
}

// EnsureDeletable allows hard deletion only while the donation is active.
func (d *Donation) EnsureDeletable() error {
	if d.status != Active {
		return errs.NewConflictError(entityName, d.id, "delete", d.status.String())
	}
	return nil
}

// Reset returns a donation whose delivery was cancelled to the open pool.
func (d *Donation) Reset(now time.Time) error {
	if err := d.transition("reset", Active, now, AssignedToNGO, PickedUp); err != nil {
		return err
	}
	d.assignedNGO = nil
	d.assignedRequester = nil
	return nil
}

func (d *Donation) transition(action string, to Status, now time.Time, from ...Status) error {
	if !d.status.in(from...) {
		return errs.NewConflictError(entityName, d.id, action, d.status.String())
	}
	d.status = to
	d.updatedAt = now
	return nil
}

func (d *Donation) setDetails(details Details) error {
	details.Title = strings.TrimSpace(details.Title)
	if details.Title == "" {
		return errs.NewValueIsRequiredError("donation.title")
	}
	d.details = details
	return nil
}

func (d *Donation) setExpiryTime(expiryTime, now time.Time) error {
	if !expiryTime.After(now) {
		return errs.NewValueIsInvalidErrorWithCause("expiryTime",
			fmt.Errorf("%s is not after %s", expiryTime.Format(time.RFC3339), now.Format(time.RFC3339)))
	}
	d.expiryTime = expiryTime
	return nil
}
