package request

import (
	"errors"
	"strings"
	"time"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"
)

const (
	entityName = "request"

	// DefaultLifetime is how long a new request stays open for acceptance.
	DefaultLifetime = 5 * time.Minute

	MinExtensionMinutes     = 1
	MaxExtensionMinutes     = 30
	DefaultExtensionMinutes = 5
)

var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or Restore")

// Requirements describe what the requester needs.
type Requirements struct {
	FoodTypes           []string
	Quantity            kernel.Quantity
	DietaryRestrictions []string
}

// Details is the requester-supplied descriptive payload.
type Details struct {
	Title        string
	Description  string
	Requirements Requirements
}

// Request is the aggregate root for a requester's ask.
//
// Invariants:
//   - at most one acceptor, recorded as a tagged Acceptance
//   - acceptedAt is stamped by the first acceptance and never rewritten
//   - assignedDonation is set only on the donor path or when a delivery is bound
//   - only the owning requester may extend, cancel or delete
type Request struct {
	id                 kernel.UUID
	requesterID        kernel.UUID
	details            Details
	urgency            Urgency
	deliveryLocation   kernel.GeoLocation
	expiresAt          time.Time
	status             Status
	acceptance         Acceptance
	assignedDonation   *kernel.UUID
	acceptedAt         *time.Time
	cancelledAt        *time.Time
	cancellationReason string
	createdAt          time.Time
	updatedAt          time.Time

	isConstructed bool
}

// NewRequest opens a pending request that expires DefaultLifetime after now.
func NewRequest(
	id, requesterID kernel.UUID,
	details Details,
	urgency Urgency,
	deliveryLocation kernel.GeoLocation,
	now time.Time,
) (*Request, error) {
	r := &Request{
		id:               id,
		requesterID:      requesterID,
		urgency:          urgency,
		deliveryLocation: deliveryLocation,
		expiresAt:        now.Add(DefaultLifetime),
		status:           Pending,
		acceptance:       NoAcceptance(),
		createdAt:        now,
		updatedAt:        now,
		isConstructed:    true,
	}

	if err := errors.Join(
		id.Validate(),
		requesterID.Validate(),
		urgency.Validate(),
		deliveryLocation.Validate(),
		r.setDetails(details),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Snapshot is the flat persisted form of a Request.
type Snapshot struct {
	ID                 kernel.UUID
	RequesterID        kernel.UUID
	Details            Details
	Urgency            Urgency
	DeliveryLocation   kernel.GeoLocation
	ExpiresAt          time.Time
	Status             Status
	Acceptance         Acceptance
	AssignedDonation   *kernel.UUID
	AcceptedAt         *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func Restore(s Snapshot) (*Request, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.RequesterID.Validate(),
		s.Urgency.Validate(),
		s.DeliveryLocation.Validate(),
		s.Status.Validate(),
		s.Details.Requirements.Quantity.Validate(),
	); err != nil {
		return nil, err
	}

	return &Request{
		id:                 s.ID,
		requesterID:        s.RequesterID,
		details:            s.Details,
		urgency:            s.Urgency,
		deliveryLocation:   s.DeliveryLocation,
		expiresAt:          s.ExpiresAt,
		status:             s.Status,
		acceptance:         s.Acceptance,
		assignedDonation:   s.AssignedDonation,
		acceptedAt:         s.AcceptedAt,
		cancelledAt:        s.CancelledAt,
		cancellationReason: s.CancellationReason,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		isConstructed:      true,
	}, nil
}

func (r *Request) Snapshot() Snapshot {
	return Snapshot{
		ID:                 r.id,
		RequesterID:        r.requesterID,
		Details:            r.details,
		Urgency:            r.urgency,
		DeliveryLocation:   r.deliveryLocation,
		ExpiresAt:          r.expiresAt,
		Status:             r.status,
		Acceptance:         r.acceptance,
		AssignedDonation:   r.assignedDonation,
		AcceptedAt:         r.acceptedAt,
		CancelledAt:        r.cancelledAt,
		CancellationReason: r.cancellationReason,
		CreatedAt:          r.createdAt,
		UpdatedAt:          r.updatedAt,
	}
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID                      { return r.id }
func (r *Request) RequesterID() kernel.UUID             { return r.requesterID }
func (r *Request) Details() Details                     { return r.details }
func (r *Request) Urgency() Urgency                     { return r.urgency }
func (r *Request) DeliveryLocation() kernel.GeoLocation { return r.deliveryLocation }
func (r *Request) ExpiresAt() time.Time                 { return r.expiresAt }
func (r *Request) Status() Status                       { return r.status }
func (r *Request) Acceptance() Acceptance               { return r.acceptance }
func (r *Request) AssignedDonation() *kernel.UUID       { return r.assignedDonation }
func (r *Request) AcceptedAt() *time.Time               { return r.acceptedAt }
func (r *Request) CancelledAt() *time.Time              { return r.cancelledAt }
func (r *Request) CancellationReason() string           { return r.cancellationReason }
func (r *Request) CreatedAt() time.Time                 { return r.createdAt }
func (r *Request) UpdatedAt() time.Time                 { return r.updatedAt }

func (r *Request) IsOwnedBy(requesterID kernel.UUID) bool {
	return r.requesterID.IsEqual(requesterID)
}

// IsExpired reports now > expiresAt regardless of status.
func (r *Request) IsExpired(now time.Time) bool {
	return now.After(r.expiresAt)
}

// TimeRemaining is expiresAt - now, floored at zero.
func (r *Request) TimeRemaining(now time.Time) time.Duration {
	if left := r.expiresAt.Sub(now); left > 0 {
		return left
	}
	return 0
}

// IsOverdue reports a pending request whose expiry has passed but which has
// not been flipped to expired yet.
func (r *Request) IsOverdue(now time.Time) bool {
	return r.status == Pending && r.IsExpired(now)
}

// EnsureAcceptable requires a pending, unexpired request. An overdue request
// yields an Expired error; the caller persists Expire before returning it.
func (r *Request) EnsureAcceptable(action string, now time.Time) error {
	if r.status != Pending {
		return errs.NewConflictError(entityName, r.id, action, r.status.String())
	}
	if r.IsExpired(now) {
		return errs.NewExpiredError(entityName, r.id, r.expiresAt)
	}
	return nil
}

// Expire flips an overdue pending request to expired.
func (r *Request) Expire(now time.Time) error {
	if !r.IsOverdue(now) {
		return errs.NewConflictError(entityName, r.id, "expire", r.status.String())
	}
	r.status = Expired
	r.updatedAt = now
	return nil
}

// AcceptByDonor records a donor claiming the request with one of their donations.
func (r *Request) AcceptByDonor(donorID, donationID kernel.UUID, now time.Time) error {
	if err := errors.Join(donorID.Validate(), donationID.Validate()); err != nil {
		return err
	}
	if err := r.EnsureAcceptable("accept", now); err != nil {
		return err
	}

	r.status = AcceptedByDonor
	r.acceptance = AcceptedByDonorID(donorID)
	r.assignedDonation = &donationID
	r.stampAccepted(now)
	return nil
}

// AcceptByNGO records an NGO claiming the request. donationID is set when the
// acceptance comes from creating a delivery.
func (r *Request) AcceptByNGO(ngoID kernel.UUID, donationID *kernel.UUID, now time.Time) error {
	if err := ngoID.Validate(); err != nil {
		return err
	}
	if err := r.EnsureAcceptable("accept", now); err != nil {
		return err
	}

	r.status = AcceptedByNGO
	r.acceptance = AcceptedByNGOID(ngoID)
	r.assignedDonation = donationID
	r.stampAccepted(now)
	return nil
}

// Extend pushes expiresAt back by minutes (1..30) while the request is still pending.
func (r *Request) Extend(actorID kernel.UUID, minutes int, now time.Time) error {
	if !r.IsOwnedBy(actorID) {
		return errs.NewForbiddenError(entityName, r.id, actorID, "extend")
	}
	if minutes < MinExtensionMinutes || minutes > MaxExtensionMinutes {
		return errs.NewValueIsOutOfRangeError("minutes", minutes, MinExtensionMinutes, MaxExtensionMinutes)
	}
	if err := r.EnsureAcceptable("extend", now); err != nil {
		return err
	}

	r.expiresAt = r.expiresAt.Add(time.Duration(minutes) * time.Minute)
	r.updatedAt = now
	return nil
}

// Cancel is allowed to the owner from any non-terminal state.
func (r *Request) Cancel(actorID kernel.UUID, reason string, now time.Time) error {
	if !r.IsOwnedBy(actorID) {
		return errs.NewForbiddenError(entityName, r.id, actorID, "cancel")
	}
	if r.status.IsTerminal() {
		return errs.NewConflictError(entityName, r.id, "cancel", r.status.String())
	}

	r.status = Cancelled
	r.cancelledAt = &now
	r.cancellationReason = strings.TrimSpace(reason)
	r.updatedAt = now
	return nil
}

// EnsureDeletable allows the owner to hard delete a pending request.
func (r *Request) EnsureDeletable(actorID kernel.UUID) error {
	if !r.IsOwnedBy(actorID) {
		return errs.NewForbiddenError(entityName, r.id, actorID, "delete")
	}
	if r.status != Pending {
		return errs.NewConflictError(entityName, r.id, "delete", r.status.String())
	}
	return nil
}

func (r *Request) MarkInTransit(now time.Time) error {
	return r.transition("start transit of", InTransit, now, AcceptedByDonor, AcceptedByNGO)
}

func (r *Request) MarkDelivered(now time.Time) error {
	return r.transition("deliver", Delivered, now, InTransit)
}

// Release reopens a request whose delivery was cancelled. The acceptance and
// donation link are cleared; acceptedAt is kept as history.
func (r *Request) Release(now time.Time) error {
	if err := r.transition("release", Pending, now, AcceptedByDonor, AcceptedByNGO, InTransit); err != nil {
		return err
	}
	r.acceptance = NoAcceptance()
	r.assignedDonation = nil
	return nil
}

func (r *Request) stampAccepted(now time.Time) {
	if r.acceptedAt == nil {
		r.acceptedAt = &now
	}
	r.updatedAt = now
}

func (r *Request) transition(action string, to Status, now time.Time, from ...Status) error {
	if !r.status.in(from...) {
		return errs.NewConflictError(entityName, r.id, action, r.status.String())
	}
	r.status = to
	r.updatedAt = now
	return nil
}

func (r *Request) setDetails(details Details) error {
	details.Title = strings.TrimSpace(details.Title)
	if details.Title == "" {
		return errs.NewValueIsRequiredError("request.title")
	}
	if err := details.Requirements.Quantity.Validate(); err != nil {
		return err
	}
	r.details = details
	return nil
}
