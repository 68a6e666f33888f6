package commands

import (
	"errors"
	"time"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"
	"foodshare/internal/pkg/guard"
)

var ErrCreateDonationCommandIsNotConstructed = errors.New(
	"CreateDonationCommand must be created via NewCreateDonationCommand constructor",
)

// CreateDonationCommand offers surplus food on behalf of a donor. Whether
// expiryTime lies in the future is decided by the handler against its clock.
type CreateDonationCommand struct { //nolint:recvcheck //using for validation
	donationID     kernel.UUID
	donorID        kernel.UUID
	details        donation.Details
	quantity       kernel.Quantity
	expiryTime     time.Time
	pickupLocation kernel.GeoLocation

	guard guard.ConstructorGuard
}

func NewCreateDonationCommand(
	donationID, donorID kernel.UUID,
	details donation.Details,
	quantity kernel.Quantity,
	expiryTime time.Time,
	pickupLocation kernel.GeoLocation,
) (CreateDonationCommand, error) {
	var expiryErr error
	if expiryTime.IsZero() {
		expiryErr = errs.NewValueIsRequiredError("expiryTime")
	}
	if err := errors.Join(
		donationID.Validate(),
		donorID.Validate(),
		quantity.Validate(),
		pickupLocation.Validate(),
		expiryErr,
	); err != nil {
		return CreateDonationCommand{}, err
	}

	return CreateDonationCommand{
		donationID:     donationID,
		donorID:        donorID,
		details:        details,
		quantity:       quantity,
		expiryTime:     expiryTime,
		pickupLocation: pickupLocation,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDonationCommand) Validate() error {
	return c.guard.Validate(ErrCreateDonationCommandIsNotConstructed)
}

func (c CreateDonationCommand) DonationID() kernel.UUID            { return c.donationID }
func (c CreateDonationCommand) DonorID() kernel.UUID               { return c.donorID }
func (c CreateDonationCommand) Details() donation.Details          { return c.details }
func (c CreateDonationCommand) Quantity() kernel.Quantity          { return c.quantity }
func (c CreateDonationCommand) ExpiryTime() time.Time              { return c.expiryTime }
func (c CreateDonationCommand) PickupLocation() kernel.GeoLocation { return c.pickupLocation }
