package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand binds a donation and a request to the acting NGO.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	ngoID      kernel.UUID
	donationID kernel.UUID
	requestID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateDeliveryCommand(deliveryID, ngoID, donationID, requestID kernel.UUID) (CreateDeliveryCommand, error) {
	if err := errors.Join(
		deliveryID.Validate(),
		ngoID.Validate(),
		donationID.Validate(),
		requestID.Validate(),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return CreateDeliveryCommand{
		deliveryID: deliveryID,
		ngoID:      ngoID,
		donationID: donationID,
		requestID:  requestID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c CreateDeliveryCommand) NGOID() kernel.UUID      { return c.ngoID }
func (c CreateDeliveryCommand) DonationID() kernel.UUID { return c.donationID }
func (c CreateDeliveryCommand) RequestID() kernel.UUID  { return c.requestID }
