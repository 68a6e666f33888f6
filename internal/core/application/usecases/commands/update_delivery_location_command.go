package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrUpdateDeliveryLocationCommandIsNotConstructed = errors.New(
	"UpdateDeliveryLocationCommand must be created via NewUpdateDeliveryLocationCommand constructor",
)

type UpdateDeliveryLocationCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	ngoID      kernel.UUID
	location   kernel.GeoLocation

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryLocationCommand(
	deliveryID, ngoID kernel.UUID, location kernel.GeoLocation,
) (UpdateDeliveryLocationCommand, error) {
	if err := errors.Join(deliveryID.Validate(), ngoID.Validate(), location.Validate()); err != nil {
		return UpdateDeliveryLocationCommand{}, err
	}
	return UpdateDeliveryLocationCommand{
		deliveryID: deliveryID,
		ngoID:      ngoID,
		location:   location,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryLocationCommandIsNotConstructed)
}

func (c UpdateDeliveryLocationCommand) DeliveryID() kernel.UUID      { return c.deliveryID }
func (c UpdateDeliveryLocationCommand) NGOID() kernel.UUID           { return c.ngoID }
func (c UpdateDeliveryLocationCommand) Location() kernel.GeoLocation { return c.location }
