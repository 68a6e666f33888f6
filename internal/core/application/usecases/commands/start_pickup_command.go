package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrStartPickupCommandIsNotConstructed = errors.New(
	"StartPickupCommand must be created via NewStartPickupCommand constructor",
)

type StartPickupCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	ngoID      kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartPickupCommand(deliveryID, ngoID kernel.UUID) (StartPickupCommand, error) {
	if err := errors.Join(deliveryID.Validate(), ngoID.Validate()); err != nil {
		return StartPickupCommand{}, err
	}
	return StartPickupCommand{deliveryID: deliveryID, ngoID: ngoID, guard: guard.NewConstructorGuard()}, nil
}

func (c StartPickupCommand) Validate() error {
	return c.guard.Validate(ErrStartPickupCommandIsNotConstructed)
}

func (c StartPickupCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c StartPickupCommand) NGOID() kernel.UUID      { return c.ngoID }
