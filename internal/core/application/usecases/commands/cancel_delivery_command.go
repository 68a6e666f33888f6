package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewCancelDeliveryCommand(deliveryID, actorID kernel.UUID, reason string) (CancelDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), actorID.Validate()); err != nil {
		return CancelDeliveryCommand{}, err
	}
	return CancelDeliveryCommand{
		deliveryID: deliveryID,
		actorID:    actorID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

func (c CancelDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c CancelDeliveryCommand) ActorID() kernel.UUID    { return c.actorID }
func (c CancelDeliveryCommand) Reason() string          { return c.reason }
