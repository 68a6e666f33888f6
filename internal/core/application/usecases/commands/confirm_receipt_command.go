package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrConfirmReceiptCommandIsNotConstructed = errors.New(
	"ConfirmReceiptCommand must be created via NewConfirmReceiptCommand constructor",
)

type ConfirmReceiptCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmReceiptCommand(deliveryID, requesterID kernel.UUID) (ConfirmReceiptCommand, error) {
	if err := errors.Join(deliveryID.Validate(), requesterID.Validate()); err != nil {
		return ConfirmReceiptCommand{}, err
	}
	return ConfirmReceiptCommand{
		deliveryID:  deliveryID,
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmReceiptCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceiptCommandIsNotConstructed)
}

func (c ConfirmReceiptCommand) DeliveryID() kernel.UUID  { return c.deliveryID }
func (c ConfirmReceiptCommand) RequesterID() kernel.UUID { return c.requesterID }
