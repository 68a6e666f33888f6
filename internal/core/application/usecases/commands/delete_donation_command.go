package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrDeleteDonationCommandIsNotConstructed = errors.New(
	"DeleteDonationCommand must be created via NewDeleteDonationCommand constructor",
)

type DeleteDonationCommand struct { //nolint:recvcheck //using for validation
	donationID kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteDonationCommand(donationID, actorID kernel.UUID) (DeleteDonationCommand, error) {
	if err := errors.Join(donationID.Validate(), actorID.Validate()); err != nil {
		return DeleteDonationCommand{}, err
	}
	return DeleteDonationCommand{donationID: donationID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteDonationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDonationCommandIsNotConstructed)
}

func (c DeleteDonationCommand) DonationID() kernel.UUID { return c.donationID }
func (c DeleteDonationCommand) ActorID() kernel.UUID    { return c.actorID }
