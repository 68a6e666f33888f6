package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrCancelDonationCommandIsNotConstructed = errors.New(
	"CancelDonationCommand must be created via NewCancelDonationCommand constructor",
)

type CancelDonationCommand struct { //nolint:recvcheck //using for validation
	donationID kernel.UUID
	actorID    kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewCancelDonationCommand(donationID, actorID kernel.UUID, reason string) (CancelDonationCommand, error) {
	if err := errors.Join(donationID.Validate(), actorID.Validate()); err != nil {
		return CancelDonationCommand{}, err
	}
	return CancelDonationCommand{
		donationID: donationID,
		actorID:    actorID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDonationCommand) Validate() error {
	return c.guard.Validate(ErrCancelDonationCommandIsNotConstructed)
}

func (c CancelDonationCommand) DonationID() kernel.UUID { return c.donationID }
func (c CancelDonationCommand) ActorID() kernel.UUID    { return c.actorID }
func (c CancelDonationCommand) Reason() string          { return c.reason }
