package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrAssignDonationNGOCommandIsNotConstructed = errors.New(
	"AssignDonationNGOCommand must be created via NewAssignDonationNGOCommand constructor",
)

// AssignDonationNGOCommand hands an active donation to an NGO.
type AssignDonationNGOCommand struct { //nolint:recvcheck //using for validation
	donationID kernel.UUID
	actorID    kernel.UUID
	ngoID      kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDonationNGOCommand(donationID, actorID, ngoID kernel.UUID) (AssignDonationNGOCommand, error) {
	if err := errors.Join(donationID.Validate(), actorID.Validate(), ngoID.Validate()); err != nil {
		return AssignDonationNGOCommand{}, err
	}
	return AssignDonationNGOCommand{
		donationID: donationID,
		actorID:    actorID,
		ngoID:      ngoID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDonationNGOCommand) Validate() error {
	return c.guard.Validate(ErrAssignDonationNGOCommandIsNotConstructed)
}

func (c AssignDonationNGOCommand) DonationID() kernel.UUID { return c.donationID }
func (c AssignDonationNGOCommand) ActorID() kernel.UUID    { return c.actorID }
func (c AssignDonationNGOCommand) NGOID() kernel.UUID      { return c.ngoID }
