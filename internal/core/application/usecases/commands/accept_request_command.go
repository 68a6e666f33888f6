package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrAcceptRequestCommandIsNotConstructed = errors.New(
	"AcceptRequestCommand must be created via NewAcceptRequestCommand constructor",
)

// AcceptRequestCommand claims a pending request. Donors must name one of
// their active donations; NGOs accept without one.
type AcceptRequestCommand struct { //nolint:recvcheck //using for validation
	requestID  kernel.UUID
	actorID    kernel.UUID
	donationID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptRequestCommand(requestID, actorID kernel.UUID, donationID *kernel.UUID) (AcceptRequestCommand, error) {
	var donationErr error
	if donationID != nil {
		donationErr = donationID.Validate()
	}
	if err := errors.Join(requestID.Validate(), actorID.Validate(), donationErr); err != nil {
		return AcceptRequestCommand{}, err
	}

	return AcceptRequestCommand{
		requestID:  requestID,
		actorID:    actorID,
		donationID: donationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptRequestCommand) Validate() error {
	return c.guard.Validate(ErrAcceptRequestCommandIsNotConstructed)
}

func (c AcceptRequestCommand) RequestID() kernel.UUID   { return c.requestID }
func (c AcceptRequestCommand) ActorID() kernel.UUID     { return c.actorID }
func (c AcceptRequestCommand) DonationID() *kernel.UUID { return c.donationID }
