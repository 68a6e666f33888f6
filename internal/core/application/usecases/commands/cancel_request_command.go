package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrCancelRequestCommandIsNotConstructed = errors.New(
	"CancelRequestCommand must be created via NewCancelRequestCommand constructor",
)

type CancelRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actorID   kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

func NewCancelRequestCommand(requestID, actorID kernel.UUID, reason string) (CancelRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), actorID.Validate()); err != nil {
		return CancelRequestCommand{}, err
	}
	return CancelRequestCommand{
		requestID: requestID,
		actorID:   actorID,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelRequestCommandIsNotConstructed)
}

func (c CancelRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c CancelRequestCommand) ActorID() kernel.UUID   { return c.actorID }
func (c CancelRequestCommand) Reason() string         { return c.reason }
