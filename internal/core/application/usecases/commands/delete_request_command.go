package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrDeleteRequestCommandIsNotConstructed = errors.New(
	"DeleteRequestCommand must be created via NewDeleteRequestCommand constructor",
)

type DeleteRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteRequestCommand(requestID, actorID kernel.UUID) (DeleteRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), actorID.Validate()); err != nil {
		return DeleteRequestCommand{}, err
	}
	return DeleteRequestCommand{requestID: requestID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteRequestCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRequestCommandIsNotConstructed)
}

func (c DeleteRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c DeleteRequestCommand) ActorID() kernel.UUID   { return c.actorID }
