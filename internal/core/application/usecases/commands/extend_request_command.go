package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/pkg/errs"
	"foodshare/internal/pkg/guard"
)

var ErrExtendRequestCommandIsNotConstructed = errors.New(
	"ExtendRequestCommand must be created via NewExtendRequestCommand constructor",
)

// ExtendRequestCommand pushes a pending request's expiry back. A zero
// minutes value means request.DefaultExtensionMinutes.
type ExtendRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actorID   kernel.UUID
	minutes   int

	guard guard.ConstructorGuard
}

func NewExtendRequestCommand(requestID, actorID kernel.UUID, minutes int) (ExtendRequestCommand, error) {
	if minutes == 0 {
		minutes = request.DefaultExtensionMinutes
	}

	var rangeErr error
	if minutes < request.MinExtensionMinutes || minutes > request.MaxExtensionMinutes {
		rangeErr = errs.NewValueIsOutOfRangeError("minutes", minutes,
			request.MinExtensionMinutes, request.MaxExtensionMinutes)
	}
	if err := errors.Join(requestID.Validate(), actorID.Validate(), rangeErr); err != nil {
		return ExtendRequestCommand{}, err
	}

	return ExtendRequestCommand{
		requestID: requestID,
		actorID:   actorID,
		minutes:   minutes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExtendRequestCommand) Validate() error {
	return c.guard.Validate(ErrExtendRequestCommandIsNotConstructed)
}

func (c ExtendRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c ExtendRequestCommand) ActorID() kernel.UUID   { return c.actorID }
func (c ExtendRequestCommand) Minutes() int           { return c.minutes }
