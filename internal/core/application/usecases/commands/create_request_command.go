package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand opens a new request on behalf of a requester.
//
// Example:
//
//	cmd, err := NewCreateRequestCommand(kernel.NewUUID(), requesterID, details, request.High, location)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID        kernel.UUID
	requesterID      kernel.UUID
	details          request.Details
	urgency          request.Urgency
	deliveryLocation kernel.GeoLocation

	guard guard.ConstructorGuard
}

func NewCreateRequestCommand(
	requestID, requesterID kernel.UUID,
	details request.Details,
	urgency request.Urgency,
	deliveryLocation kernel.GeoLocation,
) (CreateRequestCommand, error) {
	if err := errors.Join(
		requestID.Validate(),
		requesterID.Validate(),
		urgency.Validate(),
		deliveryLocation.Validate(),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return CreateRequestCommand{
		requestID:        requestID,
		requesterID:      requesterID,
		details:          details,
		urgency:          urgency,
		deliveryLocation: deliveryLocation,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) RequestID() kernel.UUID               { return c.requestID }
func (c CreateRequestCommand) RequesterID() kernel.UUID             { return c.requesterID }
func (c CreateRequestCommand) Details() request.Details             { return c.details }
func (c CreateRequestCommand) Urgency() request.Urgency             { return c.urgency }
func (c CreateRequestCommand) DeliveryLocation() kernel.GeoLocation { return c.deliveryLocation }
