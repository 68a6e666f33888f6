package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrHandoverCommandIsNotConstructed = errors.New(
	"HandoverCommand must be created via NewHandoverCommand constructor",
)

// HandoverCommand records a physical handover of the food: at pickup from the
// donor or at drop-off to the requester.
type HandoverCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	ngoID      kernel.UUID
	condition  delivery.FoodCondition
	notes      string
	photos     []string

	guard guard.ConstructorGuard
}

func NewHandoverCommand(
	deliveryID, ngoID kernel.UUID,
	condition delivery.FoodCondition,
	notes string,
	photos []string,
) (HandoverCommand, error) {
	if err := errors.Join(deliveryID.Validate(), ngoID.Validate(), condition.Validate()); err != nil {
		return HandoverCommand{}, err
	}

	return HandoverCommand{
		deliveryID: deliveryID,
		ngoID:      ngoID,
		condition:  condition,
		notes:      notes,
		photos:     append([]string(nil), photos...),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c HandoverCommand) Validate() error {
	return c.guard.Validate(ErrHandoverCommandIsNotConstructed)
}

func (c HandoverCommand) DeliveryID() kernel.UUID           { return c.deliveryID }
func (c HandoverCommand) NGOID() kernel.UUID                { return c.ngoID }
func (c HandoverCommand) Condition() delivery.FoodCondition { return c.condition }
func (c HandoverCommand) Notes() string                     { return c.notes }
func (c HandoverCommand) Photos() []string                  { return append([]string(nil), c.photos...) }
