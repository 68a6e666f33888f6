package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrRateDeliveryCommandIsNotConstructed = errors.New(
	"RateDeliveryCommand must be created via NewRateDeliveryCommand constructor",
)

// RateDeliveryCommand carries a rating of a delivered delivery. DonorRating
// is only meaningful when the requester rates.
type RateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	actorID     kernel.UUID
	donorRating int
	ngoRating   int
	feedback    string

	guard guard.ConstructorGuard
}

func NewRateDeliveryCommand(
	deliveryID, actorID kernel.UUID, donorRating, ngoRating int, feedback string,
) (RateDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), actorID.Validate()); err != nil {
		return RateDeliveryCommand{}, err
	}
	return RateDeliveryCommand{
		deliveryID:  deliveryID,
		actorID:     actorID,
		donorRating: donorRating,
		ngoRating:   ngoRating,
		feedback:    feedback,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRateDeliveryCommandIsNotConstructed)
}

func (c RateDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c RateDeliveryCommand) ActorID() kernel.UUID    { return c.actorID }
func (c RateDeliveryCommand) DonorRating() int        { return c.donorRating }
func (c RateDeliveryCommand) NGORating() int          { return c.ngoRating }
func (c RateDeliveryCommand) Feedback() string        { return c.feedback }
