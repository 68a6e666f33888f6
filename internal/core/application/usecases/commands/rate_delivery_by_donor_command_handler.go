package commands

import (
	"context"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
)

// RateDeliveryByDonorCommandHandler stores the donor's rating of the NGO
// once. It credits no points.
type RateDeliveryByDonorCommandHandler struct {
	deps Dependencies
}

func NewRateDeliveryByDonorCommandHandler(deps Dependencies) RateDeliveryByDonorCommandHandler {
	return RateDeliveryByDonorCommandHandler{deps: deps}
}

func (h RateDeliveryByDonorCommandHandler) Handle(ctx context.Context, cmd RateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.deps.Clock.Now()

	uow := h.deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	donor, err := loadActor(ctx, uow.UserRepository(), cmd.ActorID(), kernel.RoleDonor, "rate delivery")
	if err != nil {
		return err
	}

	deliveries := uow.DeliveryRepository()
	d, err := deliveries.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	rating, err := d.RateByDonor(donor.ID(), cmd.NGORating(), cmd.Feedback(), now)
	if err != nil {
		return err
	}
	if err = deliveries.SaveRating(ctx, d.ID(), ports.RatingFromDonor, rating); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.deps.notify(ctx, now, notification(ports.EventRated, d.Parties().NGOID, map[string]any{
		"deliveryId": d.ID().String(),
		"rating":     rating.NGORating,
		"from":       string(ports.RatingFromDonor),
	}))
	return nil
}
