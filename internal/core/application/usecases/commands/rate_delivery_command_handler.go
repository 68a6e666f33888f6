package commands

import (
	"context"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/services"
	"foodshare/internal/core/ports"
)

// RateDeliveryCommandHandler stores the requester's rating once and credits
// the donor, the NGO and the requester. A second rating is a Conflict, and
// the stored-only-if-empty write keeps concurrent ratings from double
// crediting.
type RateDeliveryCommandHandler struct {
	deps Dependencies
}

func NewRateDeliveryCommandHandler(deps Dependencies) RateDeliveryCommandHandler {
	return RateDeliveryCommandHandler{deps: deps}
}

func (h RateDeliveryCommandHandler) Handle(ctx context.Context, cmd RateDeliveryCommand) error {
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

	users := uow.UserRepository()
	requester, err := loadActor(ctx, users, cmd.ActorID(), kernel.RoleRequester, "rate delivery")
	if err != nil {
		return err
	}

	deliveries := uow.DeliveryRepository()
	d, err := deliveries.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	rating, err := d.RateByRequester(requester.ID(), cmd.DonorRating(), cmd.NGORating(), cmd.Feedback(), now)
	if err != nil {
		return err
	}
	if err = deliveries.SaveRating(ctx, d.ID(), ports.RatingFromRequester, rating); err != nil {
		return err
	}
	for _, credit := range services.RatingAwards(d.Parties(), rating) {
		if err = users.AddPoints(ctx, credit.UserID, credit.Points); err != nil {
			return err
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	parties := d.Parties()
	h.deps.notify(ctx, now,
		notification(ports.EventRated, parties.DonorID, map[string]any{
			"deliveryId": d.ID().String(),
			"rating":     rating.DonorRating,
			"from":       string(ports.RatingFromRequester),
		}),
		notification(ports.EventRated, parties.NGOID, map[string]any{
			"deliveryId": d.ID().String(),
			"rating":     rating.NGORating,
			"from":       string(ports.RatingFromRequester),
		}),
	)
	return nil
}
