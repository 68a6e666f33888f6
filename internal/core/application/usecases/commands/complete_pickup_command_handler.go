package commands

import (
	"context"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/ports"
)

// CompletePickupCommandHandler records the pickup and moves the donation to
// picked_up and the request to in_transit in the same unit of work. A donation
// or request already cancelled by its owner is left as it is.
type CompletePickupCommandHandler struct {
	deps Dependencies
}

func NewCompletePickupCommandHandler(deps Dependencies) CompletePickupCommandHandler {
	return CompletePickupCommandHandler{deps: deps}
}

func (h CompletePickupCommandHandler) Handle(ctx context.Context, cmd HandoverCommand) error {
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

	ngo, err := loadActor(ctx, uow.UserRepository(), cmd.NGOID(), kernel.RoleNGO, "complete pickup")
	if err != nil {
		return err
	}

	deliveries := uow.DeliveryRepository()
	d, err := deliveries.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if err = d.CompletePickup(ngo.ID(), cmd.Condition(), cmd.Notes(), cmd.Photos(), now); err != nil {
		return err
	}
	if err = deliveries.Update(ctx, d, delivery.PickupInProgress); err != nil {
		return err
	}

	err = cascade{
		donation: func(don *donation.Donation) error { return don.MarkPickedUp(now) },
		request:  func(req *request.Request) error { return req.MarkInTransit(now) },
		lenient:  true,
		logger:   h.deps.logger(),
	}.apply(ctx, uow, d)
	if err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	parties := d.Parties()
	h.deps.notify(ctx, now,
		notification(ports.EventPickupCompleted, parties.DonorID, map[string]any{
			"deliveryId": d.ID().String(),
			"condition":  d.ConditionAtPickup().String(),
		}),
		notification(ports.EventDeliveryStarted, parties.RequesterID, map[string]any{
			"deliveryId":          d.ID().String(),
			"estimatedCompletion": d.EstimatedCompletion(),
		}),
	)
	return nil
}
