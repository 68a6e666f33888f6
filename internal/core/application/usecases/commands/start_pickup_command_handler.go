package commands

import (
	"context"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
)

type StartPickupCommandHandler struct {
	deps Dependencies
}

func NewStartPickupCommandHandler(deps Dependencies) StartPickupCommandHandler {
	return StartPickupCommandHandler{deps: deps}
}

func (h StartPickupCommandHandler) Handle(ctx context.Context, cmd StartPickupCommand) error {
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

	ngo, err := loadActor(ctx, uow.UserRepository(), cmd.NGOID(), kernel.RoleNGO, "start pickup")
	if err != nil {
		return err
	}

	deliveries := uow.DeliveryRepository()
	d, err := deliveries.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if err = d.StartPickup(ngo.ID()); err != nil {
		return err
	}
	if err = deliveries.Update(ctx, d, delivery.Assigned); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.deps.notify(ctx, now, notification(ports.EventPickupStarted, d.Parties().DonorID, map[string]any{
		"deliveryId": d.ID().String(),
		"ngoId":      ngo.ID().String(),
	}))
	return nil
}
