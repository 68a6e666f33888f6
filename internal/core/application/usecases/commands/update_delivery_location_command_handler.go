package commands

import (
	"context"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
)

// UpdateDeliveryLocationCommandHandler overwrites the NGO's live position in
// any status and pushes it to the requester. No history is kept.
type UpdateDeliveryLocationCommandHandler struct {
	deps Dependencies
}

func NewUpdateDeliveryLocationCommandHandler(deps Dependencies) UpdateDeliveryLocationCommandHandler {
	return UpdateDeliveryLocationCommandHandler{deps: deps}
}

func (h UpdateDeliveryLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryLocationCommand) error {
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

	ngo, err := loadActor(ctx, uow.UserRepository(), cmd.NGOID(), kernel.RoleNGO, "update location")
	if err != nil {
		return err
	}

	deliveries := uow.DeliveryRepository()
	d, err := deliveries.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if err = d.UpdateLocation(ngo.ID(), cmd.Location(), now); err != nil {
		return err
	}
	if err = deliveries.UpdateLocation(ctx, d.ID(), cmd.Location(), now); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	loc := cmd.Location()
	h.deps.notify(ctx, now, notification(ports.EventDeliveryLocation, d.Parties().RequesterID, map[string]any{
		"deliveryId": d.ID().String(),
		"latitude":   loc.Latitude(),
		"longitude":  loc.Longitude(),
		"status":     d.Status().String(),
	}))
	return nil
}
