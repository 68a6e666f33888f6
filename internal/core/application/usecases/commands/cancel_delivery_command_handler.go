package commands

import (
	"context"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/ports"
)

// CancelDeliveryCommandHandler cancels a non-terminal delivery and, in the
// same unit of work, returns its donation to the active pool and reopens its
// request. A donation or request that has meanwhile moved to a state that
// cannot be reset (for example cancelled by its owner) is left as it is.
type CancelDeliveryCommandHandler struct {
	deps Dependencies
}

func NewCancelDeliveryCommandHandler(deps Dependencies) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{deps: deps}
}

func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	actor, err := loadActive(ctx, uow.UserRepository(), cmd.ActorID(), "cancel delivery")
	if err != nil {
		return err
	}

	deliveries := uow.DeliveryRepository()
	d, err := deliveries.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	previous := d.Status()
	if err = d.Cancel(actorOf(actor), cmd.Reason(), now); err != nil {
		return err
	}
	if err = deliveries.Update(ctx, d, previous); err != nil {
		return err
	}

	err = cascade{
		donation: func(don *donation.Donation) error { return don.Reset(now) },
		request:  func(req *request.Request) error { return req.Release(now) },
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
	payload := map[string]any{
		"deliveryId":  d.ID().String(),
		"cancelledBy": actor.ID().String(),
		"reason":      d.CancellationReason(),
	}
	h.deps.notify(ctx, now,
		notification(ports.EventDeliveryCancelled, parties.DonorID, payload),
		notification(ports.EventDeliveryCancelled, parties.RequesterID, payload),
	)
	return nil
}
