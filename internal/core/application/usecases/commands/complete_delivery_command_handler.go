package commands

import (
	"context"

	"foodshare/internal/core/domain/model/delivery"
	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/ports"
)

// CompleteDeliveryCommandHandler records the drop-off and freezes the points
// the NGO will receive once the requester confirms receipt. Donation and
// request both become delivered unless their owner cancelled them meanwhile.
type CompleteDeliveryCommandHandler struct {
	deps Dependencies
}

func NewCompleteDeliveryCommandHandler(deps Dependencies) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{deps: deps}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd HandoverCommand) error {
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

	ngo, err := loadActor(ctx, uow.UserRepository(), cmd.NGOID(), kernel.RoleNGO, "complete delivery")
	if err != nil {
		return err
	}

	deliveries := uow.DeliveryRepository()
	d, err := deliveries.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if err = d.CompleteDelivery(ngo.ID(), cmd.Condition(), cmd.Notes(), cmd.Photos(), now); err != nil {
		return err
	}
	if err = deliveries.Update(ctx, d, delivery.DeliveryInProgress); err != nil {
		return err
	}

	err = cascade{
		donation: func(don *donation.Donation) error { return don.MarkDelivered(now) },
		request:  func(req *request.Request) error { return req.MarkDelivered(now) },
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
		"deliveryId":   d.ID().String(),
		"condition":    d.ConditionAtDelivery().String(),
		"pointsEarned": d.PointsEarned(),
	}
	h.deps.notify(ctx, now,
		notification(ports.EventDeliveryCompleted, parties.RequesterID, payload),
		notification(ports.EventDeliveryCompleted, parties.DonorID, payload),
	)
	return nil
}
