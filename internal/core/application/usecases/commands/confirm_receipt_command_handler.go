package commands

import (
	"context"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/ports"
)

// ConfirmReceiptResult reports whether this call credited the NGO.
type ConfirmReceiptResult struct {
	Awarded bool
	Points  int
}

// ConfirmReceiptCommandHandler lets the requester confirm a delivered
// delivery. The first confirmation flips the pointsAwarded latch and credits
// the frozen pointsEarned to the NGO in the same unit of work; every later
// call, concurrent or not, succeeds without crediting again.
type ConfirmReceiptCommandHandler struct {
	deps Dependencies
}

func NewConfirmReceiptCommandHandler(deps Dependencies) ConfirmReceiptCommandHandler {
	return ConfirmReceiptCommandHandler{deps: deps}
}

func (h ConfirmReceiptCommandHandler) Handle(
	ctx context.Context, cmd ConfirmReceiptCommand,
) (ConfirmReceiptResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmReceiptResult{}, err
	}
	now := h.deps.Clock.Now()

	uow := h.deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmReceiptResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requester, err := loadActor(ctx, uow.UserRepository(), cmd.RequesterID(), kernel.RoleRequester, "confirm receipt")
	if err != nil {
		return ConfirmReceiptResult{}, err
	}

	deliveries := uow.DeliveryRepository()
	d, err := deliveries.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return ConfirmReceiptResult{}, err
	}
	if err = d.ConfirmReceipt(requester.ID()); err != nil {
		return ConfirmReceiptResult{}, err
	}
	if err = deliveries.MarkRequesterConfirmed(ctx, d.ID()); err != nil {
		return ConfirmReceiptResult{}, err
	}

	var result ConfirmReceiptResult
	if d.AwardPoints() {
		result.Awarded, err = deliveries.LatchPointsAwarded(ctx, d.ID())
		if err != nil {
			return ConfirmReceiptResult{}, err
		}
	}
	if result.Awarded {
		result.Points = d.PointsEarned()
		if err = uow.UserRepository().AddPoints(ctx, d.Parties().NGOID, result.Points); err != nil {
			return ConfirmReceiptResult{}, err
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return ConfirmReceiptResult{}, err
	}

	if result.Awarded {
		h.deps.notify(ctx, now, notification(ports.EventReceiptConfirmed, d.Parties().NGOID, map[string]any{
			"deliveryId": d.ID().String(),
			"points":     result.Points,
		}))
	}
	return result, nil
}
