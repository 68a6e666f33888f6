package commands

import (
	"context"
	"errors"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/domain/services"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"
)

// CreateDeliveryCommandHandler matches a donation and a request to an NGO.
//
// The donation flip, the request flip, the delivery insert and the NGO's
// delivery counter are written in one unit of work. Both flips are
// conditional, so when two NGOs race for the same donation or request only
// one of them commits and the other gets a Conflict.
type CreateDeliveryCommandHandler struct {
	deps    Dependencies
	matcher services.DeliveryMatcher
}

func NewCreateDeliveryCommandHandler(deps Dependencies) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{deps: deps, matcher: services.NewDeliveryMatcher()}
}

func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
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
	ngo, err := users.Get(ctx, cmd.NGOID())
	if err != nil {
		return err
	}
	if ngo.Role() != kernel.RoleNGO {
		return errs.NewForbiddenError("delivery", cmd.DeliveryID(), ngo.ID(), "create")
	}

	donations := uow.DonationRepository()
	don, err := donations.Get(ctx, cmd.DonationID())
	if err != nil {
		return err
	}
	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	d, err := h.matcher.Match(cmd.DeliveryID(), ngo, don, req, now)
	if err != nil {
		if errors.Is(err, errs.ErrExpired) {
			return h.deps.commitExpiry(ctx, uow, now, req, don, err)
		}
		return err
	}

	if err = donations.Update(ctx, don, donation.Active); err != nil {
		return err
	}
	if err = requests.Update(ctx, req, request.Pending); err != nil {
		return err
	}
	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
		return err
	}
	if err = users.AdjustCounter(ctx, ngo.ID(), user.TotalDeliveries, 1); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.deps.notify(ctx, now,
		notification(ports.EventRequestAccepted, req.RequesterID(), map[string]any{
			"requestId":  req.ID().String(),
			"acceptedBy": req.Acceptance().Kind().String(),
			"acceptorId": ngo.ID().String(),
			"deliveryId": d.ID().String(),
		}),
		notification(ports.EventDonationAssigned, don.DonorID(), map[string]any{
			"donationId": don.ID().String(),
			"ngoId":      ngo.ID().String(),
			"deliveryId": d.ID().String(),
		}),
	)
	return nil
}
