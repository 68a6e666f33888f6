package commands

import (
	"context"
	"errors"
	"time"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"
)

// AcceptRequestCommandHandler lets a donor or an NGO claim a pending request.
//
// Checks run in this order: the request exists, is pending, and has not
// expired (an overdue request is flipped to expired and committed before
// Expired is returned). Then the acceptor is checked: a donor needs an active,
// unexpired donation of their own, an NGO must be approved and active.
// The status flip is conditional on the stored status still being pending,
// so of two racing acceptances exactly one wins.
type AcceptRequestCommandHandler struct {
	deps Dependencies
}

func NewAcceptRequestCommandHandler(deps Dependencies) AcceptRequestCommandHandler {
	return AcceptRequestCommandHandler{deps: deps}
}

func (h AcceptRequestCommandHandler) Handle(ctx context.Context, cmd AcceptRequestCommand) error {
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

	actor, err := uow.UserRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}
	if err = req.EnsureAcceptable("accept", now); err != nil {
		if errors.Is(err, errs.ErrExpired) {
			return h.deps.commitExpiry(ctx, uow, now, req, nil, err)
		}
		return err
	}

	switch actor.Role() {
	case kernel.RoleDonor:
		err = h.acceptByDonor(ctx, uow, actor, req, cmd.DonationID(), now)
	case kernel.RoleNGO:
		err = h.acceptByNGO(actor, req, now)
	default:
		err = errs.NewForbiddenError("request", req.ID(), actor.ID(), "accept")
	}
	if err != nil {
		return err
	}

	if err = requests.Update(ctx, req, request.Pending); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.deps.notify(ctx, now, notification(ports.EventRequestAccepted, req.RequesterID(), map[string]any{
		"requestId":  req.ID().String(),
		"acceptedBy": req.Acceptance().Kind().String(),
		"acceptorId": actor.ID().String(),
	}))
	return nil
}

func (h AcceptRequestCommandHandler) acceptByDonor(
	ctx context.Context,
	uow ports.UnitOfWork,
	donor *user.User,
	req *request.Request,
	donationID *kernel.UUID,
	now time.Time,
) error {
	if err := donor.EnsureCanAct(kernel.RoleDonor, "accept request"); err != nil {
		return err
	}
	if donationID == nil {
		return errs.NewInvalidReferenceError("donationId", nil, "a donor must accept with a donation")
	}

	donations := uow.DonationRepository()
	don, err := donations.Get(ctx, *donationID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewInvalidReferenceError("donationId", donationID.String(), "donation does not exist")
		}
		return err
	}
	if !don.IsOwnedBy(donor.ID()) {
		return errs.NewInvalidReferenceError("donationId", don.ID().String(), "donation belongs to another donor")
	}
	if err = don.EnsureClaimable("assign to requester", now); err != nil {
		return errs.NewInvalidReferenceError("donationId", don.ID().String(), err.Error())
	}

	if err = req.AcceptByDonor(donor.ID(), don.ID(), now); err != nil {
		return err
	}
	if err = don.AssignToRequester(req.RequesterID(), now); err != nil {
		return err
	}
	return donations.Update(ctx, don, donation.Active)
}

func (h AcceptRequestCommandHandler) acceptByNGO(ngo *user.User, req *request.Request, now time.Time) error {
	if err := ngo.EnsureOperatingNGO(); err != nil {
		return err
	}
	return req.AcceptByNGO(ngo.ID(), nil, now)
}
