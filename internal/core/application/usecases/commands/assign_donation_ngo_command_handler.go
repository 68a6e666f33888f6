package commands

import (
	"context"
	"errors"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/ports"
	"foodshare/internal/pkg/errs"
)

// AssignDonationNGOCommandHandler lets the owning donor, or an admin, assign
// an active donation to an approved and active NGO.
type AssignDonationNGOCommandHandler struct {
	deps Dependencies
}

func NewAssignDonationNGOCommandHandler(deps Dependencies) AssignDonationNGOCommandHandler {
	return AssignDonationNGOCommandHandler{deps: deps}
}

func (h AssignDonationNGOCommandHandler) Handle(ctx context.Context, cmd AssignDonationNGOCommand) error {
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
	actor, err := loadActive(ctx, users, cmd.ActorID(), "assign donation")
	if err != nil {
		return err
	}

	donations := uow.DonationRepository()
	don, err := donations.Get(ctx, cmd.DonationID())
	if err != nil {
		return err
	}
	if err = ensureOwnerOrAdmin(don, actor, "assign"); err != nil {
		return err
	}
	if err = don.EnsureClaimable("assign to ngo", now); err != nil {
		if errors.Is(err, errs.ErrExpired) {
			return h.deps.commitExpiry(ctx, uow, now, nil, don, err)
		}
		return err
	}

	ngo, err := users.Get(ctx, cmd.NGOID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewInvalidReferenceError("ngoId", cmd.NGOID().String(), "user does not exist")
		}
		return err
	}
	if err = ngo.EnsureOperatingNGO(); err != nil {
		return err
	}

	if err = don.AssignToNGO(ngo.ID(), nil, now); err != nil {
		return err
	}
	if err = donations.Update(ctx, don, donation.Active); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.deps.notify(ctx, now, notification(ports.EventDonationAssigned, ngo.ID(), map[string]any{
		"donationId": don.ID().String(),
		"donorId":    don.DonorID().String(),
	}))
	return nil
}

func ensureOwnerOrAdmin(don *donation.Donation, actor *user.User, action string) error {
	if actorOf(actor).IsAdmin() || don.IsOwnedBy(actor.ID()) {
		return nil
	}
	return errs.NewForbiddenError("donation", don.ID(), actor.ID(), action)
}
