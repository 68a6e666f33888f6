package commands

import (
	"context"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/user"
)

// DeleteDonationCommandHandler hard deletes an active donation and decrements
// the donor's totalDonations, never below zero.
type DeleteDonationCommandHandler struct {
	deps Dependencies
}

func NewDeleteDonationCommandHandler(deps Dependencies) DeleteDonationCommandHandler {
	return DeleteDonationCommandHandler{deps: deps}
}

func (h DeleteDonationCommandHandler) Handle(ctx context.Context, cmd DeleteDonationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	actor, err := loadActive(ctx, users, cmd.ActorID(), "delete donation")
	if err != nil {
		return err
	}

	donations := uow.DonationRepository()
	don, err := donations.Get(ctx, cmd.DonationID())
	if err != nil {
		return err
	}
	if err = ensureOwnerOrAdmin(don, actor, "delete"); err != nil {
		return err
	}
	if err = don.EnsureDeletable(); err != nil {
		return err
	}

	if err = donations.Delete(ctx, don.ID(), donation.Active); err != nil {
		return err
	}
	if err = users.AdjustCounter(ctx, don.DonorID(), user.TotalDonations, -1); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
