package commands

import (
	"context"
)

// CancelDonationCommandHandler soft-cancels a non-terminal donation. Only the
// owning donor or an admin may cancel.
type CancelDonationCommandHandler struct {
	deps Dependencies
}

func NewCancelDonationCommandHandler(deps Dependencies) CancelDonationCommandHandler {
	return CancelDonationCommandHandler{deps: deps}
}

func (h CancelDonationCommandHandler) Handle(ctx context.Context, cmd CancelDonationCommand) error {
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

	actor, err := loadActive(ctx, uow.UserRepository(), cmd.ActorID(), "cancel donation")
	if err != nil {
		return err
	}

	donations := uow.DonationRepository()
	don, err := donations.Get(ctx, cmd.DonationID())
	if err != nil {
		return err
	}
	if err = ensureOwnerOrAdmin(don, actor, "cancel"); err != nil {
		return err
	}

	previous := don.Status()
	if err = don.Cancel(cmd.Reason(), now); err != nil {
		return err
	}
	if err = donations.Update(ctx, don, previous); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
