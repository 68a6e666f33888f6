package commands

import (
	"context"

	"foodshare/internal/core/domain/model/donation"
	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/ports"
)

// CreateDonationCommandHandler records an active donation for an active donor
// and bumps the donor's totalDonations. An expiry that is not strictly after
// now is rejected as an invalid expiryTime.
type CreateDonationCommandHandler struct {
	deps Dependencies
}

func NewCreateDonationCommandHandler(deps Dependencies) CreateDonationCommandHandler {
	return CreateDonationCommandHandler{deps: deps}
}

func (h CreateDonationCommandHandler) Handle(ctx context.Context, cmd CreateDonationCommand) error {
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
	donor, err := loadActor(ctx, users, cmd.DonorID(), kernel.RoleDonor, "create donation")
	if err != nil {
		return err
	}

	don, err := donation.NewDonation(
		cmd.DonationID(), donor.ID(), cmd.Details(), cmd.Quantity(), cmd.ExpiryTime(), cmd.PickupLocation(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.DonationRepository().Add(ctx, don); err != nil {
		return err
	}
	if err = users.AdjustCounter(ctx, donor.ID(), user.TotalDonations, 1); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.deps.notify(ctx, now, notification(ports.EventNewDonation, donor.ID(), map[string]any{
		"donationId": don.ID().String(),
		"title":      don.Details().Title,
		"expiryTime": don.ExpiryTime(),
	}))
	return nil
}
