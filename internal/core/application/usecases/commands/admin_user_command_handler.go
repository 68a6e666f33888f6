package commands

import (
	"context"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/core/domain/model/user"
	"foodshare/internal/core/ports"
)

// ApproveNGOCommandHandler lets an admin vet an NGO so it can take deliveries.
type ApproveNGOCommandHandler struct {
	deps Dependencies
}

func NewApproveNGOCommandHandler(deps Dependencies) ApproveNGOCommandHandler {
	return ApproveNGOCommandHandler{deps: deps}
}

func (h ApproveNGOCommandHandler) Handle(ctx context.Context, cmd AdminUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.deps.Clock.Now()

	ngo, err := adminUpdate(ctx, h.deps, cmd, "approve ngo", (*user.User).Approve)
	if err != nil {
		return err
	}

	h.deps.notify(ctx, now, notification(ports.EventNGOApproved, ngo.ID(), map[string]any{
		"ngoId": ngo.ID().String(),
	}))
	return nil
}

// DeactivateUserCommandHandler lets an admin switch off an account. Inactive
// users cannot act.
type DeactivateUserCommandHandler struct {
	deps Dependencies
}

func NewDeactivateUserCommandHandler(deps Dependencies) DeactivateUserCommandHandler {
	return DeactivateUserCommandHandler{deps: deps}
}

func (h DeactivateUserCommandHandler) Handle(ctx context.Context, cmd AdminUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	_, err := adminUpdate(ctx, h.deps, cmd, "deactivate user", (*user.User).Deactivate)
	return err
}

func adminUpdate(
	ctx context.Context, deps Dependencies, cmd AdminUserCommand, action string, change func(*user.User) error,
) (*user.User, error) {
	uow := deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	if _, err := loadActor(ctx, users, cmd.AdminID(), kernel.RoleAdmin, action); err != nil {
		return nil, err
	}

	target, err := users.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}
	if err = change(target); err != nil {
		return nil, err
	}
	if err = users.Update(ctx, target); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return target, nil
}
