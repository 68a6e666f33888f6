package commands

import (
	"context"

	"foodshare/internal/core/domain/model/user"
)

// RegisterUserCommandHandler stores a new participant. Credentials are
// handled upstream; NGOs start unapproved.
type RegisterUserCommandHandler struct {
	deps Dependencies
}

func NewRegisterUserCommandHandler(deps Dependencies) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{deps: deps}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	now := h.deps.Clock.Now()

	u, err := user.NewUser(cmd.UserID(), cmd.Name(), cmd.Email(), cmd.Role(), cmd.Location(), now)
	if err != nil {
		return err
	}

	uow := h.deps.UoWFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
