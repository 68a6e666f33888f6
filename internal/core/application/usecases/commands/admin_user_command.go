package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrAdminUserCommandIsNotConstructed = errors.New(
	"AdminUserCommand must be created via NewAdminUserCommand constructor",
)

// AdminUserCommand is an admin acting on another user's account.
type AdminUserCommand struct { //nolint:recvcheck //using for validation
	userID  kernel.UUID
	adminID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAdminUserCommand(userID, adminID kernel.UUID) (AdminUserCommand, error) {
	if err := errors.Join(userID.Validate(), adminID.Validate()); err != nil {
		return AdminUserCommand{}, err
	}
	return AdminUserCommand{userID: userID, adminID: adminID, guard: guard.NewConstructorGuard()}, nil
}

func (c AdminUserCommand) Validate() error {
	return c.guard.Validate(ErrAdminUserCommandIsNotConstructed)
}

func (c AdminUserCommand) UserID() kernel.UUID  { return c.userID }
func (c AdminUserCommand) AdminID() kernel.UUID { return c.adminID }
