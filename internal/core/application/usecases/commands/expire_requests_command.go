package commands

import (
	"errors"

	"foodshare/internal/pkg/guard"
)

var ErrExpireRequestsCommandIsNotConstructed = errors.New(
	"ExpireRequestsCommand must be created via NewExpireRequestsCommand constructor",
)

// ExpireRequestsCommand triggers one sweep over overdue pending requests.
type ExpireRequestsCommand struct {
	guard guard.ConstructorGuard
}

func NewExpireRequestsCommand() ExpireRequestsCommand {
	return ExpireRequestsCommand{guard: guard.NewConstructorGuard()}
}

func (c ExpireRequestsCommand) Validate() error {
	return c.guard.Validate(ErrExpireRequestsCommandIsNotConstructed)
}
