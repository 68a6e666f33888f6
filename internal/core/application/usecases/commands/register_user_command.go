package commands

import (
	"errors"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	name     string
	email    string
	role     kernel.Role
	location *kernel.GeoLocation

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(
	userID kernel.UUID, name, email string, role kernel.Role, location *kernel.GeoLocation,
) (RegisterUserCommand, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return RegisterUserCommand{}, err
	}
	return RegisterUserCommand{
		userID:   userID,
		name:     name,
		email:    email,
		role:     role,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID           { return c.userID }
func (c RegisterUserCommand) Name() string                  { return c.name }
func (c RegisterUserCommand) Email() string                 { return c.email }
func (c RegisterUserCommand) Role() kernel.Role             { return c.role }
func (c RegisterUserCommand) Location() *kernel.GeoLocation { return c.location }
