package kernel

import (
	"fmt"

	"foodshare/internal/pkg/errs"
)

// Role is the marketplace side a user acts for.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleRequester Role = "requester"
	RoleNGO       Role = "ngo"
	RoleAdmin     Role = "admin"
)

// ParseRole accepts the lower-case role names used on the wire and in storage.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleDonor, RoleRequester, RoleNGO, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	id   UUID
	role Role
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
