// Package user models marketplace participants. Users are never deleted;
// an admin deactivates them instead.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"foodshare/internal/core/domain/model/kernel"
	"foodshare/internal/pkg/errs"
)

const entityName = "user"

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or Restore")

// Counter names one of the activity counters kept on a user.
type Counter string

const (
	TotalDonations  Counter = "total_donations"
	TotalRequests   Counter = "total_requests"
	TotalDeliveries Counter = "total_deliveries"
)

// User is a donor, requester, NGO or admin. Points and counters are changed
// through the repository with relative updates; the aggregate only carries
// the values it was loaded with.
type User struct {
	id       kernel.UUID
	name     string
	email    string
	role     kernel.Role
	location *kernel.GeoLocation

	points          int
	totalDonations  int
	totalRequests   int
	totalDeliveries int

	isApproved bool
	isActive   bool
	createdAt  time.Time

	isConstructed bool
}

// NewUser registers an active user. NGOs start unapproved; every other role
// is approved on creation.
func NewUser(
	id kernel.UUID, name, email string, role kernel.Role, location *kernel.GeoLocation, now time.Time,
) (*User, error) {
	u := &User{
		id:            id,
		role:          role,
		location:      location,
		isApproved:    role != kernel.RoleNGO,
		isActive:      true,
		createdAt:     now,
		isConstructed: true,
	}

	var locErr error
	if location != nil {
		locErr = location.Validate()
	}

	if err := errors.Join(
		id.Validate(),
		role.Validate(),
		locErr,
		u.setName(name),
		u.setEmail(email),
	); err != nil {
		return nil, err
	}
	return u, nil
}

// Snapshot is the flat persisted form of a User.
type Snapshot struct {
	ID              kernel.UUID
	Name            string
	Email           string
	Role            kernel.Role
	Location        *kernel.GeoLocation
	Points          int
	TotalDonations  int
	TotalRequests   int
	TotalDeliveries int
	IsApproved      bool
	IsActive        bool
	CreatedAt       time.Time
}

func Restore(s Snapshot) (*User, error) {
	if err := errors.Join(s.ID.Validate(), s.Role.Validate()); err != nil {
		return nil, err
	}
	if s.Points < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("user.points", fmt.Errorf("%d is negative", s.Points))
	}

	return &User{
		id:              s.ID,
		name:            s.Name,
		email:           s.Email,
		role:            s.Role,
		location:        s.Location,
		points:          s.Points,
		totalDonations:  s.TotalDonations,
		totalRequests:   s.TotalRequests,
		totalDeliveries: s.TotalDeliveries,
		isApproved:      s.IsApproved,
		isActive:        s.IsActive,
		createdAt:       s.CreatedAt,
		isConstructed:   true,
	}, nil
}

func (u *User) Snapshot() Snapshot {
	return Snapshot{
		ID:              u.id,
		Name:            u.name,
		Email:           u.email,
		Role:            u.role,
		Location:        u.location,
		Points:          u.points,
		TotalDonations:  u.totalDonations,
		TotalRequests:   u.totalRequests,
		TotalDeliveries: u.totalDeliveries,
		IsApproved:      u.isApproved,
		IsActive:        u.isActive,
		CreatedAt:       u.createdAt,
	}
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID               { return u.id }
func (u *User) Name() string                  { return u.name }
func (u *User) Email() string                 { return u.email }
func (u *User) Role() kernel.Role             { return u.role }
func (u *User) Location() *kernel.GeoLocation { return u.location }
func (u *User) Points() int                   { return u.points }
func (u *User) TotalDonations() int           { return u.totalDonations }
func (u *User) TotalRequests() int            { return u.totalRequests }
func (u *User) TotalDeliveries() int          { return u.totalDeliveries }
func (u *User) IsApproved() bool              { return u.isApproved }
func (u *User) IsActive() bool                { return u.isActive }
func (u *User) CreatedAt() time.Time          { return u.createdAt }

// EnsureCanAct checks the user is active and has the expected role.
func (u *User) EnsureCanAct(role kernel.Role, action string) error {
	if !u.isActive || u.role != role {
		return errs.NewForbiddenError(entityName, u.id, u.id, action)
	}
	return nil
}

// EnsureOperatingNGO checks the user is an NGO that is approved and active.
// A user that is not an NGO at all is an invalid reference.
func (u *User) EnsureOperatingNGO() error {
	if u.role != kernel.RoleNGO {
		return errs.NewInvalidReferenceError("ngoId", u.id, "user is not an ngo")
	}
	if !u.isApproved || !u.isActive {
		return errs.NewNotApprovedError(u.id)
	}
	return nil
}

// Approve marks an NGO as vetted by an admin.
func (u *User) Approve() error {
	if u.role != kernel.RoleNGO {
		return errs.NewInvalidReferenceError("ngoId", u.id, "user is not an ngo")
	}
	if u.isApproved {
		return errs.NewConflictError(entityName, u.id, "approve", "approved")
	}
	u.isApproved = true
	return nil
}

func (u *User) Deactivate() error {
	if !u.isActive {
		return errs.NewConflictError(entityName, u.id, "deactivate", "inactive")
	}
	u.isActive = false
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("user.name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("user.email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("user.email", err)
	}
	u.email = strings.ToLower(addr.Address)
	return nil
}
