package donation

import (
	"fmt"
	"slices"

	"foodshare/internal/pkg/errs"
)

// Status is the lifecycle state of a donation. It is persisted by name.
type Status int

const (
	Unknown Status = iota
	Active
	AssignedToNGO
	AssignedToRequester
	PickedUp
	Delivered
	Expired
	Cancelled
)

var statusNames = map[Status]string{
	Active:              "active",
	AssignedToNGO:       "assigned_to_ngo",
	AssignedToRequester: "assigned_to_requester",
	PickedUp:            "picked_up",
	Delivered:           "delivered",
	Expired:             "expired",
	Cancelled:           "cancelled",
}

// ParseStatus maps a stored status name back to a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("donation.status",
		fmt.Errorf("%q is not a valid status", name))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("donation.status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Expired || s == Cancelled
}

func (s Status) in(allowed ...Status) bool {
	return slices.Contains(allowed, s)
}
