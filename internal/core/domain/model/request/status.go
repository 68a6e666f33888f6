package request

import (
	"fmt"
	"slices"

	"foodshare/internal/pkg/errs"
)

// Status is the lifecycle state of a request. It is persisted by name.
type Status int

const (
	Unknown Status = iota
	Pending
	AcceptedByDonor
	AcceptedByNGO
	InTransit
	Delivered
	Expired
	Cancelled
)

var statusNames = map[Status]string{
	Pending:         "pending",
	AcceptedByDonor: "accepted_by_donor",
	AcceptedByNGO:   "accepted_by_ngo",
	InTransit:       "in_transit",
	Delivered:       "delivered",
	Expired:         "expired",
	Cancelled:       "cancelled",
}

func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("request.status",
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
		return errs.NewValueIsInvalidErrorWithCause("request.status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Expired || s == Cancelled
}

func (s Status) in(allowed ...Status) bool {
	return slices.Contains(allowed, s)
}
