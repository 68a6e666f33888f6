package delivery

import (
	"fmt"
	"slices"

	"foodshare/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery. It is persisted by name.
type Status int

const (
	Unknown Status = iota
	Assigned
	PickupInProgress
	PickedUp
	DeliveryInProgress
	Delivered
	Cancelled
	Failed
)

var statusNames = map[Status]string{
	Assigned:           "assigned",
	PickupInProgress:   "pickup_in_progress",
	PickedUp:           "picked_up",
	DeliveryInProgress: "delivery_in_progress",
	Delivered:          "delivered",
	Cancelled:          "cancelled",
	Failed:             "failed",
}

func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("delivery.status",
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
		return errs.NewValueIsInvalidErrorWithCause("delivery.status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Failed
}

func (s Status) in(allowed ...Status) bool {
	return slices.Contains(allowed, s)
}
