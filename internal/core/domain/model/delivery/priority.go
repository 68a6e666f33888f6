package delivery

import (
	"fmt"

	"foodshare/internal/core/domain/model/request"
	"foodshare/internal/pkg/errs"
)

type Priority int

const (
	PriorityUnknown Priority = iota
	Low
	Medium
	High
	Urgent
)

var priorityNames = map[Priority]string{
	Low:    "low",
	Medium: "medium",
	High:   "high",
	Urgent: "urgent",
}

// PriorityFromUrgency maps critical to urgent, high to high and everything
// else to medium.
func PriorityFromUrgency(u request.Urgency) Priority {
	switch u {
	case request.Critical:
		return Urgent
	case request.High:
		return High
	default:
		return Medium
	}
}

func ParsePriority(name string) (Priority, error) {
	for p, n := range priorityNames {
		if n == name {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("delivery.priority",
		fmt.Errorf("%q is not a valid priority", name))
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p Priority) Validate() error {
	if _, ok := priorityNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery.priority",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

func (p Priority) bonus() int {
	switch p {
	case Urgent:
		return 15
	case High:
		return 10
	case Medium:
		return 5
	default:
		return 0
	}
}
