package request

import (
	"fmt"

	"foodshare/internal/pkg/errs"
)

// Urgency ranks how soon the requester needs food. Higher values are more urgent.
type Urgency int

const (
	UrgencyUnknown Urgency = iota
	Low
	Medium
	High
	Critical
)

var urgencyNames = map[Urgency]string{
	Low:      "low",
	Medium:   "medium",
	High:     "high",
	Critical: "critical",
}

// ParseUrgency accepts "low", "medium", "high" or "critical". An empty string
// yields Medium.
func ParseUrgency(name string) (Urgency, error) {
	if name == "" {
		return Medium, nil
	}
	for u, n := range urgencyNames {
		if n == name {
			return u, nil
		}
	}
	return UrgencyUnknown, errs.NewValueIsInvalidErrorWithCause("request.urgency",
		fmt.Errorf("%q is not a valid urgency", name))
}

func (u Urgency) String() string {
	if name, ok := urgencyNames[u]; ok {
		return name
	}
	return "unknown"
}

func (u Urgency) Validate() error {
	if _, ok := urgencyNames[u]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("request.urgency",
			fmt.Errorf("%d is not a valid urgency", u))
	}
	return nil
}
