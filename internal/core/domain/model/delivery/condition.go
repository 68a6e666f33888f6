package delivery

import (
	"fmt"

	"foodshare/internal/pkg/errs"
)

// FoodCondition is the NGO's assessment of the food at a handover.
type FoodCondition int

const (
	ConditionUnknown FoodCondition = iota
	Excellent
	Good
	Fair
	Poor
)

var conditionNames = map[FoodCondition]string{
	Excellent: "excellent",
	Good:      "good",
	Fair:      "fair",
	Poor:      "poor",
}

func ParseFoodCondition(name string) (FoodCondition, error) {
	for c, n := range conditionNames {
		if n == name {
			return c, nil
		}
	}
	return ConditionUnknown, errs.NewValueIsInvalidErrorWithCause("foodCondition",
		fmt.Errorf("%q is not a valid food condition", name))
}

func (c FoodCondition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return "unknown"
}

func (c FoodCondition) Validate() error {
	if _, ok := conditionNames[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("foodCondition",
			fmt.Errorf("%d is not a valid food condition", c))
	}
	return nil
}

func (c FoodCondition) bonus() int {
	switch c {
	case Excellent:
		return 10
	case Good:
		return 5
	default:
		return 0
	}
}
