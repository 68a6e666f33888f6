package kernel

import (
	"fmt"
	"strings"

	"foodshare/internal/pkg/errs"
	"foodshare/internal/pkg/guard"
)

var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError("quantity must be created via NewQuantity")

// Quantity is an amount of food with its unit (kg, servings, boxes, ...).
type Quantity struct {
	amount float64
	unit   string
	guard  guard.ConstructorGuard
}

// NewQuantity requires a positive amount and a non-blank unit.
func NewQuantity(amount float64, unit string) (Quantity, error) {
	if amount <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity.amount",
			fmt.Errorf("%v is not greater than 0", amount))
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return Quantity{}, errs.NewValueIsRequiredError("quantity.unit")
	}
	return Quantity{amount: amount, unit: unit, guard: guard.NewConstructorGuard()}, nil
}

func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}

func (q Quantity) Amount() float64 {
	return q.amount
}

func (q Quantity) Unit() string {
	return q.unit
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.amount, q.unit)
}
