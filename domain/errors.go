package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveDebts        = errors.New("no active debts to project")
	ErrInvalidCapacity      = errors.New("invalid monthly capacity")
	ErrInvalidDebtData      = errors.New("invalid debt data")
	ErrPayoffExceedsHorizon = errors.New("payoff exceeds projection horizon")
	ErrPlanNotFound         = errors.New("no active financial plan found")
)

type NoActiveDebtsError struct{}

func (e *NoActiveDebtsError) Error() string {
	return ErrNoActiveDebts.Error()
}

func (e *NoActiveDebtsError) Is(target error) bool {
	return target == ErrNoActiveDebts
}

type InvalidCapacityError struct {
	Capacity float64
}

func (e *InvalidCapacityError) Error() string {
	return fmt.Sprintf("%s: %v must be a non-negative amount", ErrInvalidCapacity, e.Capacity)
}

func (e *InvalidCapacityError) Is(target error) bool {
	return target == ErrInvalidCapacity
}

// InvalidDebtDataError identifies the debt and the field that failed validation.
type InvalidDebtDataError struct {
	DebtID string
	Name   string
	Field  string
	Value  float64
}

func (e *InvalidDebtDataError) Error() string {
	return fmt.Sprintf("%s: debt %q (%s) has %s %v, must be non-negative",
		ErrInvalidDebtData, e.DebtID, e.Name, e.Field, e.Value)
}

func (e *InvalidDebtDataError) Is(target error) bool {
	return target == ErrInvalidDebtData
}

// PayoffExceedsHorizonError is returned when a plan that covers every minimum
// payment still does not reach zero within the horizon.
type PayoffExceedsHorizonError struct {
	Months    int
	Remaining float64
	Diverging bool
}

func (e *PayoffExceedsHorizonError) Error() string {
	if e.Diverging {
		return fmt.Sprintf("%s: balance is growing after %d months (%.2f remaining), check rates and capacity",
			ErrPayoffExceedsHorizon, e.Months, e.Remaining)
	}
	return fmt.Sprintf("%s: not paid off after %d months (%.2f remaining), check inputs",
		ErrPayoffExceedsHorizon, e.Months, e.Remaining)
}

func (e *PayoffExceedsHorizonError) Is(target error) bool {
	return target == ErrPayoffExceedsHorizon
}
