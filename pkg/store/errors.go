package store

import (
	"errors"
	"fmt"
)

var (
	ErrPayeeRequired    = errors.New("payee required")
	ErrBelowMinimum     = errors.New("below minimum purchase")
	ErrPaymentsDisabled = errors.New("payments disabled")
	ErrOrderPending     = errors.New("order already pending")
	ErrStaleOrder       = errors.New("stale order")
	ErrPaymentFailed    = errors.New("payment failed")
	ErrDeclined         = errors.New("payment declined")
)

// ValidationError is a rejected purchase attempt. Title and Message are
// meant for the user.
type ValidationError struct {
	Title   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
