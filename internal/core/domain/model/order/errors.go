package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is matched by every rejected status change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidDeliveryType is matched when a delivery type is unknown.
	ErrInvalidDeliveryType = errors.New("invalid delivery type")

	// ErrInvalidStatus is matched when a status string or value is unknown.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrRevisionLimitReached is returned when an order already used every
	// revision it was sold with.
	ErrRevisionLimitReached = errors.New("revision limit reached")

	// ErrOrderIsNotConstructed is returned by Validate on an Order that was
	// not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")
)

// InvalidTransitionError names the rejected move. It matches
// ErrInvalidTransition with errors.Is.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
