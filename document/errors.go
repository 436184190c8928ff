package document

import (
	"errors"
	"fmt"
)

// Sentinel errors let callers branch on the failure class without string matching.
var (
	// ErrNotEditable: only drafts may have their content or line items changed.
	ErrNotEditable = errors.New("document is not editable in its current status")

	// ErrNotDeletable: the document's type marks its current status as delete-blocked.
	ErrNotDeletable = errors.New("document cannot be deleted in its current status")

	// ErrIllegalTransition: the requested status change is not a declared edge.
	ErrIllegalTransition = errors.New("status transition not allowed")

	// ErrNoLineItems: a document without line items cannot be saved.
	ErrNoLineItems = errors.New("document must have at least one line item")

	// ErrInvalidQuantity: every line item needs quantity > 0 at save time.
	ErrInvalidQuantity = errors.New("line item quantity must be greater than zero")

	// ErrInvalidUnitPrice: unit prices may be zero but never negative.
	ErrInvalidUnitPrice = errors.New("line item unit price cannot be negative")

	// ErrSameWarehouse: transfers need distinct source and destination.
	ErrSameWarehouse = errors.New("source and destination warehouse must differ")

	// ErrExceedsOutstanding: a fulfillment quantity cannot exceed what is
	// still open on the referenced order line.
	ErrExceedsOutstanding = errors.New("quantity exceeds outstanding balance")

	// ErrUnknownOrderItem: a fulfillment line must reference a line of the
	// order it fulfills.
	ErrUnknownOrderItem = errors.New("referenced order line item does not exist")
)

// PreconditionError reports an action refused by the status machine before any
// database or network work is attempted.
type PreconditionError struct {
	Err    error
	Type   Type
	Status Status
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s is %q", e.Err.Error(), e.Type, e.Status)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// ValidationError wraps a sentinel with the offending field for per-field
// reporting at the API boundary.
type ValidationError struct {
	Err   error
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
