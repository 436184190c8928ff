package document

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationErrorWrapsSentinel(t *testing.T) {
	cases := []struct {
		name     string
		err      *ValidationError
		sentinel error
		contains string
	}{
		{
			name:     "unknown order item carries the reference field",
			err:      &ValidationError{Err: ErrUnknownOrderItem, Field: "purchase_order_item_id"},
			sentinel: ErrUnknownOrderItem,
			contains: "purchase_order_item_id: referenced order line item does not exist",
		},
		{
			name:     "quantity error names the field",
			err:      &ValidationError{Err: ErrInvalidQuantity, Field: "quantity"},
			sentinel: ErrInvalidQuantity,
			contains: "quantity",
		},
		{
			name:     "fieldless error is just the sentinel text",
			err:      &ValidationError{Err: ErrNoLineItems},
			sentinel: ErrNoLineItems,
			contains: ErrNoLineItems.Error(),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tc.err)
			}
			if !strings.Contains(tc.err.Error(), tc.contains) {
				t.Errorf("Error() = %q, want it to contain %q", tc.err.Error(), tc.contains)
			}
		})
	}
}

func TestUnknownOrderItemIsNotAQuantityError(t *testing.T) {
	err := &ValidationError{Err: ErrUnknownOrderItem, Field: "sales_order_item_id"}
	if errors.Is(err, ErrInvalidQuantity) {
		t.Error("bad line reference must not report as a quantity error")
	}
}

func TestPreconditionErrorWrapsSentinel(t *testing.T) {
	err := &PreconditionError{Err: ErrNotEditable, Type: TypePurchaseOrder, Status: StatusConfirmed}
	if !errors.Is(err, ErrNotEditable) {
		t.Error("errors.Is(err, ErrNotEditable) = false")
	}
	if !strings.Contains(err.Error(), string(StatusConfirmed)) {
		t.Errorf("Error() = %q, want the current status in the message", err.Error())
	}
}
