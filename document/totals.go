package document

import (
	"strconv"
	"strings"
)

// Line is one product row of a document, as far as the monetary rollup is
// concerned. Every item model in models/ satisfies it.
type Line interface {
	LineQuantity() float64
	LineUnitPrice() float64
}

// LineTotal is quantity * unit price for a single row. Per-line discount and
// tax are not compounded here; for persisted rows the stored total_amount is
// whatever the last save computed, and callers recompute via this function
// whenever a fresh value is needed.
func LineTotal(l Line) float64 {
	return l.LineQuantity() * l.LineUnitPrice()
}

// Subtotal sums LineTotal over all rows. Order of the slice does not affect
// the result beyond ordinary float64 rounding.
//
// Monetary math is float64 in whole currency units, mirroring the numeric(12,2)
// columns. This is a known precision limitation of the current design, kept
// deliberately rather than switching to a fixed-point representation.
func Subtotal(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += LineTotal(l)
	}
	return sum
}

// GrandTotal applies document-level discount and tax to a subtotal. Both are
// absolute amounts, not percentages; a document that carries neither passes 0.
func GrandTotal(subtotal, discountAmount, taxAmount float64) float64 {
	return subtotal - discountAmount + taxAmount
}

// ParseAmount converts free-form numeric input to a float64, coercing blank
// or malformed values to 0 so a partially filled form never breaks a running
// total. Sign checks are the validator's job, not this function's.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ValidateLines enforces the save-time line item invariants: at least one row,
// quantity > 0 and unit price >= 0 on every row.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return &ValidationError{Err: ErrNoLineItems}
	}
	for _, l := range lines {
		if l.LineQuantity() <= 0 {
			return &ValidationError{Err: ErrInvalidQuantity, Field: "quantity"}
		}
		if l.LineUnitPrice() < 0 {
			return &ValidationError{Err: ErrInvalidUnitPrice, Field: "unit_price"}
		}
	}
	return nil
}
