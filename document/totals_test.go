package document

import (
	"errors"
	"testing"
)

type testLine struct {
	qty   float64
	price float64
}

func (l testLine) LineQuantity() float64  { return l.qty }
func (l testLine) LineUnitPrice() float64 { return l.price }

func TestSubtotal(t *testing.T) {
	lines := []Line{
		testLine{qty: 2, price: 100000},
		testLine{qty: 1, price: 50000},
		testLine{qty: 3, price: 1500},
	}
	want := 254500.0
	if got := Subtotal(lines); got != want {
		t.Errorf("Subtotal = %v, want %v", got, want)
	}

	// Order independence.
	reversed := []Line{lines[2], lines[1], lines[0]}
	if got := Subtotal(reversed); got != want {
		t.Errorf("Subtotal(reversed) = %v, want %v", got, want)
	}

	if got := Subtotal(nil); got != 0 {
		t.Errorf("Subtotal(nil) = %v, want 0", got)
	}
}

func TestGrandTotal(t *testing.T) {
	tests := []struct {
		name                    string
		subtotal, discount, tax float64
		want                    float64
	}{
		{"no adjustments", 250000, 0, 0, 250000},
		{"discount only", 250000, 25000, 0, 225000},
		{"tax only", 100000, 0, 11000, 111000},
		{"both", 100000, 10000, 9900, 99900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrandTotal(tt.subtotal, tt.discount, tt.tax)
			if got != tt.want {
				t.Errorf("GrandTotal = %v, want %v", got, tt.want)
			}
			// Idempotent: no hidden accumulator between calls.
			if again := GrandTotal(tt.subtotal, tt.discount, tt.tax); again != got {
				t.Errorf("GrandTotal recomputed = %v, first call %v", again, got)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"12", 12},
		{"12.5", 12.5},
		{" 7 ", 7},
		{"-3", -3}, // sign is the validator's concern
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// A row whose quantity arrives as an empty string contributes 0, not NaN, and
// the rollup never panics.
func TestSubtotalMalformedInput(t *testing.T) {
	lines := []Line{
		testLine{qty: ParseAmount(""), price: ParseAmount("100")},
		testLine{qty: 2, price: 500},
	}
	if got := Subtotal(lines); got != 1000 {
		t.Errorf("Subtotal with blank quantity = %v, want 1000", got)
	}
}

func TestValidateLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []Line
		wantErr error
	}{
		{"empty", nil, ErrNoLineItems},
		{"zero quantity", []Line{testLine{qty: 0, price: 100}}, ErrInvalidQuantity},
		{"negative price", []Line{testLine{qty: 1, price: -1}}, ErrInvalidUnitPrice},
		{"free item is fine", []Line{testLine{qty: 1, price: 0}}, nil},
		{"valid", []Line{testLine{qty: 2, price: 100000}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLines(tt.lines)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateLines() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
