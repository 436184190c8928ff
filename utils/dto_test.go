package utils

import "testing"

type patchDTO struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Notes *string  `json:"internal_notes"`
	Skip  *string  `json:"-"`
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestUpdatesFromPtrDTO(t *testing.T) {
	dto := patchDTO{
		Name:  strPtr("Widget"),
		Price: floatPtr(12.5),
		Skip:  strPtr("hidden"),
	}
	updates := UpdatesFromPtrDTO(&dto, map[string]string{"internal_notes": "notes"})

	if len(updates) != 2 {
		t.Fatalf("want 2 updates, got %d: %v", len(updates), updates)
	}
	if updates["name"] != "Widget" {
		t.Errorf("name = %v", updates["name"])
	}
	if updates["price"] != 12.5 {
		t.Errorf("price = %v", updates["price"])
	}
	if _, ok := updates["-"]; ok {
		t.Error("json \"-\" field must be skipped")
	}
}

func TestUpdatesFromPtrDTORename(t *testing.T) {
	dto := patchDTO{Notes: strPtr("n")}
	updates := UpdatesFromPtrDTO(&dto, map[string]string{"internal_notes": "notes"})
	if updates["notes"] != "n" {
		t.Errorf("renamed column missing: %v", updates)
	}
}

func TestNormalizePtrDTO(t *testing.T) {
	dto := patchDTO{
		Name:  strPtr("  trimmed  "),
		Price: floatPtr(10.558),
	}
	NormalizePtrDTO(&dto)

	if *dto.Name != "trimmed" {
		t.Errorf("Name = %q", *dto.Name)
	}
	if *dto.Price != 10.56 {
		t.Errorf("Price = %v", *dto.Price)
	}
	if dto.Notes != nil {
		t.Error("nil field must stay nil")
	}
}

func TestNormalizeDTO(t *testing.T) {
	in := struct {
		Sku  string
		Cost float64
	}{Sku: " SKU-1 ", Cost: 3.14159}
	NormalizeDTO(&in)

	if in.Sku != "SKU-1" {
		t.Errorf("Sku = %q", in.Sku)
	}
	if in.Cost != 3.14 {
		t.Errorf("Cost = %v", in.Cost)
	}
}

func TestParseIntDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"25", 100, 25},
		{" 7 ", 100, 7},
		{"", 100, 100},
		{"abc", 100, 100},
		{"-5", 100, 100},
	}
	for _, tc := range cases {
		if got := ParseIntDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}
