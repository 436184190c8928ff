package document

import (
	"errors"
	"testing"
)

func TestCanEdit(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusDraft, true},
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusApproved, false},
		{StatusPartiallyReceived, false},
		{StatusReceived, false},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}
	for _, tt := range tests {
		if got := CanEdit(tt.status); got != tt.want {
			t.Errorf("CanEdit(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name   string
		typ    Type
		status Status
		want   bool
	}{
		{"draft purchase order", TypePurchaseOrder, StatusDraft, true},
		{"confirmed purchase order", TypePurchaseOrder, StatusConfirmed, true},
		{"received purchase order", TypePurchaseOrder, StatusReceived, false},
		{"partially received purchase order", TypePurchaseOrder, StatusPartiallyReceived, false},
		{"completed receive", TypePurchaseReceive, StatusCompleted, false},
		{"draft receive", TypePurchaseReceive, StatusDraft, true},
		{"completed transfer", TypeInventoryTransaction, StatusCompleted, false},
		{"cancelled transfer", TypeInventoryTransaction, StatusCancelled, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDelete(tt.typ, tt.status); got != tt.want {
				t.Errorf("CanDelete(%q, %q) = %v, want %v", tt.typ, tt.status, got, tt.want)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		from Status
		to   Status
		want bool
	}{
		{"draft to confirmed", TypePurchaseOrder, StatusDraft, StatusConfirmed, true},
		{"draft to received skips confirmation", TypePurchaseOrder, StatusDraft, StatusReceived, false},
		{"confirmed back to draft", TypePurchaseOrder, StatusConfirmed, StatusDraft, true},
		{"confirmed to received", TypePurchaseOrder, StatusConfirmed, StatusReceived, true},
		{"confirmed to cancelled", TypePurchaseOrder, StatusConfirmed, StatusCancelled, true},
		{"received is terminal", TypePurchaseOrder, StatusReceived, StatusDraft, false},
		{"cancelled is terminal", TypePurchaseOrder, StatusCancelled, StatusDraft, false},
		{"partial receive repeats", TypePurchaseOrder, StatusPartiallyReceived, StatusPartiallyReceived, true},
		{"receive draft to completed", TypePurchaseReceive, StatusDraft, StatusCompleted, true},
		{"transfer draft to pending", TypeInventoryTransaction, StatusDraft, StatusPending, true},
		{"transfer pending rejected to draft", TypeInventoryTransaction, StatusPending, StatusDraft, true},
		{"transfer draft straight to completed", TypeInventoryTransaction, StatusDraft, StatusCompleted, false},
		{"sales confirmed to delivered", TypeSalesOrder, StatusConfirmed, StatusDelivered, true},
		{"unknown type has no edges", Type("bogus"), StatusDraft, StatusConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.typ, tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q, %q) = %v, want %v", tt.typ, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestNextStatuses(t *testing.T) {
	next := NextStatuses(TypeInventoryTransaction, StatusPending)
	want := map[Status]bool{StatusApproved: true, StatusDraft: true, StatusCancelled: true}
	if len(next) != len(want) {
		t.Fatalf("NextStatuses(pending) = %v, want %d statuses", next, len(want))
	}
	for _, s := range next {
		if !want[s] {
			t.Errorf("NextStatuses(pending) contains unexpected %q", s)
		}
	}

	if got := NextStatuses(TypePurchaseOrder, StatusReceived); got != nil {
		t.Errorf("NextStatuses(received) = %v, want nil for terminal status", got)
	}

	// Mutating the returned slice must not leak into the edge table.
	first := NextStatuses(TypePurchaseOrder, StatusDraft)
	first[0] = Status("mutated")
	second := NextStatuses(TypePurchaseOrder, StatusDraft)
	for _, s := range second {
		if s == Status("mutated") {
			t.Fatal("NextStatuses returned a shared backing slice")
		}
	}
}

func TestCheckGuards(t *testing.T) {
	if err := CheckEdit(TypePurchaseOrder, StatusDraft); err != nil {
		t.Errorf("CheckEdit(draft) = %v, want nil", err)
	}
	err := CheckEdit(TypePurchaseOrder, StatusConfirmed)
	if !errors.Is(err, ErrNotEditable) {
		t.Errorf("CheckEdit(confirmed) = %v, want ErrNotEditable", err)
	}
	var pre *PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("CheckEdit(confirmed) error type = %T, want *PreconditionError", err)
	}
	if pre.Status != StatusConfirmed {
		t.Errorf("PreconditionError.Status = %q, want %q", pre.Status, StatusConfirmed)
	}

	if err := CheckDelete(TypePurchaseReceive, StatusCompleted); !errors.Is(err, ErrNotDeletable) {
		t.Errorf("CheckDelete(completed) = %v, want ErrNotDeletable", err)
	}
	if err := CheckTransition(TypePurchaseOrder, StatusCancelled, StatusDraft); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("CheckTransition(cancelled, draft) = %v, want ErrIllegalTransition", err)
	}
}

// Approval walkthrough: a draft order totals its lines, confirms, and is no
// longer editable afterwards.
func TestPurchaseOrderApprovalFlow(t *testing.T) {
	lines := []Line{
		testLine{qty: 2, price: 100000},
		testLine{qty: 1, price: 50000},
	}
	if got := Subtotal(lines); got != 250000 {
		t.Fatalf("Subtotal = %v, want 250000", got)
	}

	status := StatusDraft
	if err := CheckTransition(TypePurchaseOrder, status, StatusConfirmed); err != nil {
		t.Fatalf("CheckTransition(draft, confirmed) = %v, want nil", err)
	}
	status = StatusConfirmed

	if CanEdit(status) {
		t.Error("CanEdit(confirmed) = true, want false after confirmation")
	}
}
