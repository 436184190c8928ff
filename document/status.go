// Package document holds the business rules shared by every screen-facing
// document type: the status lifecycle, the monetary rollup of line items, and
// sequential code generation. Everything here is pure; persistence and HTTP
// live in the controllers.
package document

// Type identifies a business document kind.
type Type string

const (
	TypePurchaseOrder        Type = "purchase_order"
	TypePurchaseReceive      Type = "purchase_receive"
	TypeSalesOrder           Type = "sales_order"
	TypeDelivery             Type = "delivery"
	TypeInventoryTransaction Type = "inventory_transaction"
	TypeWarranty             Type = "warranty"
	TypeReturn               Type = "return"
)

// Status is a document lifecycle state. The full set is the union across
// document types; each type uses the subset declared in its edge table.
type Status string

const (
	StatusDraft              Status = "draft"
	StatusPending            Status = "pending"
	StatusConfirmed          Status = "confirmed"
	StatusApproved           Status = "approved"
	StatusPartiallyReceived  Status = "partially_received"
	StatusPartiallyDelivered Status = "partially_delivered"
	StatusReceived           Status = "received"
	StatusDelivered          Status = "delivered"
	StatusCompleted          Status = "completed"
	StatusCancelled          Status = "cancelled"
	StatusRejected           Status = "rejected"
)

// transitions is the declared edge set per document type. A transition absent
// here is illegal regardless of what the caller asks for; the backend remains
// the final authority and may still reject a declared edge.
var transitions = map[Type]map[Status][]Status{
	TypePurchaseOrder: {
		StatusDraft:             {StatusConfirmed, StatusCancelled},
		StatusConfirmed:         {StatusPartiallyReceived, StatusReceived, StatusDraft, StatusCancelled},
		StatusPartiallyReceived: {StatusPartiallyReceived, StatusReceived},
	},
	TypePurchaseReceive: {
		StatusDraft: {StatusCompleted, StatusCancelled},
	},
	TypeSalesOrder: {
		StatusDraft:              {StatusConfirmed, StatusCancelled},
		StatusConfirmed:          {StatusPartiallyDelivered, StatusDelivered, StatusDraft, StatusCancelled},
		StatusPartiallyDelivered: {StatusPartiallyDelivered, StatusDelivered},
	},
	TypeDelivery: {
		StatusDraft:     {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusCompleted, StatusDraft, StatusCancelled},
	},
	TypeInventoryTransaction: {
		StatusDraft:    {StatusPending, StatusCancelled},
		StatusPending:  {StatusApproved, StatusDraft, StatusCancelled},
		StatusApproved: {StatusCompleted, StatusCancelled},
	},
	TypeWarranty: {
		StatusDraft:     {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusCompleted, StatusRejected, StatusCancelled},
	},
	TypeReturn: {
		StatusDraft:     {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusCompleted, StatusDraft, StatusCancelled},
	},
}

// deleteBlocked lists, per type, the statuses in which a hard delete must be
// refused. Deletion elsewhere is a hard delete of the resource; there is no
// soft-cancel fallback (product decision).
var deleteBlocked = map[Type][]Status{
	TypePurchaseOrder:        {StatusPartiallyReceived, StatusReceived},
	TypePurchaseReceive:      {StatusCompleted},
	TypeSalesOrder:           {StatusPartiallyDelivered, StatusDelivered},
	TypeDelivery:             {StatusCompleted},
	TypeInventoryTransaction: {StatusCompleted},
	TypeWarranty:             {StatusCompleted},
	TypeReturn:               {StatusCompleted},
}

// IsValid reports whether s appears anywhere in t's lifecycle.
func (t Type) IsValid(s Status) bool {
	if s == StatusDraft {
		return true
	}
	edges, ok := transitions[t]
	if !ok {
		return false
	}
	for from, tos := range edges {
		if from == s {
			return true
		}
		for _, to := range tos {
			if to == s {
				return true
			}
		}
	}
	return false
}

// CanEdit reports whether document content and line items may be changed.
// Only drafts are editable, for every document type.
func CanEdit(s Status) bool {
	return s == StatusDraft
}

// CanDelete reports whether a hard delete is allowed for a document of type t
// in status s.
func CanDelete(t Type, s Status) bool {
	for _, blocked := range deleteBlocked[t] {
		if s == blocked {
			return false
		}
	}
	return true
}

// CanTransition reports whether (from, to) is a declared edge for type t.
func CanTransition(t Type, from, to Status) bool {
	for _, next := range transitions[t][from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s in one transition, used
// to decide which actions to offer. The slice is a copy; terminal statuses
// yield nil.
func NextStatuses(t Type, s Status) []Status {
	edges := transitions[t][s]
	if len(edges) == 0 {
		return nil
	}
	out := make([]Status, len(edges))
	copy(out, edges)
	return out
}

// CheckEdit returns a PreconditionError unless s is editable.
func CheckEdit(t Type, s Status) error {
	if CanEdit(s) {
		return nil
	}
	return &PreconditionError{Err: ErrNotEditable, Type: t, Status: s}
}

// CheckDelete returns a PreconditionError when deletion is blocked. Callers
// must short-circuit before issuing any database work.
func CheckDelete(t Type, s Status) error {
	if CanDelete(t, s) {
		return nil
	}
	return &PreconditionError{Err: ErrNotDeletable, Type: t, Status: s}
}

// CheckTransition validates a requested status change before it is sent on.
func CheckTransition(t Type, from, to Status) error {
	if CanTransition(t, from, to) {
		return nil
	}
	return &PreconditionError{Err: ErrIllegalTransition, Type: t, Status: from}
}
