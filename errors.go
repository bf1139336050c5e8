package unicart

import "fmt"

// ItemCreationError indicates invalid inputs when creating a line item.
type ItemCreationError struct {
	ID     any
	Reason string
}

func (e *ItemCreationError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("create item: %s", e.Reason)
	}
	return fmt.Sprintf("create item %v: %s", e.ID, e.Reason)
}

// OrderingViolationError indicates an operation attempted after a
// disqualifying prior operation, such as a discount after taxation or an
// item-level application after cart initiation. ItemID is nil when the
// violation concerns the cart as a whole.
type OrderingViolationError struct {
	ItemID   any
	Op       string
	Conflict string
}

func (e *OrderingViolationError) Error() string {
	if e.ItemID == nil {
		return fmt.Sprintf("cannot apply %s on cart: %s", e.Op, e.Conflict)
	}
	return fmt.Sprintf("cannot apply %s on item %v: %s", e.Op, e.ItemID, e.Conflict)
}

// ValueError indicates an out-of-range operation parameter, such as a
// non-positive discount or an insufficient quantity for a BxGy promotion.
type ValueError struct {
	ItemID any
	Field  string
	Reason string
}

func (e *ValueError) Error() string {
	if e.ItemID == nil {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s for item %v: %s", e.Field, e.ItemID, e.Reason)
}

// StateConflictError indicates the cart or item is in a state that forbids
// the operation: a duplicate item id without override, a second spend-get
// application, or a discount when stacking is disabled.
type StateConflictError struct {
	ItemID any
	Reason string
}

func (e *StateConflictError) Error() string {
	if e.ItemID == nil {
		return fmt.Sprintf("cart state conflict: %s", e.Reason)
	}
	return fmt.Sprintf("state conflict on item %v: %s", e.ItemID, e.Reason)
}

// NotFoundError indicates a reference to an item id that is not in the cart.
type NotFoundError struct {
	ID any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %v does not exist", e.ID)
}
