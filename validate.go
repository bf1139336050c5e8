package unicart

// Cart-level preconditions: the mutual-exclusion policy between item-level
// and cart-level applications. Checks never mutate state; flags move only
// after a whole validation passes, so a rejected operation is a no-op.

func (c *Cart) checkNotEmpty() error {
	if len(c.items) == 0 {
		return &StateConflictError{Reason: "cart is empty"}
	}
	return nil
}

// checkNotInitiated rejects item-level applications once any cart-level
// application has succeeded.
func (c *Cart) checkNotInitiated(id any, op string) error {
	if c.initiated {
		return &OrderingViolationError{
			ItemID:   id,
			Op:       op,
			Conflict: "cart-level applications have been initiated",
		}
	}
	return nil
}

// checkItemLevelApplications rejects a cart-level application while any item
// carries a tax or delivery charge: cart-wide math over totals that already
// include item-level taxes or charges would double-count them.
func (c *Cart) checkItemLevelApplications(op string) error {
	for _, id := range c.order {
		it := c.items[id]
		if it.hasTax() {
			return &OrderingViolationError{
				Op:       op,
				Conflict: "tax has already been applied on item " + id.String(),
			}
		}
		if it.hasDeliveryCharge() {
			return &OrderingViolationError{
				Op:       op,
				Conflict: "delivery charge has already been applied on item " + id.String(),
			}
		}
	}
	return nil
}

// checkStacking enforces the global single-discount rule when stacking is
// disabled: one discount of any kind, at item or cart level, per cart
// lifetime.
func (c *Cart) checkStacking(id any) error {
	if c.cfg.stacking {
		return nil
	}
	if len(c.discounts) > 0 || c.anyItemHasDiscount() {
		return &StateConflictError{ItemID: id, Reason: "discount stacking is disabled and a discount has already been applied"}
	}
	return nil
}

// validateCartDiscount gates every cart-level discount variant: the cart
// must be non-empty, free of item-level taxes and charges, and free of
// cart-level taxes and charges (discounts precede both), and the stacking
// rule must hold.
func (c *Cart) validateCartDiscount() error {
	if err := c.checkNotEmpty(); err != nil {
		return err
	}
	if err := c.checkItemLevelApplications("discount"); err != nil {
		return err
	}
	if len(c.taxes) > 0 {
		return &OrderingViolationError{
			Op:       "discount",
			Conflict: "tax has already been applied on the cart",
		}
	}
	if len(c.deliveryCharges) > 0 {
		return &OrderingViolationError{
			Op:       "discount",
			Conflict: "delivery charge has already been applied on the cart",
		}
	}
	return c.checkStacking(nil)
}
