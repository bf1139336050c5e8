package unicart

import "github.com/shopspring/decimal"

// Item-level preconditions. Every Apply operation runs its full validation
// before mutating anything, so a failed call leaves the item untouched.

func (it *Item) checkTaxBeforeDiscount() error {
	if it.hasTax() {
		return &OrderingViolationError{
			ItemID:   it.id.Value(),
			Op:       "discount",
			Conflict: "tax has already been applied",
		}
	}
	return nil
}

func (it *Item) checkDeliveryChargeBeforeDiscount() error {
	if it.hasDeliveryCharge() {
		return &OrderingViolationError{
			ItemID:   it.id.Value(),
			Op:       "discount",
			Conflict: "delivery charge has already been applied",
		}
	}
	return nil
}

func (it *Item) checkBxGyBeforeDiscount() error {
	if it.bxgyApplied {
		return &OrderingViolationError{
			ItemID:   it.id.Value(),
			Op:       "discount",
			Conflict: "a BxGy promotion has already been applied",
		}
	}
	return nil
}

func (it *Item) checkDiscountOrdering() error {
	if err := it.checkBxGyBeforeDiscount(); err != nil {
		return err
	}
	if err := it.checkTaxBeforeDiscount(); err != nil {
		return err
	}
	return it.checkDeliveryChargeBeforeDiscount()
}

func (it *Item) validateFlatDiscount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &ValueError{ItemID: it.id.Value(), Field: "discount", Reason: "must be greater than 0"}
	}
	return it.checkDiscountOrdering()
}

func (it *Item) validatePercentageDiscount(percentage, upto decimal.Decimal) error {
	if !percentage.IsPositive() {
		return &ValueError{ItemID: it.id.Value(), Field: "percentage", Reason: "must be greater than 0"}
	}
	if upto.IsNegative() {
		return &ValueError{ItemID: it.id.Value(), Field: "upto", Reason: "must not be negative"}
	}
	return it.checkDiscountOrdering()
}

func (it *Item) validateBxGy(xQty, yQty int) error {
	if xQty <= 0 || yQty <= 0 {
		return &ValueError{ItemID: it.id.Value(), Field: "bxgy quantities", Reason: "buy and get quantities must be greater than 0"}
	}
	if it.quantity < xQty+yQty {
		return &ValueError{ItemID: it.id.Value(), Field: "quantity", Reason: "item quantity is insufficient for the BxGy quantities"}
	}
	if it.bxgyApplied {
		return &OrderingViolationError{
			ItemID:   it.id.Value(),
			Op:       "bxgy",
			Conflict: "a BxGy promotion has already been applied",
		}
	}
	if it.HasDiscount() {
		return &OrderingViolationError{
			ItemID:   it.id.Value(),
			Op:       "bxgy",
			Conflict: "another discount has already been applied",
		}
	}
	if err := it.checkTaxBeforeDiscount(); err != nil {
		return err
	}
	return it.checkDeliveryChargeBeforeDiscount()
}

func (it *Item) validateDeliveryCharge(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &ValueError{ItemID: it.id.Value(), Field: "delivery charge", Reason: "must be greater than 0"}
	}
	if it.hasDeliveryCharge() {
		return &OrderingViolationError{
			ItemID:   it.id.Value(),
			Op:       "delivery charge",
			Conflict: "a delivery charge has already been applied",
		}
	}
	return nil
}

func (it *Item) validateTax(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return &ValueError{ItemID: it.id.Value(), Field: "tax rate", Reason: "must be greater than 0"}
	}
	return nil
}
