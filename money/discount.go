package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Flat subtracts a flat discount from the payable amount. The result is
// floored at zero: a discount equal to or exceeding the payable makes the
// payable free, never negative.
func Flat(payable, discount decimal.Decimal) decimal.Decimal {
	if discount.GreaterThanOrEqual(payable) {
		return decimal.Zero
	}
	return payable.Sub(discount)
}

// Percentage subtracts a percentage-based discount from the payable amount.
// A positive upto caps the discount at that value; upto of zero means no cap.
func Percentage(payable, percentage, upto decimal.Decimal) decimal.Decimal {
	discount := payable.Mul(percentage).Div(hundred)
	if upto.IsPositive() {
		discount = decimal.Min(upto, discount)
	}
	return Flat(payable, discount)
}

// BxGy recomputes an item's payable for a "buy x get y free" promotion.
// Every complete set of xQty+yQty units yields yQty free units; the payable
// is rebuilt from the paid unit count, superseding any prior amount.
func BxGy(price decimal.Decimal, quantity, xQty, yQty int) decimal.Decimal {
	sets := quantity / (xQty + yQty)
	free := sets * yQty
	paid := quantity - free

	return price.Mul(decimal.NewFromInt(int64(paid)))
}

// Tax returns the payable with a percentage tax added on top.
func Tax(payable, rate decimal.Decimal) decimal.Decimal {
	return payable.Add(payable.Mul(rate).Div(hundred))
}
