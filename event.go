package unicart

import "github.com/shopspring/decimal"

// DiscountKind tags the variant of a discount event record.
type DiscountKind string

const (
	// DiscountFlat is a fixed amount off the payable.
	DiscountFlat DiscountKind = "flat"
	// DiscountPercentage is a percentage off the payable, optionally capped.
	DiscountPercentage DiscountKind = "percentage"
	// DiscountBxGy is a buy-x-get-y-free promotion on a single item.
	DiscountBxGy DiscountKind = "bxgy"
	// DiscountSpendGet is a cart-wide spend-at-least-x-get-y-off promotion.
	DiscountSpendGet DiscountKind = "sxgy"
)

// DiscountEvent is one entry in an append-only discount audit log. Concrete
// variants are FlatDiscountEvent, PercentageDiscountEvent, BxGyEvent and
// SpendGetEvent.
type DiscountEvent interface {
	// Kind tags the concrete variant.
	Kind() DiscountKind
	// Payables returns the payable amount before and after the event.
	Payables() (before, after decimal.Decimal)

	discountEvent()
}

// FlatDiscountEvent records a flat discount application.
type FlatDiscountEvent struct {
	Discount decimal.Decimal
	Before   decimal.Decimal
	After    decimal.Decimal
}

func (FlatDiscountEvent) Kind() DiscountKind { return DiscountFlat }

func (e FlatDiscountEvent) Payables() (decimal.Decimal, decimal.Decimal) {
	return e.Before, e.After
}

func (FlatDiscountEvent) discountEvent() {}

// PercentageDiscountEvent records a percentage discount application. Upto is
// the discount cap; zero means the discount was uncapped.
type PercentageDiscountEvent struct {
	Percentage decimal.Decimal
	Upto       decimal.Decimal
	Before     decimal.Decimal
	After      decimal.Decimal
}

func (PercentageDiscountEvent) Kind() DiscountKind { return DiscountPercentage }

func (e PercentageDiscountEvent) Payables() (decimal.Decimal, decimal.Decimal) {
	return e.Before, e.After
}

func (PercentageDiscountEvent) discountEvent() {}

// BxGyEvent records a buy-x-get-y promotion applied to an item.
type BxGyEvent struct {
	Label  string
	XQty   int
	YQty   int
	Before decimal.Decimal
	After  decimal.Decimal
}

func (BxGyEvent) Kind() DiscountKind { return DiscountBxGy }

func (e BxGyEvent) Payables() (decimal.Decimal, decimal.Decimal) {
	return e.Before, e.After
}

func (BxGyEvent) discountEvent() {}

// SpendGetEvent records a spend-x-get-y promotion applied to the cart.
type SpendGetEvent struct {
	Spend  decimal.Decimal
	Get    decimal.Decimal
	Before decimal.Decimal
	After  decimal.Decimal
}

func (SpendGetEvent) Kind() DiscountKind { return DiscountSpendGet }

func (e SpendGetEvent) Payables() (decimal.Decimal, decimal.Decimal) {
	return e.Before, e.After
}

func (SpendGetEvent) discountEvent() {}

// TaxEvent records a tax application. Type is a caller-supplied label such
// as "general" or "vat".
type TaxEvent struct {
	Type   string
	Rate   decimal.Decimal
	Before decimal.Decimal
	After  decimal.Decimal
}

// DeliveryChargeEvent records a delivery charge application.
type DeliveryChargeEvent struct {
	Before decimal.Decimal
	After  decimal.Decimal
}
