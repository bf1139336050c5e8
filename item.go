package unicart

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/unicart/money"
)

// DefaultTaxType labels taxes applied without an explicit type.
const DefaultTaxType = "general"

// Item is a single product line: a price, a quantity, and the ordered log of
// financial operations applied to it. The original payable (price*quantity)
// is fixed at creation; the running payable is mutated only by the Apply
// operations, each of which validates fully before touching any state.
type Item struct {
	id       ID
	price    decimal.Decimal
	quantity int

	originalPayable decimal.Decimal
	payable         decimal.Decimal

	discounts       []DiscountEvent
	taxes           []TaxEvent
	deliveryCharges []DeliveryChargeEvent

	bxgyApplied bool
	metadata    map[string]any
	rounding    money.Rounding
}

// NewItem creates a line item. The id must be an integer or string, the
// price positive, and the quantity a positive whole number.
func NewItem(id any, price decimal.Decimal, quantity int) (*Item, error) {
	itemID, err := NewID(id)
	if err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, &ItemCreationError{ID: id, Reason: "price must be greater than 0"}
	}
	if quantity <= 0 {
		return nil, &ItemCreationError{ID: id, Reason: "quantity must be greater than 0"}
	}

	original := price.Mul(decimal.NewFromInt(int64(quantity)))

	return &Item{
		id:              itemID,
		price:           price,
		quantity:        quantity,
		originalPayable: original,
		payable:         original,
		rounding:        money.RoundNearest,
	}, nil
}

// ApplyFlatDiscount reduces the payable by a flat amount, floored at zero.
// Discounts are rejected once a BxGy promotion, tax, or delivery charge has
// been recorded.
func (it *Item) ApplyFlatDiscount(amount decimal.Decimal) error {
	if err := it.validateFlatDiscount(amount); err != nil {
		return err
	}

	before := it.payable
	it.payable = money.Flat(it.payable, amount)
	it.discounts = append(it.discounts, FlatDiscountEvent{
		Discount: amount,
		Before:   before,
		After:    it.payable,
	})

	return nil
}

// ApplyPercentageDiscount reduces the payable by a percentage, optionally
// capped at upto (zero means no cap). The ordering rules match
// ApplyFlatDiscount.
func (it *Item) ApplyPercentageDiscount(percentage, upto decimal.Decimal) error {
	if err := it.validatePercentageDiscount(percentage, upto); err != nil {
		return err
	}

	before := it.payable
	it.payable = money.Percentage(it.payable, percentage, upto)
	it.discounts = append(it.discounts, PercentageDiscountEvent{
		Percentage: percentage,
		Upto:       upto,
		Before:     before,
		After:      it.payable,
	})

	return nil
}

// ApplyBxGy applies a buy-x-get-y-free promotion, recomputing the payable
// from scratch. It requires the item quantity to cover at least one full
// x+y set and is mutually exclusive with every other discount.
func (it *Item) ApplyBxGy(xQty, yQty int, label string) error {
	if err := it.validateBxGy(xQty, yQty); err != nil {
		return err
	}

	before := it.payable
	it.payable = money.BxGy(it.price, it.quantity, xQty, yQty)
	it.discounts = append(it.discounts, BxGyEvent{
		Label:  label,
		XQty:   xQty,
		YQty:   yQty,
		Before: before,
		After:  it.payable,
	})
	it.bxgyApplied = true

	return nil
}

// ApplyDeliveryCharge adds a delivery charge to the payable. At most one
// delivery charge may ever be applied to an item.
func (it *Item) ApplyDeliveryCharge(amount decimal.Decimal) error {
	if err := it.validateDeliveryCharge(amount); err != nil {
		return err
	}

	before := it.payable
	it.payable = it.payable.Add(amount)
	it.deliveryCharges = append(it.deliveryCharges, DeliveryChargeEvent{
		Before: before,
		After:  it.payable,
	})

	return nil
}

// ApplyTax adds a percentage tax on top of the current payable. Taxes may
// stack; once any tax is recorded no further discounts are allowed.
func (it *Item) ApplyTax(rate decimal.Decimal, taxType string) error {
	if err := it.validateTax(rate); err != nil {
		return err
	}
	if taxType == "" {
		taxType = DefaultTaxType
	}

	before := it.payable
	it.payable = money.Tax(it.payable, rate)
	it.taxes = append(it.taxes, TaxEvent{
		Type:   taxType,
		Rate:   rate,
		Before: before,
		After:  it.payable,
	})

	return nil
}

// SetMeta attaches a display-only annotation to the item. Metadata never
// participates in pricing or rule validation and may be set at any time.
func (it *Item) SetMeta(key string, value any) {
	if it.metadata == nil {
		it.metadata = make(map[string]any)
	}
	it.metadata[key] = value
}

// Meta returns the annotation stored under key, if any.
func (it *Item) Meta(key string) (any, bool) {
	v, ok := it.metadata[key]
	return v, ok
}

// ID returns the item identifier.
func (it *Item) ID() ID { return it.id }

// Price returns the unit price.
func (it *Item) Price() decimal.Decimal { return it.price }

// Quantity returns the unit count.
func (it *Item) Quantity() int { return it.quantity }

// OriginalPayable returns price*quantity as fixed at creation.
func (it *Item) OriginalPayable() decimal.Decimal { return it.originalPayable }

// Payable returns the current payable after all applied operations.
func (it *Item) Payable() decimal.Decimal { return it.payable }

// HasDiscount reports whether any discount has been applied.
func (it *Item) HasDiscount() bool { return len(it.discounts) > 0 }

// IsBxGyApplied reports whether a BxGy promotion has been applied.
func (it *Item) IsBxGyApplied() bool { return it.bxgyApplied }

// Discounts returns a copy of the discount audit log.
func (it *Item) Discounts() []DiscountEvent {
	return append([]DiscountEvent(nil), it.discounts...)
}

// Taxes returns a copy of the tax audit log.
func (it *Item) Taxes() []TaxEvent {
	return append([]TaxEvent(nil), it.taxes...)
}

// DeliveryCharges returns a copy of the delivery charge log.
func (it *Item) DeliveryCharges() []DeliveryChargeEvent {
	return append([]DeliveryChargeEvent(nil), it.deliveryCharges...)
}

func (it *Item) hasTax() bool            { return len(it.taxes) > 0 }
func (it *Item) hasDeliveryCharge() bool { return len(it.deliveryCharges) > 0 }
