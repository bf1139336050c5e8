// Package unicart is a shopping-cart pricing engine. A Cart owns a set of
// line items and applies discounts, delivery charges and taxes either per
// item or cart-wide, under an ordered set of mutual-exclusion rules, and
// produces an itemized financial summary.
//
// Item-level and cart-level applications are mutually exclusive: once any
// cart-level application succeeds the cart freezes for item-level mutation,
// and cart-level applications are rejected while any item carries a tax or
// delivery charge. Discounts always precede taxes and delivery charges.
package unicart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/unicart/money"
)

// Cart aggregates line items and cart-level adjustments. A Cart is not safe
// for concurrent use; callers needing that must serialize access externally.
type Cart struct {
	id  string
	cfg config

	items map[ID]*Item
	order []ID

	discounts       []DiscountEvent
	taxes           []TaxEvent
	deliveryCharges []DeliveryChargeEvent

	initiated  bool
	sxgyLocked bool

	// payable caches the cart-wide total once any cart-level adjustment has
	// been applied; before that the total is derived from item payables.
	payable    decimal.Decimal
	hasPayable bool
}

// New creates an empty cart with the given options.
func New(opts ...Option) *Cart {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cart{
		id:    uuid.NewString(),
		cfg:   cfg,
		items: make(map[ID]*Item),
	}
}

// ID returns the cart's instance identifier, used for log correlation.
func (c *Cart) ID() string { return c.id }

// Len returns the number of items in the cart.
func (c *Cart) Len() int { return len(c.items) }

// Item returns the line item with the given id.
func (c *Cart) Item(id any) (*Item, error) {
	itemID, err := NewID(id)
	if err != nil {
		return nil, err
	}
	it, ok := c.items[itemID]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return it, nil
}

// AddItem creates a line item and stores it in the cart. Adding is rejected
// once cart-level applications have been initiated. A duplicate id fails
// unless item override is enabled, in which case the item is replaced.
func (c *Cart) AddItem(id any, price decimal.Decimal, quantity int) error {
	it, err := NewItem(id, price, quantity)
	if err != nil {
		return err
	}
	if err := c.checkNotInitiated(id, "new item"); err != nil {
		return err
	}
	if _, exists := c.items[it.id]; exists {
		if !c.cfg.itemOverride {
			return &StateConflictError{ItemID: id, Reason: "item already exists"}
		}
	} else {
		c.order = append(c.order, it.id)
	}

	it.rounding = c.cfg.rounding
	c.items[it.id] = it
	c.logApplied("add item", it.id, zap.String("price", price.String()), zap.Int("quantity", quantity))

	return nil
}

// ApplyFlatDiscountOnItem applies a flat discount to a single item.
func (c *Cart) ApplyFlatDiscountOnItem(id any, amount decimal.Decimal) error {
	it, err := c.itemFor(id, "discount")
	if err != nil {
		return err
	}
	if err := c.checkStacking(id); err != nil {
		return err
	}
	if err := it.ApplyFlatDiscount(amount); err != nil {
		return err
	}
	c.logApplied("flat discount on item", it.id, zap.String("amount", amount.String()))

	return nil
}

// ApplyPercentageDiscountOnItem applies a percentage discount to a single
// item, optionally capped at upto.
func (c *Cart) ApplyPercentageDiscountOnItem(id any, percentage, upto decimal.Decimal) error {
	it, err := c.itemFor(id, "discount")
	if err != nil {
		return err
	}
	if err := c.checkStacking(id); err != nil {
		return err
	}
	if err := it.ApplyPercentageDiscount(percentage, upto); err != nil {
		return err
	}
	c.logApplied("percentage discount on item", it.id, zap.String("percentage", percentage.String()))

	return nil
}

// ApplyBxGyOnItem applies a buy-x-get-y-free promotion to a single item.
func (c *Cart) ApplyBxGyOnItem(id any, xQty, yQty int, label string) error {
	it, err := c.itemFor(id, "discount")
	if err != nil {
		return err
	}
	if err := c.checkStacking(id); err != nil {
		return err
	}
	if err := it.ApplyBxGy(xQty, yQty, label); err != nil {
		return err
	}
	c.logApplied("bxgy on item", it.id, zap.Int("x", xQty), zap.Int("y", yQty))

	return nil
}

// ApplyDeliveryChargeOnItem applies a delivery charge to a single item.
func (c *Cart) ApplyDeliveryChargeOnItem(id any, amount decimal.Decimal) error {
	it, err := c.itemFor(id, "delivery charge")
	if err != nil {
		return err
	}
	if err := it.ApplyDeliveryCharge(amount); err != nil {
		return err
	}
	c.logApplied("delivery charge on item", it.id, zap.String("amount", amount.String()))

	return nil
}

// ApplyTaxOnItem applies a tax to a single item. Pass an empty taxType for
// the default "general" label.
func (c *Cart) ApplyTaxOnItem(id any, rate decimal.Decimal, taxType string) error {
	it, err := c.itemFor(id, "tax")
	if err != nil {
		return err
	}
	if err := it.ApplyTax(rate, taxType); err != nil {
		return err
	}
	c.logApplied("tax on item", it.id, zap.String("rate", rate.String()))

	return nil
}

// ApplyFlatDiscountOnCart applies a flat discount to the cart-wide payable.
func (c *Cart) ApplyFlatDiscountOnCart(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &ValueError{Field: "discount", Reason: "must be greater than 0"}
	}
	if err := c.validateCartDiscount(); err != nil {
		return err
	}

	before := c.cartPayable()
	c.setPayable(money.Flat(before, amount))
	c.initiated = true
	c.discounts = append(c.discounts, FlatDiscountEvent{
		Discount: amount,
		Before:   before,
		After:    c.payable,
	})
	c.logApplied("flat discount on cart", ID{}, zap.String("amount", amount.String()))

	return nil
}

// ApplyPercentageDiscountOnCart applies a percentage discount to the
// cart-wide payable, optionally capped at upto.
func (c *Cart) ApplyPercentageDiscountOnCart(percentage, upto decimal.Decimal) error {
	if !percentage.IsPositive() {
		return &ValueError{Field: "percentage", Reason: "must be greater than 0"}
	}
	if upto.IsNegative() {
		return &ValueError{Field: "upto", Reason: "must not be negative"}
	}
	if err := c.validateCartDiscount(); err != nil {
		return err
	}

	before := c.cartPayable()
	c.setPayable(money.Percentage(before, percentage, upto))
	c.initiated = true
	c.discounts = append(c.discounts, PercentageDiscountEvent{
		Percentage: percentage,
		Upto:       upto,
		Before:     before,
		After:      c.payable,
	})
	c.logApplied("percentage discount on cart", ID{}, zap.String("percentage", percentage.String()))

	return nil
}

// ApplySpendGetOnCart applies a spend-at-least-x-get-y-off promotion. It may
// be used at most once per cart and reduces the payable only when the
// current cart payable meets the spend threshold; when a validated attempt
// consumes the single use is governed by the cart's SpendGetMode.
func (c *Cart) ApplySpendGetOnCart(spend, get decimal.Decimal) error {
	if !spend.IsPositive() {
		return &ValueError{Field: "spend", Reason: "must be greater than 0"}
	}
	if !get.IsPositive() {
		return &ValueError{Field: "get", Reason: "must be greater than 0"}
	}
	if spend.LessThan(get) {
		return &ValueError{Field: "spend", Reason: "must be at least the get amount"}
	}
	if c.sxgyLocked {
		return &StateConflictError{Reason: "a spend-get promotion has already been applied"}
	}
	if err := c.validateCartDiscount(); err != nil {
		return err
	}

	c.initiated = true

	before := c.cartPayable()
	effective := before.GreaterThanOrEqual(spend)
	if effective {
		c.setPayable(money.Flat(before, get))
		c.discounts = append(c.discounts, SpendGetEvent{
			Spend:  spend,
			Get:    get,
			Before: before,
			After:  c.payable,
		})
	}
	if c.cfg.spendGetMode == SpendGetLockOnValidate || effective {
		c.sxgyLocked = true
	}
	c.logApplied("spend-get on cart", ID{},
		zap.String("spend", spend.String()),
		zap.String("get", get.String()),
		zap.Bool("effective", effective))

	return nil
}

// ApplyDeliveryChargeOnCart adds a delivery charge to the cart-wide payable.
// At most one cart-level delivery charge may ever be applied.
func (c *Cart) ApplyDeliveryChargeOnCart(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &ValueError{Field: "delivery charge", Reason: "must be greater than 0"}
	}
	if err := c.checkNotEmpty(); err != nil {
		return err
	}
	if err := c.checkItemLevelApplications("delivery charge"); err != nil {
		return err
	}
	if len(c.deliveryCharges) > 0 {
		return &OrderingViolationError{
			Op:       "delivery charge",
			Conflict: "a delivery charge has already been applied",
		}
	}

	before := c.cartPayable()
	c.setPayable(before.Add(amount))
	c.initiated = true
	c.deliveryCharges = append(c.deliveryCharges, DeliveryChargeEvent{
		Before: before,
		After:  c.payable,
	})
	c.logApplied("delivery charge on cart", ID{}, zap.String("amount", amount.String()))

	return nil
}

// ApplyTaxOnCart adds a percentage tax on top of the cart-wide payable.
// Pass an empty taxType for the default "general" label. Taxes may stack.
func (c *Cart) ApplyTaxOnCart(rate decimal.Decimal, taxType string) error {
	if !rate.IsPositive() {
		return &ValueError{Field: "tax rate", Reason: "must be greater than 0"}
	}
	if err := c.checkNotEmpty(); err != nil {
		return err
	}
	if err := c.checkItemLevelApplications("tax"); err != nil {
		return err
	}
	if taxType == "" {
		taxType = DefaultTaxType
	}

	before := c.cartPayable()
	c.setPayable(money.Tax(before, rate))
	c.initiated = true
	c.taxes = append(c.taxes, TaxEvent{
		Type:   taxType,
		Rate:   rate,
		Before: before,
		After:  c.payable,
	})
	c.logApplied("tax on cart", ID{}, zap.String("rate", rate.String()))

	return nil
}

// Discounts returns a copy of the cart-level discount audit log.
func (c *Cart) Discounts() []DiscountEvent {
	return append([]DiscountEvent(nil), c.discounts...)
}

// Taxes returns a copy of the cart-level tax audit log.
func (c *Cart) Taxes() []TaxEvent {
	return append([]TaxEvent(nil), c.taxes...)
}

// DeliveryCharges returns a copy of the cart-level delivery charge log.
func (c *Cart) DeliveryCharges() []DeliveryChargeEvent {
	return append([]DeliveryChargeEvent(nil), c.deliveryCharges...)
}

// itemFor resolves an item for an item-level application, enforcing the
// cart-initiation freeze before the lookup.
func (c *Cart) itemFor(id any, op string) (*Item, error) {
	if err := c.checkNotInitiated(id, op); err != nil {
		return nil, err
	}
	return c.Item(id)
}

// cartPayable returns the baseline for cart-level math: the cached
// cart-wide payable once any cart-level adjustment has been applied,
// otherwise the sum of all item payables.
func (c *Cart) cartPayable() decimal.Decimal {
	if c.hasPayable {
		return c.payable
	}
	sum := decimal.Zero
	for _, id := range c.order {
		sum = sum.Add(c.items[id].payable)
	}
	return sum
}

func (c *Cart) setPayable(v decimal.Decimal) {
	c.payable = v
	c.hasPayable = true
}

func (c *Cart) anyItemHasDiscount() bool {
	for _, it := range c.items {
		if it.HasDiscount() {
			return true
		}
	}
	return false
}

func (c *Cart) logApplied(op string, itemID ID, fields ...zap.Field) {
	if itemID.IsZero() {
		fields = append([]zap.Field{zap.String("cart", c.id)}, fields...)
	} else {
		fields = append([]zap.Field{zap.String("cart", c.id), zap.String("item", itemID.String())}, fields...)
	}
	c.cfg.logger.Debug("applied "+op, fields...)
}
