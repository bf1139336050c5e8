package unicart

import (
	"fmt"
	"slices"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/unicart/money"
)

// ItemDetail is the read-only snapshot of a single line item. Event slices
// are nil when no event of that kind was applied.
type ItemDetail struct {
	ID              any
	Price           decimal.Decimal
	Quantity        int
	Discounts       []DiscountEvent
	Taxes           []TaxEvent
	DeliveryCharges []DeliveryChargeEvent
	OriginalPayable decimal.Decimal
	PayableAmount   decimal.Decimal
	Metadata        map[string]any
}

// Summary is the externally visible snapshot of the whole cart. Consumers
// such as invoice renderers read it without reaching back into the cart.
type Summary struct {
	Items           []ItemDetail
	Discounts       []DiscountEvent
	Taxes           []TaxEvent
	DeliveryCharges []DeliveryChargeEvent
	OriginalPayable decimal.Decimal
	PayableAmount   decimal.Decimal
}

// Detail returns the item's snapshot with all payables passed through the
// configured rounding mode. Internal state keeps full precision.
func (it *Item) Detail() ItemDetail {
	mode := it.rounding

	d := ItemDetail{
		ID:              it.id.Value(),
		Price:           it.price,
		Quantity:        it.quantity,
		OriginalPayable: money.Round(mode, it.originalPayable),
		PayableAmount:   money.Round(mode, it.payable),
	}
	if len(it.discounts) > 0 {
		d.Discounts = roundDiscountEvents(mode, it.discounts)
	}
	if len(it.taxes) > 0 {
		d.Taxes = roundTaxEvents(mode, it.taxes)
	}
	if len(it.deliveryCharges) > 0 {
		d.DeliveryCharges = roundDeliveryEvents(mode, it.deliveryCharges)
	}
	if len(it.metadata) > 0 {
		meta := make(map[string]any, len(it.metadata))
		for k, v := range it.metadata {
			meta[k] = v
		}
		d.Metadata = meta
	}

	return d
}

// Summary aggregates all line items plus cart-level adjustments into one
// snapshot. Calling it repeatedly without intervening mutation yields
// identical results.
func (c *Cart) Summary() Summary {
	mode := c.cfg.rounding

	items := make([]ItemDetail, 0, len(c.order))
	original := decimal.Zero
	for _, id := range c.order {
		it := c.items[id]
		items = append(items, it.Detail())
		original = original.Add(it.originalPayable)
	}

	s := Summary{
		Items:           items,
		OriginalPayable: money.Round(mode, original),
		PayableAmount:   money.Round(mode, c.cartPayable()),
	}
	if len(c.discounts) > 0 {
		s.Discounts = roundDiscountEvents(mode, c.discounts)
	}
	if len(c.taxes) > 0 {
		s.Taxes = roundTaxEvents(mode, c.taxes)
	}
	if len(c.deliveryCharges) > 0 {
		s.DeliveryCharges = roundDeliveryEvents(mode, c.deliveryCharges)
	}

	return s
}

func roundDiscountEvents(mode money.Rounding, events []DiscountEvent) []DiscountEvent {
	out := make([]DiscountEvent, len(events))
	for i, ev := range events {
		switch e := ev.(type) {
		case FlatDiscountEvent:
			e.Before = money.Round(mode, e.Before)
			e.After = money.Round(mode, e.After)
			out[i] = e
		case PercentageDiscountEvent:
			e.Before = money.Round(mode, e.Before)
			e.After = money.Round(mode, e.After)
			out[i] = e
		case BxGyEvent:
			e.Before = money.Round(mode, e.Before)
			e.After = money.Round(mode, e.After)
			out[i] = e
		case SpendGetEvent:
			e.Before = money.Round(mode, e.Before)
			e.After = money.Round(mode, e.After)
			out[i] = e
		default:
			out[i] = ev
		}
	}
	return out
}

func roundTaxEvents(mode money.Rounding, events []TaxEvent) []TaxEvent {
	out := make([]TaxEvent, len(events))
	for i, e := range events {
		e.Before = money.Round(mode, e.Before)
		e.After = money.Round(mode, e.After)
		out[i] = e
	}
	return out
}

func roundDeliveryEvents(mode money.Rounding, events []DeliveryChargeEvent) []DeliveryChargeEvent {
	out := make([]DeliveryChargeEvent, len(events))
	for i, e := range events {
		e.Before = money.Round(mode, e.Before)
		e.After = money.Round(mode, e.After)
		out[i] = e
	}
	return out
}

// JSON renders the summary as a JSON document, omitting absent sections.
func (s Summary) JSON() []byte {
	e := &jx.Encoder{}
	s.Encode(e)
	return e.Bytes()
}

// Encode writes the summary to the given encoder.
func (s Summary) Encode(e *jx.Encoder) {
	e.ObjStart()

	e.FieldStart("items")
	e.ArrStart()
	for _, it := range s.Items {
		it.Encode(e)
	}
	e.ArrEnd()

	if len(s.Discounts) > 0 {
		e.FieldStart("discounts")
		encodeDiscountEvents(e, s.Discounts)
	}
	if len(s.Taxes) > 0 {
		e.FieldStart("taxes")
		encodeTaxEvents(e, s.Taxes)
	}
	if len(s.DeliveryCharges) > 0 {
		e.FieldStart("deliveryCharge")
		encodeDeliveryEvents(e, s.DeliveryCharges)
	}

	e.FieldStart("originalPayable")
	encodeDecimal(e, s.OriginalPayable)
	e.FieldStart("payableAmount")
	encodeDecimal(e, s.PayableAmount)

	e.ObjEnd()
}

// JSON renders the item detail as a JSON document.
func (d ItemDetail) JSON() []byte {
	e := &jx.Encoder{}
	d.Encode(e)
	return e.Bytes()
}

// Encode writes the item detail to the given encoder.
func (d ItemDetail) Encode(e *jx.Encoder) {
	e.ObjStart()

	e.FieldStart("id")
	encodeID(e, d.ID)
	e.FieldStart("price")
	encodeDecimal(e, d.Price)
	e.FieldStart("quantity")
	e.Int(d.Quantity)

	if len(d.Discounts) > 0 {
		e.FieldStart("discounts")
		encodeDiscountEvents(e, d.Discounts)
	}
	if len(d.Taxes) > 0 {
		e.FieldStart("taxes")
		encodeTaxEvents(e, d.Taxes)
	}
	if len(d.DeliveryCharges) > 0 {
		e.FieldStart("deliveryCharge")
		encodeDeliveryEvents(e, d.DeliveryCharges)
	}

	e.FieldStart("originalPayable")
	encodeDecimal(e, d.OriginalPayable)
	e.FieldStart("payableAmount")
	encodeDecimal(e, d.PayableAmount)

	if len(d.Metadata) > 0 {
		e.FieldStart("metadata")
		encodeMetadata(e, d.Metadata)
	}

	e.ObjEnd()
}

func encodeDiscountEvents(e *jx.Encoder, events []DiscountEvent) {
	e.ArrStart()
	for _, ev := range events {
		e.ObjStart()
		e.FieldStart("type")
		e.Str(string(ev.Kind()))

		switch d := ev.(type) {
		case FlatDiscountEvent:
			e.FieldStart("discount")
			encodeDecimal(e, d.Discount)
		case PercentageDiscountEvent:
			e.FieldStart("percentage")
			encodeDecimal(e, d.Percentage)
			if d.Upto.IsPositive() {
				e.FieldStart("upto")
				encodeDecimal(e, d.Upto)
			}
		case BxGyEvent:
			e.FieldStart("label")
			e.Str(d.Label)
			e.FieldStart("xQuantity")
			e.Int(d.XQty)
			e.FieldStart("yQuantity")
			e.Int(d.YQty)
		case SpendGetEvent:
			e.FieldStart("spend")
			encodeDecimal(e, d.Spend)
			e.FieldStart("get")
			encodeDecimal(e, d.Get)
		}

		before, after := ev.Payables()
		e.FieldStart("beforeDiscount")
		encodeDecimal(e, before)
		e.FieldStart("afterDiscount")
		encodeDecimal(e, after)
		e.ObjEnd()
	}
	e.ArrEnd()
}

func encodeTaxEvents(e *jx.Encoder, events []TaxEvent) {
	e.ArrStart()
	for _, ev := range events {
		e.ObjStart()
		e.FieldStart("type")
		e.Str(ev.Type)
		e.FieldStart("rate")
		encodeDecimal(e, ev.Rate)
		e.FieldStart("beforeTax")
		encodeDecimal(e, ev.Before)
		e.FieldStart("afterTax")
		encodeDecimal(e, ev.After)
		e.ObjEnd()
	}
	e.ArrEnd()
}

func encodeDeliveryEvents(e *jx.Encoder, events []DeliveryChargeEvent) {
	e.ArrStart()
	for _, ev := range events {
		e.ObjStart()
		e.FieldStart("beforeDeliveryCharge")
		encodeDecimal(e, ev.Before)
		e.FieldStart("afterDeliveryCharge")
		encodeDecimal(e, ev.After)
		e.ObjEnd()
	}
	e.ArrEnd()
}

func encodeMetadata(e *jx.Encoder, meta map[string]any) {
	e.ObjStart()
	for _, k := range sortedKeys(meta) {
		e.FieldStart(k)
		switch v := meta[k].(type) {
		case string:
			e.Str(v)
		case bool:
			e.Bool(v)
		case int:
			e.Int(v)
		case int64:
			e.Int64(v)
		case float64:
			e.Float64(v)
		case decimal.Decimal:
			encodeDecimal(e, v)
		default:
			e.Str(fmt.Sprint(v))
		}
	}
	e.ObjEnd()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func encodeID(e *jx.Encoder, id any) {
	switch v := id.(type) {
	case int64:
		e.Int64(v)
	case string:
		e.Str(v)
	default:
		e.Str(fmt.Sprint(v))
	}
}

func encodeDecimal(e *jx.Encoder, d decimal.Decimal) {
	e.Num(jx.Num(d.String()))
}
