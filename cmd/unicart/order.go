package main

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// order is the decoded order file: items to add, then operations to apply
// in sequence.
type order struct {
	Items      []orderItem
	Operations []operation
}

type orderItem struct {
	ID       any
	Price    decimal.Decimal
	Quantity int
}

// operation is a single pricing operation from the order file. Only the
// fields relevant to the named operation are populated.
type operation struct {
	Name       string
	ItemID     any
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Upto       decimal.Decimal
	Rate       decimal.Decimal
	TaxType    string
	XQty       int
	YQty       int
	Label      string
	Spend      decimal.Decimal
	Get        decimal.Decimal
}

func decodeOrder(data []byte) (*order, error) {
	var o order
	d := jx.DecodeBytes(data)

	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				it, err := decodeItem(d)
				if err != nil {
					return err
				}
				o.Items = append(o.Items, it)
				return nil
			})
		case "operations":
			return d.Arr(func(d *jx.Decoder) error {
				op, err := decodeOperation(d)
				if err != nil {
					return err
				}
				o.Operations = append(o.Operations, op)
				return nil
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, err
	}

	if len(o.Items) == 0 {
		return nil, errors.New("order file has no items")
	}

	return &o, nil
}

func decodeItem(d *jx.Decoder) (orderItem, error) {
	var it orderItem
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			id, err := decodeID(d)
			if err != nil {
				return err
			}
			it.ID = id
			return nil
		case "price":
			p, err := decodeDecimal(d)
			if err != nil {
				return err
			}
			it.Price = p
			return nil
		case "quantity":
			q, err := d.Int()
			if err != nil {
				return err
			}
			it.Quantity = q
			return nil
		default:
			return d.Skip()
		}
	})
	return it, err
}

func decodeOperation(d *jx.Decoder) (operation, error) {
	var op operation
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "op":
			s, err := d.Str()
			if err != nil {
				return err
			}
			op.Name = s
			return nil
		case "id":
			id, err := decodeID(d)
			if err != nil {
				return err
			}
			op.ItemID = id
			return nil
		case "type":
			s, err := d.Str()
			if err != nil {
				return err
			}
			op.TaxType = s
			return nil
		case "label":
			s, err := d.Str()
			if err != nil {
				return err
			}
			op.Label = s
			return nil
		case "xQuantity":
			v, err := d.Int()
			op.XQty = v
			return err
		case "yQuantity":
			v, err := d.Int()
			op.YQty = v
			return err
		case "amount", "percentage", "upto", "rate", "spend", "get":
			v, err := decodeDecimal(d)
			if err != nil {
				return err
			}
			switch key {
			case "amount":
				op.Amount = v
			case "percentage":
				op.Percentage = v
			case "upto":
				op.Upto = v
			case "rate":
				op.Rate = v
			case "spend":
				op.Spend = v
			case "get":
				op.Get = v
			}
			return nil
		default:
			return d.Skip()
		}
	})
	return op, err
}

// decodeID accepts an integer or string item id, matching the cart's own ID
// rules. Fractional numbers are passed through as floats so the cart can
// reject them with its canonical error.
func decodeID(d *jx.Decoder) (any, error) {
	switch d.Next() {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return nil, err
		}
		if n.IsInt() {
			return n.Int64()
		}
		return n.Float64()
	default:
		return nil, errors.New("item id must be an integer or string")
	}
}

func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Decimal{}, err
	}
	v, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "parse decimal")
	}
	return v, nil
}
