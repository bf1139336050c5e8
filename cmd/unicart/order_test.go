package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/unicart"
)

func TestDecodeOrder(t *testing.T) {
	data := []byte(`{
		"items": [
			{"id": 1, "price": 1399, "quantity": 2},
			{"id": "sku-2", "price": 2499, "quantity": 1}
		],
		"operations": [
			{"op": "percentageDiscountOnCart", "percentage": 10, "upto": 200},
			{"op": "bxgyOnItem", "id": 1, "xQuantity": 2, "yQuantity": 1, "label": "b2g1"},
			{"op": "taxOnCart", "rate": 18, "type": "gst"}
		]
	}`)

	o, err := decodeOrder(data)
	require.NoError(t, err)

	require.Len(t, o.Items, 2)
	assert.Equal(t, int64(1), o.Items[0].ID)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "1399", o.Items[0].Price.String())
	assert.Equal(t, "sku-2", o.Items[1].ID)

	require.Len(t, o.Operations, 3)
	assert.Equal(t, "percentageDiscountOnCart", o.Operations[0].Name)
	assert.Equal(t, "10", o.Operations[0].Percentage.String())
	assert.Equal(t, "200", o.Operations[0].Upto.String())
	assert.Equal(t, int64(1), o.Operations[1].ItemID)
	assert.Equal(t, 2, o.Operations[1].XQty)
	assert.Equal(t, "b2g1", o.Operations[1].Label)
	assert.Equal(t, "gst", o.Operations[2].TaxType)
}

func TestDecodeOrder_NoItems(t *testing.T) {
	_, err := decodeOrder([]byte(`{"items": [], "operations": []}`))
	require.Error(t, err)
}

func TestApplyOperations(t *testing.T) {
	data := []byte(`{
		"items": [{"id": 1, "price": 100, "quantity": 1}],
		"operations": [
			{"op": "flatDiscountOnItem", "id": 1, "amount": 20},
			{"op": "unknownOp"}
		]
	}`)

	o, err := decodeOrder(data)
	require.NoError(t, err)

	cart := unicart.New()
	for _, it := range o.Items {
		require.NoError(t, cart.AddItem(it.ID, it.Price, it.Quantity))
	}

	require.NoError(t, applyOperation(cart, o.Operations[0]))
	require.Error(t, applyOperation(cart, o.Operations[1]))

	s := cart.Summary()
	assert.Equal(t, "80", s.PayableAmount.String())
}
