package unicart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustItem(t *testing.T, id any, price string, qty int) *Item {
	t.Helper()
	it, err := NewItem(id, dec(price), qty)
	require.NoError(t, err)
	return it
}

func TestNewItem(t *testing.T) {
	tests := []struct {
		name     string
		id       any
		price    string
		quantity int
		wantErr  bool
	}{
		{name: "valid", id: 1, price: "99.99", quantity: 2},
		{name: "string id", id: "sku-1", price: "10", quantity: 1},
		{name: "zero price", id: 1, price: "0", quantity: 1, wantErr: true},
		{name: "negative price", id: 1, price: "-5", quantity: 1, wantErr: true},
		{name: "zero quantity", id: 1, price: "10", quantity: 0, wantErr: true},
		{name: "negative quantity", id: 1, price: "10", quantity: -3, wantErr: true},
		{name: "float id", id: 1.5, price: "10", quantity: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := NewItem(tt.id, dec(tt.price), tt.quantity)
			if tt.wantErr {
				var creation *ItemCreationError
				require.ErrorAs(t, err, &creation)
				assert.Nil(t, it)
				return
			}
			require.NoError(t, err)
			want := dec(tt.price).Mul(decimal.NewFromInt(int64(tt.quantity)))
			assert.True(t, want.Equal(it.OriginalPayable()))
			assert.True(t, want.Equal(it.Payable()))
		})
	}
}

func TestItem_ApplyFlatDiscount(t *testing.T) {
	it := mustItem(t, 1, "100", 2)

	require.NoError(t, it.ApplyFlatDiscount(dec("50")))
	assert.True(t, dec("150").Equal(it.Payable()))
	assert.True(t, it.HasDiscount())

	// Discounts stack on a standalone item.
	require.NoError(t, it.ApplyFlatDiscount(dec("25")))
	assert.True(t, dec("125").Equal(it.Payable()))
	assert.Len(t, it.Discounts(), 2)

	// Original payable never moves.
	assert.True(t, dec("200").Equal(it.OriginalPayable()))
}

func TestItem_ApplyFlatDiscount_NonPositive(t *testing.T) {
	it := mustItem(t, 1, "100", 1)

	var valueErr *ValueError
	require.ErrorAs(t, it.ApplyFlatDiscount(dec("0")), &valueErr)
	require.ErrorAs(t, it.ApplyFlatDiscount(dec("-10")), &valueErr)
	assert.True(t, dec("100").Equal(it.Payable()))
	assert.Empty(t, it.Discounts())
}

func TestItem_ApplyPercentageDiscount(t *testing.T) {
	tests := []struct {
		name       string
		percentage string
		upto       string
		want       string
		wantErr    bool
	}{
		{name: "plain", percentage: "10", upto: "0", want: "180"},
		{name: "capped", percentage: "50", upto: "20", want: "180"},
		{name: "zero percentage", percentage: "0", upto: "0", wantErr: true},
		{name: "negative upto", percentage: "10", upto: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := mustItem(t, 1, "100", 2)
			err := it.ApplyPercentageDiscount(dec(tt.percentage), dec(tt.upto))
			if tt.wantErr {
				var valueErr *ValueError
				require.ErrorAs(t, err, &valueErr)
				assert.True(t, dec("200").Equal(it.Payable()))
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(it.Payable()), "expected %s, got %s", tt.want, it.Payable())
		})
	}
}

func TestItem_DiscountAfterTaxFails(t *testing.T) {
	it := mustItem(t, 3, "100", 2)
	require.NoError(t, it.ApplyTax(dec("18"), "gst"))
	payable := it.Payable()

	var ordering *OrderingViolationError
	require.ErrorAs(t, it.ApplyFlatDiscount(dec("10")), &ordering)
	require.ErrorAs(t, it.ApplyPercentageDiscount(dec("10"), decimal.Zero), &ordering)
	require.ErrorAs(t, it.ApplyBxGy(1, 1, "b1g1"), &ordering)

	// Failed calls leave the payable and the audit log untouched.
	assert.True(t, payable.Equal(it.Payable()))
	assert.Empty(t, it.Discounts())
	assert.Len(t, it.Taxes(), 1)
}

func TestItem_DiscountAfterDeliveryChargeFails(t *testing.T) {
	it := mustItem(t, 1, "100", 1)
	require.NoError(t, it.ApplyDeliveryCharge(dec("40")))

	var ordering *OrderingViolationError
	require.ErrorAs(t, it.ApplyFlatDiscount(dec("10")), &ordering)
	assert.True(t, dec("140").Equal(it.Payable()))
}

func TestItem_ApplyBxGy(t *testing.T) {
	it := mustItem(t, 1, "100", 10)

	require.NoError(t, it.ApplyBxGy(2, 1, "buy2get1"))
	assert.True(t, dec("700").Equal(it.Payable()), "got %s", it.Payable())
	assert.True(t, it.IsBxGyApplied())
	assert.True(t, it.HasDiscount())
}

func TestItem_BxGyExclusivity(t *testing.T) {
	t.Run("bxgy after discount", func(t *testing.T) {
		it := mustItem(t, 1, "100", 10)
		require.NoError(t, it.ApplyFlatDiscount(dec("10")))

		var ordering *OrderingViolationError
		require.ErrorAs(t, it.ApplyBxGy(2, 1, ""), &ordering)
		assert.False(t, it.IsBxGyApplied())
	})

	t.Run("discount after bxgy", func(t *testing.T) {
		it := mustItem(t, 1, "100", 10)
		require.NoError(t, it.ApplyBxGy(2, 1, ""))

		var ordering *OrderingViolationError
		require.ErrorAs(t, it.ApplyFlatDiscount(dec("10")), &ordering)
		assert.True(t, dec("700").Equal(it.Payable()))
	})

	t.Run("second bxgy", func(t *testing.T) {
		it := mustItem(t, 1, "100", 10)
		require.NoError(t, it.ApplyBxGy(2, 1, ""))

		var ordering *OrderingViolationError
		require.ErrorAs(t, it.ApplyBxGy(2, 1, ""), &ordering)
		assert.Len(t, it.Discounts(), 1)
	})
}

func TestItem_BxGyValueChecks(t *testing.T) {
	it := mustItem(t, 1, "100", 2)

	var valueErr *ValueError
	require.ErrorAs(t, it.ApplyBxGy(0, 1, ""), &valueErr)
	require.ErrorAs(t, it.ApplyBxGy(2, 0, ""), &valueErr)
	// Quantity 2 cannot satisfy a 2+1 set.
	require.ErrorAs(t, it.ApplyBxGy(2, 1, ""), &valueErr)
	assert.True(t, dec("200").Equal(it.Payable()))
}

func TestItem_DeliveryChargeOnce(t *testing.T) {
	it := mustItem(t, 1, "100", 1)
	require.NoError(t, it.ApplyDeliveryCharge(dec("30")))
	assert.True(t, dec("130").Equal(it.Payable()))

	var ordering *OrderingViolationError
	require.ErrorAs(t, it.ApplyDeliveryCharge(dec("30")), &ordering)
	assert.Len(t, it.DeliveryCharges(), 1)
	assert.True(t, dec("130").Equal(it.Payable()))
}

func TestItem_TaxesStack(t *testing.T) {
	it := mustItem(t, 1, "100", 1)
	require.NoError(t, it.ApplyTax(dec("10"), ""))
	require.NoError(t, it.ApplyTax(dec("5"), "service"))

	taxes := it.Taxes()
	require.Len(t, taxes, 2)
	assert.Equal(t, DefaultTaxType, taxes[0].Type)
	assert.Equal(t, "service", taxes[1].Type)
	assert.True(t, dec("115.5").Equal(it.Payable()), "got %s", it.Payable())

	var valueErr *ValueError
	require.ErrorAs(t, it.ApplyTax(dec("0"), ""), &valueErr)
}

func TestItem_AuditLogAppendOnly(t *testing.T) {
	it := mustItem(t, 1, "100", 4)

	var lengths []int
	steps := []func() error{
		func() error { return it.ApplyFlatDiscount(dec("10")) },
		func() error { return it.ApplyPercentageDiscount(dec("5"), decimal.Zero) },
		func() error { return it.ApplyDeliveryCharge(dec("20")) },
		func() error { return it.ApplyTax(dec("18"), "") },
	}
	for _, step := range steps {
		require.NoError(t, step())
		lengths = append(lengths, len(it.Discounts())+len(it.Taxes())+len(it.DeliveryCharges()))
	}

	for i := 1; i < len(lengths); i++ {
		assert.Greater(t, lengths[i], lengths[i-1], "event logs must only grow")
	}

	// Before/after chain is contiguous across the discount log.
	discounts := it.Discounts()
	for i := 1; i < len(discounts); i++ {
		_, prevAfter := discounts[i-1].Payables()
		before, _ := discounts[i].Payables()
		assert.True(t, prevAfter.Equal(before))
	}
}

func TestItem_Metadata(t *testing.T) {
	it := mustItem(t, 1, "100", 1)

	_, ok := it.Meta("color")
	assert.False(t, ok)

	it.SetMeta("color", "red")
	it.SetMeta("gift", true)

	v, ok := it.Meta("color")
	require.True(t, ok)
	assert.Equal(t, "red", v)

	// Metadata never touches pricing.
	assert.True(t, dec("100").Equal(it.Payable()))
}
