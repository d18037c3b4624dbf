package services

import (
	"testing"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func items(lines ...entity.OrderItem) []entity.OrderItem { return lines }

func line(price string, qty int, mods ...string) entity.OrderItem {
	oi := entity.OrderItem{UnitPrice: d(price), Quantity: qty}
	for i, m := range mods {
		oi.Modifiers = append(oi.Modifiers, entity.Modifier{ID: uint(i + 1), Name: "mod", Price: d(m)})
	}
	return oi
}

func TestCalculateOrderTotals_Scenario(t *testing.T) {
	// subtotal $100, 8% tax, 20% gratuity, no discount
	got := CalculateOrderTotals(
		items(line("25.00", 4)),
		Rates{TaxRate: d("0.08"), GratuityRate: d("0.20")},
	)

	assert.True(t, got.Subtotal.Equal(d("100.00")), "subtotal: %s", got.Subtotal)
	assert.True(t, got.TaxAmount.Equal(d("8.00")), "tax: %s", got.TaxAmount)
	assert.True(t, got.GratuityAmount.Equal(d("20.00")), "gratuity: %s", got.GratuityAmount)
	assert.True(t, got.TotalAmount.Equal(d("128.00")), "total: %s", got.TotalAmount)
}

func TestCalculateOrderTotals_Invariant(t *testing.T) {
	cases := []struct {
		name  string
		items []entity.OrderItem
		rates Rates
	}{
		{"plain", items(line("9.99", 3), line("4.25", 1)), Rates{TaxRate: d("0.08")}},
		{"discounted", items(line("12.50", 2)), Rates{DiscountAmount: d("5.00"), TaxRate: d("0.08"), GratuityRate: d("0.20")}},
		{"percent discount", items(line("18.00", 1), line("3.75", 4)), Rates{DiscountPercent: d("0.10"), TaxRate: d("0.0825"), ServiceRate: d("0.05")}},
		{"modifiers", items(line("11.00", 2, "1.50", "0.75")), Rates{TaxRate: d("0.08"), GratuityRate: d("0.18")}},
		{"empty", nil, Rates{TaxRate: d("0.08")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateOrderTotals(tc.items, tc.rates)

			want := got.Subtotal.Sub(got.DiscountAmount).
				Add(got.TaxAmount).Add(got.GratuityAmount).Add(got.ServiceCharge)
			assert.True(t, got.TotalAmount.Equal(want),
				"total %s != subtotal-discount+tax+gratuity+service %s", got.TotalAmount, want)
		})
	}
}

func TestCalculateOrderTotals_PercentagesOffDiscountedSubtotal(t *testing.T) {
	got := CalculateOrderTotals(
		items(line("50.00", 2)), // subtotal 100
		Rates{DiscountAmount: d("20.00"), TaxRate: d("0.10"), GratuityRate: d("0.20"), ServiceRate: d("0.05")},
	)

	// ทุก % คิดจาก 80 ไม่ใช่ 100
	assert.True(t, got.TaxAmount.Equal(d("8.00")), "tax: %s", got.TaxAmount)
	assert.True(t, got.GratuityAmount.Equal(d("16.00")), "gratuity: %s", got.GratuityAmount)
	assert.True(t, got.ServiceCharge.Equal(d("4.00")), "service: %s", got.ServiceCharge)
	assert.True(t, got.TotalAmount.Equal(d("108.00")), "total: %s", got.TotalAmount)
}

func TestCalculateOrderTotals_Idempotent(t *testing.T) {
	in := items(line("7.77", 3, "0.33"), line("12.01", 2))
	rates := Rates{DiscountPercent: d("0.15"), TaxRate: d("0.0825"), GratuityRate: d("0.18")}

	first := CalculateOrderTotals(in, rates)
	for i := 0; i < 10; i++ {
		again := CalculateOrderTotals(in, rates)
		require.True(t, first.TotalAmount.Equal(again.TotalAmount))
		require.True(t, first.TaxAmount.Equal(again.TaxAmount))
	}
}

func TestCalculateOrderTotals_DiscountCappedAtSubtotal(t *testing.T) {
	got := CalculateOrderTotals(
		items(line("10.00", 1)),
		Rates{DiscountAmount: d("25.00"), TaxRate: d("0.08")},
	)
	assert.True(t, got.DiscountAmount.Equal(d("10.00")))
	assert.True(t, got.TotalAmount.Equal(d("0.00")), "total: %s", got.TotalAmount)
}

func TestCalculateOrderTotals_TwoDecimalRounding(t *testing.T) {
	got := CalculateOrderTotals(
		items(line("3.33", 3)), // 9.99
		Rates{TaxRate: d("0.0825")},
	)
	// 9.99 * 0.0825 = 0.824175 → 0.82
	assert.True(t, got.TaxAmount.Equal(d("0.82")), "tax: %s", got.TaxAmount)
	assert.True(t, got.TotalAmount.Equal(d("10.81")), "total: %s", got.TotalAmount)
}
