package services

import (
	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/shopspring/decimal"
)

// Rates are the percentages applied when totalling an order.
// Zero value = no discount, no tax, no gratuity, no service charge.
type Rates struct {
	DiscountAmount  decimal.Decimal // ส่วนลดเป็นจำนวนเงิน
	DiscountPercent decimal.Decimal // หรือเป็น % ของ subtotal (ใช้ตัวที่ไม่เป็นศูนย์)
	TaxRate         decimal.Decimal
	GratuityRate    decimal.Decimal
	ServiceRate     decimal.Decimal
}

type OrderTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	GratuityAmount decimal.Decimal `json:"gratuityAmount"`
	ServiceCharge  decimal.Decimal `json:"serviceCharge"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

// CalculateOrderTotals is a pure function over the item lines and rates.
// Tax, gratuity and service charge are computed off the DISCOUNTED subtotal,
// never off the raw one. Every figure is rounded to 2 decimals
// (decimal.Round = half away from zero).
func CalculateOrderTotals(items []entity.OrderItem, rates Rates) OrderTotals {
	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].LineTotal())
	}
	subtotal = subtotal.Round(2)

	discount := rates.DiscountAmount
	if discount.IsZero() && !rates.DiscountPercent.IsZero() {
		discount = subtotal.Mul(rates.DiscountPercent)
	}
	discount = discount.Round(2)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	base := subtotal.Sub(discount)
	tax := base.Mul(rates.TaxRate).Round(2)
	gratuity := base.Mul(rates.GratuityRate).Round(2)
	service := base.Mul(rates.ServiceRate).Round(2)

	total := subtotal.Sub(discount).Add(tax).Add(gratuity).Add(service).Round(2)

	return OrderTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		GratuityAmount: gratuity,
		ServiceCharge:  service,
		TotalAmount:    total,
	}
}
