package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is a value object composed from a completed order at read time.
// It is never persisted.
type Receipt struct {
	Header ReceiptHeader `json:"header"`

	OrderID     uint      `json:"orderId"`
	OrderNumber int       `json:"orderNumber"`
	OrderType   string    `json:"orderType"`
	TableNumber *int      `json:"tableNumber,omitempty"`
	ServerName  string    `json:"serverName"`
	CompletedAt time.Time `json:"completedAt"`

	Items []ReceiptLine `json:"items"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	GratuityAmount decimal.Decimal `json:"gratuityAmount"`
	ServiceCharge  decimal.Decimal `json:"serviceCharge"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	PaymentMethod  string          `json:"paymentMethod"`
}

type ReceiptHeader struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type ReceiptLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Modifiers []string        `json:"modifiers,omitempty"`
	Total     decimal.Decimal `json:"total"`
}
