package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySummary and DailySummary are derived data, loaded from CSV imports
// or rebuilt from completed orders. Keyed by a derived string id so that
// re-importing the same period overwrites instead of duplicating.
type MonthlySummary struct {
	ID    string    `gorm:"primaryKey" json:"id"` // monthly_<YYYY-MM-01>
	Month time.Time `gorm:"index" json:"month"`

	ToGoSales     decimal.Decimal `gorm:"type:decimal(14,2)" json:"toGoSales"`
	DineInSales   decimal.Decimal `gorm:"type:decimal(14,2)" json:"dineInSales"`
	TaxCollected  decimal.Decimal `gorm:"type:decimal(14,2)" json:"taxCollected"`
	GrossSale     decimal.Decimal `gorm:"type:decimal(14,2)" json:"grossSale"`
	Gratuity      decimal.Decimal `gorm:"type:decimal(14,2)" json:"gratuity"`
	NetSale       decimal.Decimal `gorm:"type:decimal(14,2)" json:"netSale"`
	CreditTotal   decimal.Decimal `gorm:"type:decimal(14,2)" json:"creditTotal"`
	CashDeposited decimal.Decimal `gorm:"type:decimal(14,2)" json:"cashDeposited"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DailySummary struct {
	ID   string    `gorm:"primaryKey" json:"id"` // daily_<YYYY-MM-DD>
	Date time.Time `gorm:"index" json:"date"`

	ToGoSales     decimal.Decimal `gorm:"type:decimal(14,2)" json:"toGoSales"`
	DineInSales   decimal.Decimal `gorm:"type:decimal(14,2)" json:"dineInSales"`
	TaxCollected  decimal.Decimal `gorm:"type:decimal(14,2)" json:"taxCollected"`
	GrossSale     decimal.Decimal `gorm:"type:decimal(14,2)" json:"grossSale"`
	Gratuity      decimal.Decimal `gorm:"type:decimal(14,2)" json:"gratuity"`
	NetSale       decimal.Decimal `gorm:"type:decimal(14,2)" json:"netSale"`
	CreditTotal   decimal.Decimal `gorm:"type:decimal(14,2)" json:"creditTotal"`
	CashDeposited decimal.Decimal `gorm:"type:decimal(14,2)" json:"cashDeposited"`
	OrderCount    int             `json:"orderCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransactionRecord มาจาก CSV อย่างเดียว insert ตรง ๆ ไม่ dedup
type TransactionRecord struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Date          time.Time       `gorm:"index" json:"date"`
	OrderNumber   string          `json:"orderNumber"`
	OrderType     string          `json:"orderType"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax"`
	Gratuity      decimal.Decimal `gorm:"type:decimal(12,2)" json:"gratuity"`
	PaymentMethod string          `json:"paymentMethod"`

	CreatedAt time.Time `json:"createdAt"`
}
