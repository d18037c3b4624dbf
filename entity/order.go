package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	OrderNumber int    `gorm:"uniqueIndex;not null" json:"orderNumber"`
	OrderType   string `gorm:"not null" json:"orderType"` // dine_in | take_out
	Status      string `gorm:"not null;default:pending;index" json:"status"`

	TableID *uint            `json:"tableId"`
	Table   *RestaurantTable `json:"-"` // preload เฉพาะตอนต้องการ

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`

	ServerID uint `json:"serverId"`
	Server   User `gorm:"foreignKey:ServerID" json:"-"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"discountAmount"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"taxAmount"`
	GratuityAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"gratuityAmount"`
	ServiceCharge  decimal.Decimal `gorm:"type:decimal(12,2)" json:"serviceCharge"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalAmount"`
	AmountPaid     decimal.Decimal `gorm:"type:decimal(12,2)" json:"amountPaid"`

	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`

	IsVoid     bool   `gorm:"not null;default:false;index" json:"isVoid"`
	VoidReason string `json:"voidReason"`
	VoidBy     *uint  `json:"voidBy"`

	ConfirmedAt *time.Time `json:"confirmedAt"`
	CompletedAt *time.Time `json:"completedAt"`

	// order เป็นเจ้าของ items; ลบ order ก่อนส่งครัว → ลบ items ด้วย
	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}
