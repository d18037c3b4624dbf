package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index;not null" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"` // preload เฉพาะตอนต้องการชื่อเมนู

	// snapshot ณ ตอนสั่ง ราคาเมนูเปลี่ยนทีหลังไม่กระทบ order เดิม
	ItemName  string          `gorm:"not null" json:"itemName"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`

	Quantity            int             `gorm:"not null" json:"quantity"`
	Modifiers           ModifierList    `gorm:"type:text" json:"modifiers"`
	SpecialInstructions string          `json:"specialInstructions"`
	TotalPrice          decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalPrice"`

	Status string `gorm:"not null;default:pending;index" json:"status"`

	SentToKitchenAt *time.Time `json:"sentToKitchenAt"`
	PreparedAt      *time.Time `json:"preparedAt"`
	ServedAt        *time.Time `json:"servedAt"`
}

// LineTotal = (unit + modifiers) * qty
func (oi *OrderItem) LineTotal() decimal.Decimal {
	unit := oi.UnitPrice.Add(oi.Modifiers.Surcharge())
	return unit.Mul(decimal.NewFromInt(int64(oi.Quantity))).Round(2)
}
