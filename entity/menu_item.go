package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name            string          `gorm:"not null" json:"name"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	PrepTimeMinutes int             `gorm:"default:10" json:"prepTimeMinutes"`
	IsAvailable     bool            `gorm:"not null;default:true" json:"isAvailable"`

	OrderItems []OrderItem `json:"-"`
}

// Modifier เป็น snapshot ราคา ณ ตอนสั่ง ไม่อ้างอิงตารางอื่น
type Modifier struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ModifierList is stored as a JSON column on the order item.
type ModifierList []Modifier

func (m ModifierList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *ModifierList) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("modifiers: unsupported column type")
	}
	if len(b) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(b, m)
}

// Surcharge รวมราคา modifier ทั้งหมดต่อ 1 หน่วย
func (m ModifierList) Surcharge() decimal.Decimal {
	total := decimal.Zero
	for _, mod := range m {
		total = total.Add(mod.Price)
	}
	return total
}
