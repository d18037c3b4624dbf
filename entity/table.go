package entity

import (
	"time"

	"gorm.io/gorm"
)

type RestaurantTable struct {
	gorm.Model
	Number  int    `gorm:"uniqueIndex;not null" json:"number"`
	Section string `json:"section"`
	Seats   int    `gorm:"default:4" json:"seats"`

	IsOccupied     bool       `gorm:"not null;default:false" json:"isOccupied"`
	CurrentOrderID *uint      `json:"currentOrderId"`
	ServerID       *uint      `json:"serverId"`
	OccupiedAt     *time.Time `json:"occupiedAt"`
}
