package entity

import (
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleServer  = "server"
	RoleCashier = "cashier"
	RoleKitchen = "kitchen"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `gorm:"not null;default:server" json:"role"`
	IsActive  bool   `gorm:"not null;default:true" json:"isActive"`

	// preload เฉพาะตอนต้องการ
	Orders []Order `gorm:"foreignKey:ServerID" json:"-"`
}

func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleServer, RoleCashier, RoleKitchen:
		return true
	}
	return false
}
