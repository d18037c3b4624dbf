package configs

import (
	"log"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"golang.org/x/crypto/bcrypt"
)

// สร้าง admin ครั้งแรก
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// Seed โต๊ะเริ่มต้น ถ้ายังไม่มีเลย
func SeedTables() error {
	db := DB()

	var count int64
	if err := db.Model(&entity.RestaurantTable{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sections := map[string][]int{
		"main":   {1, 2, 3, 4, 5, 6, 7, 8},
		"window": {9, 10, 11, 12},
		"patio":  {13, 14, 15, 16},
	}
	for section, numbers := range sections {
		for _, n := range numbers {
			t := entity.RestaurantTable{Number: n, Section: section, Seats: 4}
			if err := db.Create(&t).Error; err != nil {
				return err
			}
		}
	}
	log.Println("seeded default tables")
	return nil
}
