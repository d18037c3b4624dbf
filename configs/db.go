package configs

import (
	"log"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(cfg *Config) {
	var (
		database *gorm.DB
		err      error
	)
	switch cfg.DBDriver {
	case "postgres":
		database, err = gorm.Open(postgres.Open(cfg.DBSource), &gorm.Config{})
	default:
		database, err = gorm.Open(sqlite.Open(cfg.DBSource), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	db = database
}

func SetupDatabase() {
	// Migrate the schema
	err := db.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{},
		&entity.RestaurantTable{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.MonthlySummary{}, &entity.DailySummary{}, &entity.TransactionRecord{},
		&entity.AuditLog{},
	)
	if err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
}
