package services

import (
	"fmt"
	"testing"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{},
		&entity.RestaurantTable{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.MonthlySummary{}, &entity.DailySummary{}, &entity.TransactionRecord{},
		&entity.AuditLog{},
	))
	return db
}

func newTestOrderService(t *testing.T, db *gorm.DB) *OrderService {
	t.Helper()
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewTableRepository(db),
		repository.NewMenuRepository(db),
		repository.NewAuditRepository(db),
		decimal.RequireFromString("0.08"),
		decimal.RequireFromString("0.20"),
	)
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price string, prepMinutes int) *entity.MenuItem {
	t.Helper()
	m := entity.MenuItem{
		Name:            name,
		Price:           decimal.RequireFromString(price),
		PrepTimeMinutes: prepMinutes,
		IsAvailable:     true,
	}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func seedTable(t *testing.T, db *gorm.DB, number int) *entity.RestaurantTable {
	t.Helper()
	tab := entity.RestaurantTable{Number: number, Section: "main", Seats: 4}
	require.NoError(t, db.Create(&tab).Error)
	return &tab
}

func seedServer(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	u := entity.User{Email: fmt.Sprintf("%s@test.local", t.Name()), FirstName: "Ana", LastName: "Ito", Role: entity.RoleServer, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return &u
}
