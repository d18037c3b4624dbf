package repository

import (
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) Get(tableID uint) (*entity.RestaurantTable, error) {
	var t entity.RestaurantTable
	if err := r.DB.First(&t, tableID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) List() ([]entity.RestaurantTable, error) {
	var tables []entity.RestaurantTable
	err := r.DB.Order("number").Find(&tables).Error
	return tables, err
}

func (r *TableRepository) Create(t *entity.RestaurantTable) error {
	return r.DB.Create(t).Error
}

// Occupy แบบ guard: นั่งได้เฉพาะโต๊ะว่าง affected == 0 แปลว่าโต๊ะไม่ว่างแล้ว
func (r *TableRepository) Occupy(tx *gorm.DB, tableID, orderID, serverID uint) (int64, error) {
	now := time.Now()
	res := tx.Model(&entity.RestaurantTable{}).
		Where("id = ? AND is_occupied = ?", tableID, false).
		Updates(map[string]any{
			"is_occupied":      true,
			"current_order_id": orderID,
			"server_id":        serverID,
			"occupied_at":      now,
		})
	return res.RowsAffected, res.Error
}

// Free เคลียร์โต๊ะตอน order จบ/ยกเลิก/ย้าย
func (r *TableRepository) Free(tx *gorm.DB, tableID uint) error {
	return tx.Model(&entity.RestaurantTable{}).
		Where("id = ?", tableID).
		Updates(map[string]any{
			"is_occupied":      false,
			"current_order_id": nil,
			"server_id":        nil,
			"occupied_at":      nil,
		}).Error
}
