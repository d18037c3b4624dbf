package repository

import (
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"gorm.io/gorm"
)

type ReceiptRepository struct {
	DB *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) *ReceiptRepository {
	return &ReceiptRepository{DB: db}
}

type ReceiptFilter struct {
	From          *time.Time
	To            *time.Time
	OrderNumber   *int
	OrderType     string
	PaymentMethod string
}

// ใบเสร็จมาจาก order ที่ completed และไม่ void เท่านั้น
func (r *ReceiptRepository) completedOrders() *gorm.DB {
	return r.DB.Model(&entity.Order{}).
		Where("status = ? AND is_void = ?", entity.StatusCompleted, false)
}

func (r *ReceiptRepository) GetCompletedOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.completedOrders().
		Preload("Items").Preload("Server").Preload("Table").
		Where("orders.id = ?", orderID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ReceiptRepository) ListCompletedOrders(f ReceiptFilter, page, limit int) ([]entity.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	q := r.completedOrders()
	if f.From != nil {
		q = q.Where("completed_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("completed_at < ?", *f.To)
	}
	if f.OrderNumber != nil {
		q = q.Where("order_number = ?", *f.OrderNumber)
	}
	if f.OrderType != "" {
		q = q.Where("order_type = ?", f.OrderType)
	}
	if f.PaymentMethod != "" {
		q = q.Where("payment_method = ?", f.PaymentMethod)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := q.Preload("Items").Preload("Server").Preload("Table").
		Order("completed_at DESC").Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, total, err
}

// CompletedBetween ใช้ทำรายงานยอดขาย
func (r *ReceiptRepository) CompletedBetween(from, to time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.completedOrders().
		Where("completed_at >= ? AND completed_at < ?", from, to).
		Order("completed_at").
		Find(&orders).Error
	return orders, err
}
