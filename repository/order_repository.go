package repository

import (
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderWithItems(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// NextOrderNumber ต้องเรียกใน transaction เดียวกับ insert
func (r *OrderRepository) NextOrderNumber(tx *gorm.DB) (int, error) {
	var row struct{ Max int }
	err := tx.Model(&entity.Order{}).
		Select("COALESCE(MAX(order_number), 0) AS max").
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return row.Max + 1, nil
}

type OrderFilter struct {
	Status    string
	OrderType string
	From      *time.Time
	To        *time.Time
}

type OrderSummary struct {
	ID          uint            `json:"id"`
	OrderNumber int             `json:"orderNumber"`
	OrderType   string          `json:"orderType"`
	Status      string          `json:"status"`
	TableID     *uint           `json:"tableId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (r *OrderRepository) ListOrders(f OrderFilter, page, limit int) ([]OrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	q := r.DB.Model(&entity.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OrderType != "" {
		q = q.Where("order_type = ?", f.OrderType)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []OrderSummary
	err := q.Select("id, order_number, order_type, status, table_id, total_amount, created_at").
		Order("id DESC").Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, total, err
}

// UpdateStatusGuard เปลี่ยนสถานะแบบมี guard ป้องกันการแข่งกันเขียน
// affected == 0 แปลว่าโดนคนอื่นเปลี่ยนไปก่อนแล้ว
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string, extra map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) UpdateOrderFields(tx *gorm.DB, orderID uint, updates map[string]any) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(updates).Error
}

func (r *OrderRepository) DeleteOrder(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Order{}, orderID).Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItem(itemID uint) (*entity.OrderItem, error) {
	var oi entity.OrderItem
	if err := r.DB.First(&oi, itemID).Error; err != nil {
		return nil, err
	}
	return &oi, nil
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, err
}

func (r *OrderRepository) DeleteOrderItem(tx *gorm.DB, itemID uint) error {
	return tx.Delete(&entity.OrderItem{}, itemID).Error
}

func (r *OrderRepository) UpdateItemStatusGuard(tx *gorm.DB, itemID uint, from, to string, extra map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&entity.OrderItem{}).
		Where("id = ? AND status = ?", itemID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// CascadeItemStatus ตามสถานะ order ตอนจบ (completed/cancelled)
func (r *OrderRepository) CascadeItemStatus(tx *gorm.DB, orderID uint, to string) error {
	return tx.Model(&entity.OrderItem{}).
		Where("order_id = ? AND status NOT IN ?", orderID, []string{entity.StatusCompleted, entity.StatusCancelled}).
		Update("status", to).Error
}

func (r *OrderRepository) MoveItemsToOrder(tx *gorm.DB, itemIDs []uint, fromOrderID, toOrderID uint) (int64, error) {
	res := tx.Model(&entity.OrderItem{}).
		Where("id IN ? AND order_id = ?", itemIDs, fromOrderID).
		Update("order_id", toOrderID)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) CountItems(tx *gorm.DB, orderID uint) (int64, error) {
	var n int64
	err := tx.Model(&entity.OrderItem{}).Where("order_id = ?", orderID).Count(&n).Error
	return n, err
}

// ---------------- Kitchen projections ----------------

type KitchenQueueRow struct {
	ItemID              uint                `json:"itemId"`
	OrderID             uint                `json:"orderId"`
	OrderNumber         int                 `json:"orderNumber"`
	OrderType           string              `json:"orderType"`
	TableID             *uint               `json:"tableId"`
	ItemName            string              `json:"itemName"`
	Quantity            int                 `json:"quantity"`
	Modifiers           entity.ModifierList `json:"modifiers"`
	SpecialInstructions string              `json:"specialInstructions"`
	Status              string              `json:"status"`
	CreatedAt           time.Time           `json:"createdAt"`
}

// คิวครัว FIFO: เฉพาะ item ที่ confirmed/preparing เรียงตามเวลาสร้าง
func (r *OrderRepository) KitchenQueue() ([]KitchenQueueRow, error) {
	var rows []KitchenQueueRow
	err := r.DB.Table("order_items AS oi").
		Select(`oi.id AS item_id, oi.order_id, o.order_number, o.order_type, o.table_id,
			oi.item_name, oi.quantity, oi.modifiers, oi.special_instructions, oi.status, oi.created_at`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("oi.status IN ?", []string{entity.StatusConfirmed, entity.StatusPreparing}).
		Where("oi.deleted_at IS NULL AND o.deleted_at IS NULL").
		Order("oi.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

type PrepTimeRow struct {
	PrepTimeMinutes int
	Quantity        int
}

// เวลาเตรียมของ item ใน order เดียว
func (r *OrderRepository) OrderPrepTimes(orderID uint) ([]PrepTimeRow, error) {
	var rows []PrepTimeRow
	err := r.DB.Table("order_items AS oi").
		Select("m.prep_time_minutes, oi.quantity").
		Joins("JOIN menu_items m ON m.id = oi.menu_item_id").
		Where("oi.order_id = ? AND oi.deleted_at IS NULL", orderID).
		Scan(&rows).Error
	return rows, err
}

// เวลาเตรียมของทุก item ที่กำลังรอครัวทั้งระบบ
func (r *OrderRepository) ActivePrepTimes() ([]PrepTimeRow, error) {
	var rows []PrepTimeRow
	err := r.DB.Table("order_items AS oi").
		Select("m.prep_time_minutes, oi.quantity").
		Joins("JOIN menu_items m ON m.id = oi.menu_item_id").
		Where("oi.status IN ? AND oi.deleted_at IS NULL", []string{entity.StatusConfirmed, entity.StatusPreparing}).
		Scan(&rows).Error
	return rows, err
}
