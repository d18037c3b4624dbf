package services

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// KitchenEvent is pushed to the kitchen display when an order hits the queue
// or an item changes status.
type KitchenEvent struct {
	Type        string    `json:"type"` // order_confirmed | item_status
	OrderID     uint      `json:"orderId"`
	OrderNumber int       `json:"orderNumber"`
	ItemID      uint      `json:"itemId,omitempty"`
	Status      string    `json:"status"`
	At          time.Time `json:"at"`
}

type KitchenNotifier interface {
	Publish(e KitchenEvent)
}

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	TableRepo *repository.TableRepository
	MenuRepo  *repository.MenuRepository
	AuditRepo *repository.AuditRepository

	TaxRate      decimal.Decimal
	GratuityRate decimal.Decimal

	Notifier KitchenNotifier // nil = no push
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	tableRepo *repository.TableRepository,
	menuRepo *repository.MenuRepository,
	auditRepo *repository.AuditRepository,
	taxRate, gratuityRate decimal.Decimal,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, TableRepo: tableRepo, MenuRepo: menuRepo, AuditRepo: auditRepo,
		TaxRate: taxRate, GratuityRate: gratuityRate,
	}
}

func (s *OrderService) notify(e KitchenEvent) {
	if s.Notifier != nil {
		e.At = time.Now()
		s.Notifier.Publish(e)
	}
}

// gratuity คิดเฉพาะ dine_in
func (s *OrderService) ratesFor(o *entity.Order) Rates {
	r := Rates{DiscountAmount: o.DiscountAmount, TaxRate: s.TaxRate}
	if o.OrderType == entity.OrderTypeDineIn {
		r.GratuityRate = s.GratuityRate
	}
	return r
}

// ----- DTOs -----

type CreateOrderReq struct {
	OrderType     string `json:"orderType" binding:"required"`
	TableID       *uint  `json:"tableId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Notes         string `json:"notes"`
}

type OrderItemIn struct {
	MenuItemID          uint              `json:"menuItemId" binding:"required"`
	Quantity            int               `json:"quantity" binding:"required,min=1"`
	Modifiers           []entity.Modifier `json:"modifiers"`
	SpecialInstructions string            `json:"specialInstructions"`
}

// ----- Create -----

// Create opens a pending order. For dine_in with a table the occupy happens
// in the same transaction, so a taken table rolls the order back too.
func (s *OrderService) Create(serverID uint, req *CreateOrderReq) (*entity.Order, error) {
	if !entity.ValidOrderType(req.OrderType) {
		return nil, fmt.Errorf("unknown order type %q", req.OrderType)
	}

	var out entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		num, err := s.Repo.NextOrderNumber(tx)
		if err != nil {
			return err
		}

		order := entity.Order{
			OrderNumber:   num,
			OrderType:     req.OrderType,
			Status:        entity.StatusPending,
			TableID:       req.TableID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			ServerID:      serverID,
			Notes:         req.Notes,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		if req.TableID != nil {
			affected, err := s.TableRepo.Occupy(tx, *req.TableID, order.ID, serverID)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrTableOccupied
			}
		}

		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ----- Items -----

// AddItems snapshots name+price from the menu. The whole batch fails if any
// referenced menu item is missing or unavailable.
func (s *OrderService) AddItems(orderID uint, items []OrderItemIn) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("items is required")
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.StatusPending && o.Status != entity.StatusConfirmed {
		return nil, ErrOrderNotMutable
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, in := range items {
			m, err := s.MenuRepo.Get(in.MenuItemID)
			if err != nil || !m.IsAvailable {
				return ErrMenuItemMissing
			}
			oi := entity.OrderItem{
				OrderID:             orderID,
				MenuItemID:          m.ID,
				ItemName:            m.Name,
				UnitPrice:           m.Price,
				Quantity:            in.Quantity,
				Modifiers:           in.Modifiers,
				SpecialInstructions: in.SpecialInstructions,
				Status:              entity.StatusPending,
			}
			oi.TotalPrice = oi.LineTotal()
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		return s.recomputeTotals(tx, o)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderWithItems(orderID)
}

// RemoveItem allowed only while the item is still pending.
func (s *OrderService) RemoveItem(orderID, itemID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	oi, err := s.Repo.GetOrderItem(itemID)
	if err != nil {
		return nil, err
	}
	if oi.OrderID != orderID {
		return nil, fmt.Errorf("item does not belong to order")
	}
	if oi.Status != entity.StatusPending {
		return nil, ErrItemNotPending
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.DeleteOrderItem(tx, itemID); err != nil {
			return err
		}
		return s.recomputeTotals(tx, o)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderWithItems(orderID)
}

// recomputeTotals reloads the lines inside tx and rewrites the money columns.
func (s *OrderService) recomputeTotals(tx *gorm.DB, o *entity.Order) error {
	var items []entity.OrderItem
	if err := tx.Where("order_id = ?", o.ID).Find(&items).Error; err != nil {
		return err
	}
	t := CalculateOrderTotals(items, s.ratesFor(o))
	return s.Repo.UpdateOrderFields(tx, o.ID, map[string]any{
		"subtotal":        t.Subtotal,
		"discount_amount": t.DiscountAmount,
		"tax_amount":      t.TaxAmount,
		"gratuity_amount": t.GratuityAmount,
		"service_charge":  t.ServiceCharge,
		"total_amount":    t.TotalAmount,
	})
}

// SetDiscount stores a flat discount and recomputes.
func (s *OrderService) SetDiscount(orderID uint, amount decimal.Decimal, actor uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if entity.IsTerminal(o.Status) {
		return nil, ErrOrderNotMutable
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("discount must not be negative")
	}

	old := o.DiscountAmount
	o.DiscountAmount = amount
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.recomputeTotals(tx, o); err != nil {
			return err
		}
		return s.audit(tx, "orders", o.ID, "edit", actor,
			map[string]any{"discountAmount": old},
			map[string]any{"discountAmount": amount})
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderWithItems(orderID)
}

// ----- Lifecycle -----

// SendToKitchen: pending -> confirmed, cascades item statuses, one transaction.
func (s *OrderService) SendToKitchen(orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(o.Status, entity.StatusConfirmed) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, entity.StatusPending, entity.StatusConfirmed,
			map[string]any{"confirmed_at": now})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		return tx.Model(&entity.OrderItem{}).
			Where("order_id = ? AND status = ?", orderID, entity.StatusPending).
			Updates(map[string]any{"status": entity.StatusConfirmed, "sent_to_kitchen_at": now}).Error
	})
	if err != nil {
		return nil, err
	}

	s.notify(KitchenEvent{Type: "order_confirmed", OrderID: o.ID, OrderNumber: o.OrderNumber, Status: entity.StatusConfirmed})
	return s.Repo.GetOrderWithItems(orderID)
}

// UpdateOrderStatus rejects anything outside the transition table.
func (s *OrderService) UpdateOrderStatus(orderID uint, to string) (*entity.Order, error) {
	if !entity.ValidStatus(to) {
		return nil, fmt.Errorf("unknown status %q", to)
	}
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(o.Status, to) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	extra := map[string]any{}
	switch to {
	case entity.StatusConfirmed:
		extra["confirmed_at"] = now
	case entity.StatusCompleted:
		extra["completed_at"] = now
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, o.Status, to, extra)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		if entity.IsTerminal(to) {
			if err := s.Repo.CascadeItemStatus(tx, orderID, to); err != nil {
				return err
			}
			if o.TableID != nil {
				if err := s.TableRepo.Free(tx, *o.TableID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderWithItems(orderID)
}

// item transitions stamp their kitchen timestamps:
// confirmed = sent to kitchen, ready = prepared, completed = served
func itemStatusStamp(to string, now time.Time) map[string]any {
	switch to {
	case entity.StatusConfirmed:
		return map[string]any{"sent_to_kitchen_at": now}
	case entity.StatusReady:
		return map[string]any{"prepared_at": now}
	case entity.StatusCompleted:
		return map[string]any{"served_at": now}
	}
	return nil
}

func (s *OrderService) UpdateItemStatus(orderID, itemID uint, to string) (*entity.OrderItem, error) {
	if !entity.ValidStatus(to) {
		return nil, fmt.Errorf("unknown status %q", to)
	}
	oi, err := s.Repo.GetOrderItem(itemID)
	if err != nil {
		return nil, err
	}
	if oi.OrderID != orderID {
		return nil, fmt.Errorf("item does not belong to order")
	}
	if !entity.CanTransition(oi.Status, to) {
		return nil, ErrInvalidTransition
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateItemStatusGuard(tx, itemID, oi.Status, to, itemStatusStamp(to, time.Now()))
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o, _ := s.Repo.GetOrder(orderID)
	if o != nil {
		s.notify(KitchenEvent{Type: "item_status", OrderID: o.ID, OrderNumber: o.OrderNumber, ItemID: itemID, Status: to})
	}
	return s.Repo.GetOrderItem(itemID)
}

// Cancel requires a reason and frees the table.
func (s *OrderService) Cancel(orderID uint, reason string, actor uint) (*entity.Order, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(o.Status, entity.StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, o.Status, entity.StatusCancelled,
			map[string]any{"notes": appendNote(o.Notes, "cancelled: "+reason)})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		if err := s.Repo.CascadeItemStatus(tx, orderID, entity.StatusCancelled); err != nil {
			return err
		}
		if o.TableID != nil {
			if err := s.TableRepo.Free(tx, *o.TableID); err != nil {
				return err
			}
		}
		return s.audit(tx, "orders", o.ID, "cancel", actor,
			map[string]any{"status": o.Status},
			map[string]any{"status": entity.StatusCancelled, "reason": reason})
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderWithItems(orderID)
}

// Complete stamps completion, records payment and frees the table.
// The status guard doubles as idempotency: a second "complete" click
// hits 0 rows and returns ErrConflict instead of paying twice.
func (s *OrderService) Complete(orderID uint, paymentMethod string, amountPaid decimal.Decimal) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(o.Status, entity.StatusCompleted) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, o.Status, entity.StatusCompleted, map[string]any{
			"completed_at":   now,
			"payment_method": paymentMethod,
			"amount_paid":    amountPaid,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflict
		}
		if err := tx.Model(&entity.OrderItem{}).
			Where("order_id = ? AND status NOT IN ?", orderID, []string{entity.StatusCompleted, entity.StatusCancelled}).
			Updates(map[string]any{"status": entity.StatusCompleted, "served_at": now}).Error; err != nil {
			return err
		}
		if o.TableID != nil {
			return s.TableRepo.Free(tx, *o.TableID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderWithItems(orderID)
}

// Void excludes a completed order from sales totals. Audited.
func (s *OrderService) Void(orderID uint, reason string, actor uint) (*entity.Order, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.StatusCompleted {
		return nil, ErrNotCompleted
	}
	if o.IsVoid {
		return nil, fmt.Errorf("order already void")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.UpdateOrderFields(tx, orderID, map[string]any{
			"is_void":     true,
			"void_reason": reason,
			"void_by":     actor,
		}); err != nil {
			return err
		}
		return s.audit(tx, "orders", o.ID, "void", actor,
			map[string]any{"isVoid": false},
			map[string]any{"isVoid": true, "reason": reason})
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderWithItems(orderID)
}

// ----- Split / transfer -----

type SplitResult struct {
	NewOrderIDs     []uint `json:"newOrderIds"`
	OriginalDeleted bool   `json:"originalDeleted"`
}

// SplitOrder moves named items into N new orders inside one transaction and
// deletes the original if it ends up empty.
func (s *OrderService) SplitOrder(orderID uint, groups [][]uint, actor uint) (*SplitResult, error) {
	if len(groups) == 0 {
		return nil, ErrEmptyGroup
	}
	for _, g := range groups {
		if len(g) == 0 {
			return nil, ErrEmptyGroup
		}
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if entity.IsTerminal(o.Status) {
		return nil, ErrOrderNotMutable
	}

	var result SplitResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, group := range groups {
			num, err := s.Repo.NextOrderNumber(tx)
			if err != nil {
				return err
			}
			newOrder := entity.Order{
				OrderNumber:  num,
				OrderType:    o.OrderType,
				Status:       o.Status,
				ServerID:     o.ServerID,
				CustomerName: o.CustomerName,
				ConfirmedAt:  o.ConfirmedAt,
			}
			if err := s.Repo.CreateOrder(tx, &newOrder); err != nil {
				return err
			}

			moved, err := s.Repo.MoveItemsToOrder(tx, group, orderID, newOrder.ID)
			if err != nil {
				return err
			}
			if moved != int64(len(group)) {
				return fmt.Errorf("split: %d of %d items not on order %d", int64(len(group))-moved, len(group), orderID)
			}
			if err := s.recomputeTotals(tx, &newOrder); err != nil {
				return err
			}
			result.NewOrderIDs = append(result.NewOrderIDs, newOrder.ID)
		}

		left, err := s.Repo.CountItems(tx, orderID)
		if err != nil {
			return err
		}
		if left == 0 {
			if o.TableID != nil {
				if err := s.TableRepo.Free(tx, *o.TableID); err != nil {
					return err
				}
			}
			if err := s.Repo.DeleteOrder(tx, orderID); err != nil {
				return err
			}
			result.OriginalDeleted = true
		} else if err := s.recomputeTotals(tx, o); err != nil {
			return err
		}

		return s.audit(tx, "orders", o.ID, "split", actor, nil,
			map[string]any{"groups": groups, "newOrders": result.NewOrderIDs})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *OrderService) TransferTable(orderID, newTableID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if entity.IsTerminal(o.Status) {
		return nil, ErrOrderNotMutable
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.TableRepo.Occupy(tx, newTableID, o.ID, o.ServerID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrTableOccupied
		}
		if o.TableID != nil {
			if err := s.TableRepo.Free(tx, *o.TableID); err != nil {
				return err
			}
		}
		return s.Repo.UpdateOrderFields(tx, orderID, map[string]any{"table_id": newTableID})
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetOrderWithItems(orderID)
}

// ----- Reads -----

func (s *OrderService) Detail(orderID uint) (*entity.Order, error) {
	return s.Repo.GetOrderWithItems(orderID)
}

func (s *OrderService) List(f repository.OrderFilter, page, limit int) ([]repository.OrderSummary, int64, error) {
	return s.Repo.ListOrders(f, page, limit)
}

func (s *OrderService) KitchenQueue() ([]repository.KitchenQueueRow, error) {
	return s.Repo.KitchenQueue()
}

// OrderEstimate assumes parallel prep: the slowest line bounds the order,
// so it is max(prep*qty), not the sum.
func (s *OrderService) OrderEstimate(orderID uint) (int, error) {
	rows, err := s.Repo.OrderPrepTimes(orderID)
	if err != nil {
		return 0, err
	}
	est := 0
	for _, r := range rows {
		if t := r.PrepTimeMinutes * r.Quantity; t > est {
			est = t
		}
	}
	return est, nil
}

// EstimatedWaitTime = ceil(avg prep time of everything waiting); 15 when idle.
func (s *OrderService) EstimatedWaitTime() (int, error) {
	rows, err := s.Repo.ActivePrepTimes()
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 15, nil
	}
	sum := 0
	for _, r := range rows {
		sum += r.PrepTimeMinutes
	}
	return int(math.Ceil(float64(sum) / float64(len(rows)))), nil
}

// ----- audit helper -----

func (s *OrderService) audit(tx *gorm.DB, table string, recordID uint, action string, actor uint, oldV, newV map[string]any) error {
	oldB, _ := json.Marshal(oldV)
	newB, _ := json.Marshal(newV)
	return s.AuditRepo.Append(tx, &entity.AuditLog{
		TableName: table,
		RecordID:  fmt.Sprintf("%d", recordID),
		Action:    action,
		OldValues: string(oldB),
		NewValues: string(newB),
		UserID:    actor,
	})
}

func appendNote(notes, extra string) string {
	if notes == "" {
		return extra
	}
	return notes + "; " + extra
}
