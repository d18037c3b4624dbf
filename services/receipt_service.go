package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiptService is a read model over completed, non-void orders.
// It never mutates an order.
type ReceiptService struct {
	DB        *gorm.DB
	Repo      *repository.ReceiptRepository
	AuditRepo *repository.AuditRepository

	Header entity.ReceiptHeader
}

func NewReceiptService(db *gorm.DB, repo *repository.ReceiptRepository, auditRepo *repository.AuditRepository, header entity.ReceiptHeader) *ReceiptService {
	return &ReceiptService{DB: db, Repo: repo, AuditRepo: auditRepo, Header: header}
}

func (s *ReceiptService) Get(orderID uint) (*entity.Receipt, error) {
	o, err := s.Repo.GetCompletedOrder(orderID)
	if err != nil {
		return nil, err
	}
	r := s.build(o)
	return &r, nil
}

type ReceiptPage struct {
	Items []entity.Receipt `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (s *ReceiptService) List(f repository.ReceiptFilter, page, limit int) (*ReceiptPage, error) {
	orders, total, err := s.Repo.ListCompletedOrders(f, page, limit)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Receipt, 0, len(orders))
	for i := range orders {
		out = append(out, s.build(&orders[i]))
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	return &ReceiptPage{Items: out, Total: total, Page: page, Limit: limit}, nil
}

func (s *ReceiptService) build(o *entity.Order) entity.Receipt {
	r := entity.Receipt{
		Header:         s.Header,
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		OrderType:      o.OrderType,
		ServerName:     strings.TrimSpace(o.Server.FirstName + " " + o.Server.LastName),
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		TaxAmount:      o.TaxAmount,
		GratuityAmount: o.GratuityAmount,
		ServiceCharge:  o.ServiceCharge,
		TotalAmount:    o.TotalAmount,
		AmountPaid:     o.AmountPaid,
		PaymentMethod:  o.PaymentMethod,
	}
	if o.CompletedAt != nil {
		r.CompletedAt = *o.CompletedAt
	}
	if o.Table != nil {
		n := o.Table.Number
		r.TableNumber = &n
	}
	for i := range o.Items {
		oi := &o.Items[i]
		if oi.Status == entity.StatusCancelled {
			continue
		}
		line := entity.ReceiptLine{
			Name:      oi.ItemName,
			Quantity:  oi.Quantity,
			UnitPrice: oi.UnitPrice,
			Total:     oi.TotalPrice,
		}
		for _, m := range oi.Modifiers {
			line.Modifiers = append(line.Modifiers, m.Name)
		}
		r.Items = append(r.Items, line)
	}
	return r
}

// LogPrint appends an audit entry; the actual printing happens client-side.
func (s *ReceiptService) LogPrint(orderID uint, actor uint) error {
	return s.AuditRepo.Append(s.DB, &entity.AuditLog{
		TableName: "orders",
		RecordID:  fmt.Sprintf("%d", orderID),
		Action:    "print",
		UserID:    actor,
	})
}

// ----- thermal layout -----

const thermalWidth = 40

// FormatThermal renders the 40-column plain-text layout. Deterministic for a
// given receipt.
func FormatThermal(r *entity.Receipt) string {
	var b strings.Builder
	rule := strings.Repeat("-", thermalWidth)

	center(&b, r.Header.Name)
	if r.Header.Address != "" {
		center(&b, r.Header.Address)
	}
	if r.Header.Phone != "" {
		center(&b, r.Header.Phone)
	}
	b.WriteString(rule + "\n")

	kv(&b, "Order", fmt.Sprintf("#%d (%s)", r.OrderNumber, r.OrderType))
	if r.TableNumber != nil {
		kv(&b, "Table", fmt.Sprintf("%d", *r.TableNumber))
	}
	if r.ServerName != "" {
		kv(&b, "Server", r.ServerName)
	}
	if !r.CompletedAt.IsZero() {
		kv(&b, "Date", r.CompletedAt.Format(time.DateTime))
	}
	b.WriteString(rule + "\n")

	for _, line := range r.Items {
		left := fmt.Sprintf("%dx %s", line.Quantity, line.Name)
		row(&b, left, money(line.Total))
		for _, m := range line.Modifiers {
			b.WriteString("   + " + m + "\n")
		}
	}
	b.WriteString(rule + "\n")

	row(&b, "Subtotal", money(r.Subtotal))
	if !r.DiscountAmount.IsZero() {
		row(&b, "Discount", "-"+money(r.DiscountAmount))
	}
	row(&b, "Tax", money(r.TaxAmount))
	if !r.GratuityAmount.IsZero() {
		row(&b, "Gratuity", money(r.GratuityAmount))
	}
	if !r.ServiceCharge.IsZero() {
		row(&b, "Service", money(r.ServiceCharge))
	}
	row(&b, "TOTAL", money(r.TotalAmount))
	if r.PaymentMethod != "" {
		row(&b, "Paid ("+r.PaymentMethod+")", money(r.AmountPaid))
	}

	b.WriteString(rule + "\n")
	center(&b, "Thank you!")
	return b.String()
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func center(b *strings.Builder, s string) {
	if len(s) >= thermalWidth {
		b.WriteString(s[:thermalWidth] + "\n")
		return
	}
	pad := (thermalWidth - len(s)) / 2
	b.WriteString(strings.Repeat(" ", pad) + s + "\n")
}

// row ชิดซ้าย/ขวาในความกว้างคงที่
func row(b *strings.Builder, left, right string) {
	space := thermalWidth - len(left) - len(right)
	if space < 1 {
		maxLeft := thermalWidth - len(right) - 1
		if maxLeft > 0 {
			left = left[:maxLeft]
		}
		space = 1
	}
	b.WriteString(left + strings.Repeat(" ", space) + right + "\n")
}

func kv(b *strings.Builder, k, v string) {
	b.WriteString(fmt.Sprintf("%-8s %s\n", k+":", v))
}
