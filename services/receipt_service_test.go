package services

import (
	"strings"
	"testing"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestReceiptService(t *testing.T, db *gorm.DB) *ReceiptService {
	t.Helper()
	return NewReceiptService(db,
		repository.NewReceiptRepository(db),
		repository.NewAuditRepository(db),
		entity.ReceiptHeader{Name: "Fuji Sushi", Address: "123 Main St", Phone: "555-0100"})
}

// completeOrder walks a dine_in order through the whole lifecycle so the
// receipt read model can see it.
func completeOrder(t *testing.T, db *gorm.DB) *entity.Order {
	t.Helper()
	svc := newTestOrderService(t, db)
	server := seedServer(t, db)
	table := seedTable(t, db, 5)
	roll := seedMenuItem(t, db, "California Roll", "12.50", 8)

	o, err := svc.Create(server.ID, &CreateOrderReq{OrderType: entity.OrderTypeDineIn, TableID: &table.ID})
	require.NoError(t, err)
	_, err = svc.AddItems(o.ID, []OrderItemIn{{MenuItemID: roll.ID, Quantity: 2}})
	require.NoError(t, err)
	_, err = svc.SendToKitchen(o.ID)
	require.NoError(t, err)
	o, err = svc.Complete(o.ID, "cash", decimal.RequireFromString("40.00"))
	require.NoError(t, err)
	return o
}

func TestReceiptOnlyForCompletedOrders(t *testing.T) {
	db := testDB(t)
	receipts := newTestReceiptService(t, db)
	orders := newTestOrderService(t, db)
	server := seedServer(t, db)
	roll := seedMenuItem(t, db, "California Roll", "12.50", 8)

	o, err := orders.Create(server.ID, &CreateOrderReq{OrderType: entity.OrderTypeTakeOut})
	require.NoError(t, err)
	_, err = orders.AddItems(o.ID, []OrderItemIn{{MenuItemID: roll.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = receipts.Get(o.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "pending order has no receipt")
}

func TestReceiptHidesVoidedOrders(t *testing.T) {
	db := testDB(t)
	receipts := newTestReceiptService(t, db)
	orders := newTestOrderService(t, db)
	o := completeOrder(t, db)

	_, err := receipts.Get(o.ID)
	require.NoError(t, err)

	_, err = orders.Void(o.ID, "comped by manager", 1)
	require.NoError(t, err)

	_, err = receipts.Get(o.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReceiptSnapshotsOrderFields(t *testing.T) {
	db := testDB(t)
	receipts := newTestReceiptService(t, db)
	o := completeOrder(t, db)

	r, err := receipts.Get(o.ID)
	require.NoError(t, err)

	assert.Equal(t, o.OrderNumber, r.OrderNumber)
	assert.Equal(t, "Ana Ito", r.ServerName)
	require.NotNil(t, r.TableNumber)
	assert.Equal(t, 5, *r.TableNumber)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "California Roll", r.Items[0].Name)
	assert.Equal(t, 2, r.Items[0].Quantity)
	// 2 x 12.50 = 25.00, tax 8%, gratuity 20%
	assert.True(t, r.Subtotal.Equal(d("25.00")), "subtotal: %s", r.Subtotal)
	assert.True(t, r.TaxAmount.Equal(d("2.00")), "tax: %s", r.TaxAmount)
	assert.True(t, r.GratuityAmount.Equal(d("5.00")), "gratuity: %s", r.GratuityAmount)
	assert.True(t, r.TotalAmount.Equal(d("32.00")), "total: %s", r.TotalAmount)
	assert.Equal(t, "cash", r.PaymentMethod)
	assert.True(t, r.AmountPaid.Equal(d("40.00")))
	assert.False(t, r.CompletedAt.IsZero())
}

func TestReceiptListFilters(t *testing.T) {
	db := testDB(t)
	receipts := newTestReceiptService(t, db)
	o := completeOrder(t, db)

	page, err := receipts.List(repository.ReceiptFilter{PaymentMethod: "cash"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, o.OrderNumber, page.Items[0].OrderNumber)

	page, err = receipts.List(repository.ReceiptFilter{PaymentMethod: "credit"}, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	num := o.OrderNumber
	page, err = receipts.List(repository.ReceiptFilter{OrderNumber: &num}, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
}

func TestReceiptLogPrintWritesAudit(t *testing.T) {
	db := testDB(t)
	receipts := newTestReceiptService(t, db)
	o := completeOrder(t, db)

	require.NoError(t, receipts.LogPrint(o.ID, 9))

	var logs []entity.AuditLog
	require.NoError(t, db.Where("action = ?", "print").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "orders", logs[0].TableName)
	assert.EqualValues(t, 9, logs[0].UserID)
}

func TestFormatThermalGolden(t *testing.T) {
	r := &entity.Receipt{
		Header:      entity.ReceiptHeader{Name: "Fuji Sushi"},
		OrderNumber: 12,
		OrderType:   entity.OrderTypeDineIn,
		Items: []entity.ReceiptLine{{
			Name:      "California Roll",
			Quantity:  2,
			UnitPrice: d("12.50"),
			Modifiers: []string{"Extra Ginger"},
			Total:     d("25.00"),
		}},
		Subtotal:       d("25.00"),
		TaxAmount:      d("2.00"),
		GratuityAmount: d("5.00"),
		TotalAmount:    d("32.00"),
	}

	rule := strings.Repeat("-", 40)
	want := strings.Join([]string{
		strings.Repeat(" ", 15) + "Fuji Sushi",
		rule,
		"Order:   #12 (dine_in)",
		rule,
		"2x California Roll" + strings.Repeat(" ", 16) + "$25.00",
		"   + Extra Ginger",
		rule,
		"Subtotal" + strings.Repeat(" ", 26) + "$25.00",
		"Tax" + strings.Repeat(" ", 32) + "$2.00",
		"Gratuity" + strings.Repeat(" ", 27) + "$5.00",
		"TOTAL" + strings.Repeat(" ", 29) + "$32.00",
		rule,
		strings.Repeat(" ", 15) + "Thank you!",
		"",
	}, "\n")

	got := FormatThermal(r)
	assert.Equal(t, want, got)
	assert.Equal(t, got, FormatThermal(r), "same receipt renders the same bytes")
}

func TestFormatThermalLinesFitWidth(t *testing.T) {
	db := testDB(t)
	receipts := newTestReceiptService(t, db)
	o := completeOrder(t, db)

	r, err := receipts.Get(o.ID)
	require.NoError(t, err)

	out := FormatThermal(r)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 40, "line too wide: %q", line)
	}
}
