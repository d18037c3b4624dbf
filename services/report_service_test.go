package services

import (
	"strings"
	"testing"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestReportService(t *testing.T, db *gorm.DB) *ReportService {
	t.Helper()
	return NewReportService(db,
		repository.NewReceiptRepository(db),
		repository.NewSummaryRepository(db))
}

// seedCompletedOrder writes a completed order directly; the lifecycle itself
// is covered by the order service tests.
func seedCompletedOrder(t *testing.T, db *gorm.DB, completedAt time.Time, orderType, payment string, subtotal, tax, gratuity, total string) *entity.Order {
	t.Helper()
	var max int
	db.Model(&entity.Order{}).Select("COALESCE(MAX(order_number), 0)").Scan(&max)
	o := entity.Order{
		OrderNumber:    max + 1,
		OrderType:      orderType,
		Status:         entity.StatusCompleted,
		ServerID:       1,
		Subtotal:       d(subtotal),
		TaxAmount:      d(tax),
		GratuityAmount: d(gratuity),
		TotalAmount:    d(total),
		AmountPaid:     d(total),
		PaymentMethod:  payment,
		CompletedAt:    &completedAt,
	}
	require.NoError(t, db.Create(&o).Error)
	return &o
}

func TestDailyAggregation(t *testing.T) {
	db := testDB(t)
	svc := newTestReportService(t, db)

	day := time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)
	seedCompletedOrder(t, db, day, entity.OrderTypeDineIn, "cash", "100.00", "8.00", "20.00", "128.00")
	seedCompletedOrder(t, db, day.Add(time.Hour), entity.OrderTypeTakeOut, "credit", "50.00", "4.00", "0.00", "54.00")
	// คนละวัน ต้องไม่ติดมา
	seedCompletedOrder(t, db, day.AddDate(0, 0, 1), entity.OrderTypeDineIn, "cash", "30.00", "2.40", "6.00", "38.40")

	row, err := svc.Daily(day)
	require.NoError(t, err)

	assert.Equal(t, "2024-04-15", row.Period)
	assert.Equal(t, 2, row.OrderCount)
	assert.True(t, row.DineInSales.Equal(d("100.00")), "dine-in: %s", row.DineInSales)
	assert.True(t, row.ToGoSales.Equal(d("50.00")), "to-go: %s", row.ToGoSales)
	assert.True(t, row.GrossSale.Equal(d("182.00")), "gross: %s", row.GrossSale)
	assert.True(t, row.CashDeposited.Equal(d("128.00")))
	assert.True(t, row.CreditTotal.Equal(d("54.00")))
	// net = gross - tax - gratuity
	assert.True(t, row.NetSale.Equal(d("150.00")), "net: %s", row.NetSale)
}

func TestDailyExcludesVoidedOrders(t *testing.T) {
	db := testDB(t)
	svc := newTestReportService(t, db)

	day := time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)
	seedCompletedOrder(t, db, day, entity.OrderTypeDineIn, "cash", "100.00", "8.00", "20.00", "128.00")
	voided := seedCompletedOrder(t, db, day, entity.OrderTypeDineIn, "cash", "900.00", "72.00", "180.00", "1152.00")
	require.NoError(t, db.Model(voided).Update("is_void", true).Error)

	row, err := svc.Daily(day)
	require.NoError(t, err)
	assert.Equal(t, 1, row.OrderCount)
	assert.True(t, row.GrossSale.Equal(d("128.00")), "gross: %s", row.GrossSale)
}

func TestMonthlyFallsBackToImportedSummaries(t *testing.T) {
	db := testDB(t)
	svc := newTestReportService(t, db)

	// ไม่มี order เดือนนั้นเลย มีแต่ summary จาก import
	for day := 1; day <= 2; day++ {
		date := time.Date(2023, time.June, day, 0, 0, 0, 0, time.UTC)
		require.NoError(t, db.Create(&entity.DailySummary{
			ID:         "daily_" + date.Format(time.DateOnly),
			Date:       date,
			GrossSale:  decimal.NewFromInt(1000),
			NetSale:    decimal.NewFromInt(900),
			OrderCount: 10,
		}).Error)
	}

	report, err := svc.Monthly(2023, time.June)
	require.NoError(t, err)
	require.Len(t, report.Days, 2)
	assert.True(t, report.Totals.GrossSale.Equal(d("2000")), "gross: %s", report.Totals.GrossSale)
	assert.Equal(t, 20, report.Totals.OrderCount)
}

func TestMonthlyPrefersLiveOrders(t *testing.T) {
	db := testDB(t)
	svc := newTestReportService(t, db)

	day := time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)
	seedCompletedOrder(t, db, day, entity.OrderTypeDineIn, "cash", "100.00", "8.00", "20.00", "128.00")
	// summary ของเดือนเดียวกันต้องถูกทับด้วยข้อมูลสด
	require.NoError(t, db.Create(&entity.DailySummary{
		ID:        "daily_2024-04-15",
		Date:      day.Truncate(24 * time.Hour),
		GrossSale: decimal.NewFromInt(9999),
	}).Error)

	report, err := svc.Monthly(2024, time.April)
	require.NoError(t, err)
	require.Len(t, report.Days, 1)
	assert.True(t, report.Totals.GrossSale.Equal(d("128.00")), "gross: %s", report.Totals.GrossSale)
}

func TestGrandTotalsOverlaysLiveMonths(t *testing.T) {
	db := testDB(t)
	svc := newTestReportService(t, db)

	require.NoError(t, db.Create(&entity.MonthlySummary{
		ID:        "monthly_2023-06-01",
		Month:     time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
		GrossSale: decimal.NewFromInt(5000),
		NetSale:   decimal.NewFromInt(4500),
	}).Error)
	// เดือนนี้มีทั้ง import และ order สด -> สดชนะ
	require.NoError(t, db.Create(&entity.MonthlySummary{
		ID:        "monthly_2024-04-01",
		Month:     time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		GrossSale: decimal.NewFromInt(7777),
	}).Error)
	day := time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)
	seedCompletedOrder(t, db, day, entity.OrderTypeDineIn, "cash", "100.00", "8.00", "20.00", "128.00")

	report, err := svc.GrandTotals()
	require.NoError(t, err)
	require.Len(t, report.Months, 2)
	assert.Equal(t, "2023-06", report.Months[0].Period)
	assert.Equal(t, "2024-04", report.Months[1].Period)
	assert.True(t, report.Months[1].GrossSale.Equal(d("128.00")), "live month wins: %s", report.Months[1].GrossSale)
	assert.True(t, report.Totals.GrossSale.Equal(d("5128.00")), "all time: %s", report.Totals.GrossSale)
	assert.Equal(t, "all_time", report.Totals.Period)
}

func TestSnapshotDailyUpsertsSummary(t *testing.T) {
	db := testDB(t)
	svc := newTestReportService(t, db)

	day := time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)
	seedCompletedOrder(t, db, day, entity.OrderTypeDineIn, "cash", "100.00", "8.00", "20.00", "128.00")

	ds, err := svc.SnapshotDaily(day)
	require.NoError(t, err)
	assert.Equal(t, "daily_2024-04-15", ds.ID)
	assert.Equal(t, 1, ds.OrderCount)

	// รันซ้ำต้องทับแถวเดิม
	seedCompletedOrder(t, db, day.Add(time.Hour), entity.OrderTypeTakeOut, "credit", "50.00", "4.00", "0.00", "54.00")
	ds, err = svc.SnapshotDaily(day)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.OrderCount)

	var count int64
	db.Model(&entity.DailySummary{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestExportCSVShape(t *testing.T) {
	db := testDB(t)
	svc := newTestReportService(t, db)

	day := time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)
	seedCompletedOrder(t, db, day, entity.OrderTypeDineIn, "cash", "100.00", "8.00", "20.00", "128.00")

	name, data, err := svc.ExportCSV(2024, time.April)
	require.NoError(t, err)
	assert.Equal(t, "April_2024_SALES.csv", name)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3, "header + one day + totals")
	assert.Equal(t, strings.Join(salesHeader, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-04-15,"))
	assert.True(t, strings.HasPrefix(lines[2], "April 2024,"))
	assert.Contains(t, lines[2], "128.00")
}

func TestExportMonthlyXLSXFilename(t *testing.T) {
	db := testDB(t)
	svc := newTestReportService(t, db)

	day := time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)
	seedCompletedOrder(t, db, day, entity.OrderTypeDineIn, "cash", "100.00", "8.00", "20.00", "128.00")

	name, f, err := svc.ExportMonthlyXLSX(2024, time.April)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "April_2024_SALES.xlsx", name)

	got, err := f.GetCellValue("Sales", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Period", got)
	got, err = f.GetCellValue("Sales", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-04-15", got)
}
