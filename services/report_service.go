package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportService aggregates completed non-void orders into sales rows and
// exports them. Months with no live orders fall back to imported summaries.
type ReportService struct {
	DB          *gorm.DB
	ReceiptRepo *repository.ReceiptRepository
	SummaryRepo *repository.SummaryRepository
}

func NewReportService(db *gorm.DB, receiptRepo *repository.ReceiptRepository, summaryRepo *repository.SummaryRepository) *ReportService {
	return &ReportService{DB: db, ReceiptRepo: receiptRepo, SummaryRepo: summaryRepo}
}

// SalesRow is the fixed export row shape.
type SalesRow struct {
	Period        string          `json:"period"`
	ToGoSales     decimal.Decimal `json:"toGoSales"`
	DineInSales   decimal.Decimal `json:"dineInSales"`
	Tax           decimal.Decimal `json:"tax"`
	GrossSale     decimal.Decimal `json:"grossSale"`
	Gratuity      decimal.Decimal `json:"gratuity"`
	NetSale       decimal.Decimal `json:"netSale"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
	CashDeposited decimal.Decimal `json:"cashDeposited"`
	OrderCount    int             `json:"orderCount"`
}

var salesHeader = []string{
	"Period", "To-Go Sales", "Dine-In Sales", "Tax", "Gross Sale",
	"Gratuity", "Net Sale", "Credit Total", "Cash Deposited",
}

func aggregate(period string, orders []entity.Order) SalesRow {
	row := SalesRow{Period: period}
	for i := range orders {
		o := &orders[i]
		switch o.OrderType {
		case entity.OrderTypeTakeOut:
			row.ToGoSales = row.ToGoSales.Add(o.Subtotal.Sub(o.DiscountAmount))
		default:
			row.DineInSales = row.DineInSales.Add(o.Subtotal.Sub(o.DiscountAmount))
		}
		row.Tax = row.Tax.Add(o.TaxAmount)
		row.Gratuity = row.Gratuity.Add(o.GratuityAmount)
		row.GrossSale = row.GrossSale.Add(o.TotalAmount)
		switch strings.ToLower(o.PaymentMethod) {
		case "cash":
			row.CashDeposited = row.CashDeposited.Add(o.AmountPaid)
		case "credit", "card", "credit_card":
			row.CreditTotal = row.CreditTotal.Add(o.AmountPaid)
		}
		row.OrderCount++
	}
	row.NetSale = row.GrossSale.Sub(row.Tax).Sub(row.Gratuity)
	return row
}

func (s *ReportService) Daily(date time.Time) (*SalesRow, error) {
	day := date.Truncate(24 * time.Hour)
	orders, err := s.ReceiptRepo.CompletedBetween(day, day.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	row := aggregate(day.Format(time.DateOnly), orders)
	return &row, nil
}

// SnapshotDaily rebuilds the derived daily_summaries row from live orders,
// feeding the forecast without a separate import.
func (s *ReportService) SnapshotDaily(date time.Time) (*entity.DailySummary, error) {
	row, err := s.Daily(date)
	if err != nil {
		return nil, err
	}
	day := date.Truncate(24 * time.Hour)
	ds := entity.DailySummary{
		ID:            "daily_" + day.Format(time.DateOnly),
		Date:          day,
		ToGoSales:     row.ToGoSales,
		DineInSales:   row.DineInSales,
		TaxCollected:  row.Tax,
		GrossSale:     row.GrossSale,
		Gratuity:      row.Gratuity,
		NetSale:       row.NetSale,
		CreditTotal:   row.CreditTotal,
		CashDeposited: row.CashDeposited,
		OrderCount:    row.OrderCount,
	}
	if err := s.SummaryRepo.UpsertDaily(s.DB, []entity.DailySummary{ds}); err != nil {
		return nil, err
	}
	return &ds, nil
}

type MonthlyReport struct {
	Days   []SalesRow `json:"days"`
	Totals SalesRow   `json:"totals"`
}

func (s *ReportService) Monthly(year int, month time.Month) (*MonthlyReport, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	orders, err := s.ReceiptRepo.CompletedBetween(start, end)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{Totals: SalesRow{Period: fmt.Sprintf("%s %d", month, year)}}

	if len(orders) == 0 {
		// เดือนเก่าที่ข้อมูลมาจาก CSV import
		days, err := s.SummaryRepo.DailyRange(start, end)
		if err != nil {
			return nil, err
		}
		for _, d := range days {
			report.Days = append(report.Days, summaryToRow(d))
		}
		report.Totals = sumRows(report.Totals.Period, report.Days)
		return report, nil
	}

	byDay := map[string][]entity.Order{}
	for _, o := range orders {
		key := o.CompletedAt.Format(time.DateOnly)
		byDay[key] = append(byDay[key], o)
	}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		if dayOrders, ok := byDay[key]; ok {
			report.Days = append(report.Days, aggregate(key, dayOrders))
		}
	}
	report.Totals = sumRows(report.Totals.Period, report.Days)
	return report, nil
}

func summaryToRow(d entity.DailySummary) SalesRow {
	return SalesRow{
		Period:        d.Date.Format(time.DateOnly),
		ToGoSales:     d.ToGoSales,
		DineInSales:   d.DineInSales,
		Tax:           d.TaxCollected,
		GrossSale:     d.GrossSale,
		Gratuity:      d.Gratuity,
		NetSale:       d.NetSale,
		CreditTotal:   d.CreditTotal,
		CashDeposited: d.CashDeposited,
		OrderCount:    d.OrderCount,
	}
}

func sumRows(period string, rows []SalesRow) SalesRow {
	total := SalesRow{Period: period}
	for _, r := range rows {
		total.ToGoSales = total.ToGoSales.Add(r.ToGoSales)
		total.DineInSales = total.DineInSales.Add(r.DineInSales)
		total.Tax = total.Tax.Add(r.Tax)
		total.GrossSale = total.GrossSale.Add(r.GrossSale)
		total.Gratuity = total.Gratuity.Add(r.Gratuity)
		total.NetSale = total.NetSale.Add(r.NetSale)
		total.CreditTotal = total.CreditTotal.Add(r.CreditTotal)
		total.CashDeposited = total.CashDeposited.Add(r.CashDeposited)
		total.OrderCount += r.OrderCount
	}
	return total
}

type GrandTotalsReport struct {
	Months []SalesRow `json:"months"`
	Totals SalesRow   `json:"totals"`
}

// GrandTotals merges imported monthly summaries with live months; the live
// aggregation wins where both exist.
func (s *ReportService) GrandTotals() (*GrandTotalsReport, error) {
	imported, err := s.SummaryRepo.ListMonthly()
	if err != nil {
		return nil, err
	}

	byMonth := map[string]SalesRow{}
	var keys []string
	for _, m := range imported {
		key := m.Month.Format("2006-01")
		byMonth[key] = SalesRow{
			Period:        key,
			ToGoSales:     m.ToGoSales,
			DineInSales:   m.DineInSales,
			Tax:           m.TaxCollected,
			GrossSale:     m.GrossSale,
			Gratuity:      m.Gratuity,
			NetSale:       m.NetSale,
			CreditTotal:   m.CreditTotal,
			CashDeposited: m.CashDeposited,
		}
		keys = append(keys, key)
	}

	orders, err := s.ReceiptRepo.CompletedBetween(time.Time{}, time.Now().AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	live := map[string][]entity.Order{}
	for _, o := range orders {
		key := o.CompletedAt.Format("2006-01")
		live[key] = append(live[key], o)
	}
	for key, monthOrders := range live {
		if _, seen := byMonth[key]; !seen {
			keys = append(keys, key)
		}
		byMonth[key] = aggregate(key, monthOrders)
	}

	sortStrings(keys)
	report := &GrandTotalsReport{}
	for _, key := range keys {
		report.Months = append(report.Months, byMonth[key])
	}
	report.Totals = sumRows("all_time", report.Months)
	return report, nil
}

func sortStrings(ss []string) {
	for i := 1; i < len(ss); i++ {
		for j := i; j > 0 && ss[j] < ss[j-1]; j-- {
			ss[j], ss[j-1] = ss[j-1], ss[j]
		}
	}
}

// ----- exports -----

func writeSheet(f *excelize.File, sheet string, rows []SalesRow, totals SalesRow) error {
	for col, h := range salesHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	all := append(append([]SalesRow{}, rows...), totals)
	for i, r := range all {
		values := []any{
			r.Period,
			r.ToGoSales.InexactFloat64(),
			r.DineInSales.InexactFloat64(),
			r.Tax.InexactFloat64(),
			r.GrossSale.InexactFloat64(),
			r.Gratuity.InexactFloat64(),
			r.NetSale.InexactFloat64(),
			r.CreditTotal.InexactFloat64(),
			r.CashDeposited.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportMonthlyXLSX returns `<Month>_<Year>_SALES.xlsx`.
func (s *ReportService) ExportMonthlyXLSX(year int, month time.Month) (string, *excelize.File, error) {
	report, err := s.Monthly(year, month)
	if err != nil {
		return "", nil, err
	}

	f := excelize.NewFile()
	sheet := "Sales"
	f.SetSheetName("Sheet1", sheet)
	if err := writeSheet(f, sheet, report.Days, report.Totals); err != nil {
		return "", nil, err
	}

	name := fmt.Sprintf("%s_%d_SALES.xlsx", month, year)
	return name, f, nil
}

// ExportGrandXLSX returns `Grand_Totals_Sales_Summary.xlsx`.
func (s *ReportService) ExportGrandXLSX() (string, *excelize.File, error) {
	report, err := s.GrandTotals()
	if err != nil {
		return "", nil, err
	}

	f := excelize.NewFile()
	sheet := "Grand Totals"
	f.SetSheetName("Sheet1", sheet)
	if err := writeSheet(f, sheet, report.Months, report.Totals); err != nil {
		return "", nil, err
	}
	return "Grand_Totals_Sales_Summary.xlsx", f, nil
}

// ExportCSV is the CSV equivalent of the monthly workbook.
func (s *ReportService) ExportCSV(year int, month time.Month) (string, []byte, error) {
	report, err := s.Monthly(year, month)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(salesHeader); err != nil {
		return "", nil, err
	}
	for _, r := range append(report.Days, report.Totals) {
		rec := []string{
			r.Period,
			r.ToGoSales.StringFixed(2),
			r.DineInSales.StringFixed(2),
			r.Tax.StringFixed(2),
			r.GrossSale.StringFixed(2),
			r.Gratuity.StringFixed(2),
			r.NetSale.StringFixed(2),
			r.CreditTotal.StringFixed(2),
			r.CashDeposited.StringFixed(2),
		}
		if err := w.Write(rec); err != nil {
			return "", nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}
	name := fmt.Sprintf("%s_%d_SALES.csv", month, year)
	return name, buf.Bytes(), nil
}
