package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ImportMonthly      = "monthly_summary"
	ImportDaily        = "daily_summary"
	ImportTransactions = "transactions"
	ImportMenuItems    = "menu_items"
)

// RowError points at one bad cell. Row numbers are as seen in the file:
// header = row 1, first data row = row 2.
type RowError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value"`
	Error string `json:"error"`
}

type ImportResult struct {
	Success       bool       `json:"success"`
	ImportID      string     `json:"importId"`
	Type          string     `json:"type"`
	FileName      string     `json:"fileName"`
	TotalRows     int        `json:"totalRows"`
	ProcessedRows int        `json:"processedRows"`
	Errors        []RowError `json:"errors"`
}

// ImportService validates and loads CSV files into the summary tables.
// Imports are all-or-nothing: one bad cell rejects the whole batch and
// nothing is written.
type ImportService struct {
	DB          *gorm.DB
	SummaryRepo *repository.SummaryRepository
	MenuRepo    *repository.MenuRepository
	AuditRepo   *repository.AuditRepository
}

func NewImportService(db *gorm.DB, summaryRepo *repository.SummaryRepository, menuRepo *repository.MenuRepository, auditRepo *repository.AuditRepository) *ImportService {
	return &ImportService{DB: db, SummaryRepo: summaryRepo, MenuRepo: menuRepo, AuditRepo: auditRepo}
}

func ValidImportType(t string) bool {
	switch t {
	case ImportMonthly, ImportDaily, ImportTransactions, ImportMenuItems:
		return true
	}
	return false
}

// Import parses, validates and (if clean) writes the batch in one
// transaction. A successful run appends one audit entry; a rejected batch is
// logged by the caller instead.
func (s *ImportService) Import(typ string, r io.Reader, fileName string, actor uint) (*ImportResult, error) {
	if !ValidImportType(typ) {
		return nil, fmt.Errorf("unknown import type %q", typ)
	}

	result := &ImportResult{
		ImportID: uuid.NewString(),
		Type:     typ,
		FileName: fileName,
	}

	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("file has no header row")
	}

	header := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	rows := records[1:]
	result.TotalRows = len(rows)

	var (
		monthly      []entity.MonthlySummary
		daily        []entity.DailySummary
		transactions []entity.TransactionRecord
		menuItems    []entity.MenuItem
	)

	for i, rec := range rows {
		// header = แถว 1 → data เริ่มแถว 2
		rowNum := i + 2
		rv := rowValidator{header: header, record: rec, row: rowNum}
		switch typ {
		case ImportMonthly:
			monthly = append(monthly, parseMonthlyRow(&rv))
		case ImportDaily:
			daily = append(daily, parseDailyRow(&rv))
		case ImportTransactions:
			transactions = append(transactions, parseTransactionRow(&rv))
		case ImportMenuItems:
			menuItems = append(menuItems, parseMenuItemRow(&rv))
		}
		result.Errors = append(result.Errors, rv.errs...)
	}

	if len(result.Errors) > 0 {
		result.ProcessedRows = 0
		return result, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		switch typ {
		case ImportMonthly:
			return s.SummaryRepo.UpsertMonthly(tx, monthly)
		case ImportDaily:
			return s.SummaryRepo.UpsertDaily(tx, daily)
		case ImportTransactions:
			return s.SummaryRepo.InsertTransactions(tx, transactions)
		case ImportMenuItems:
			if len(menuItems) == 0 {
				return nil
			}
			return tx.Create(&menuItems).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Success = true
	result.ProcessedRows = result.TotalRows

	summary, _ := json.Marshal(map[string]any{
		"fileName":      fileName,
		"type":          typ,
		"totalRows":     result.TotalRows,
		"processedRows": result.ProcessedRows,
		"errorCount":    0,
	})
	if err := s.AuditRepo.Append(s.DB, &entity.AuditLog{
		TableName: typ,
		RecordID:  result.ImportID,
		Action:    "import",
		NewValues: string(summary),
		UserID:    actor,
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// LogRejected writes the audit entry for a batch the validator threw out.
func (s *ImportService) LogRejected(result *ImportResult, actor uint) {
	summary, _ := json.Marshal(map[string]any{
		"fileName":      result.FileName,
		"type":          result.Type,
		"totalRows":     result.TotalRows,
		"processedRows": 0,
		"errorCount":    len(result.Errors),
	})
	_ = s.AuditRepo.Append(s.DB, &entity.AuditLog{
		TableName: result.Type,
		RecordID:  result.ImportID,
		Action:    "import_rejected",
		NewValues: string(summary),
		UserID:    actor,
	})
}

func (s *ImportService) History(limit int) ([]entity.AuditLog, error) {
	runs, err := s.AuditRepo.ListByAction("import", limit)
	if err != nil {
		return nil, err
	}
	rejected, err := s.AuditRepo.ListByAction("import_rejected", limit)
	if err != nil {
		return nil, err
	}
	all := append(runs, rejected...)
	// ใหม่ -> เก่า
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].ID > all[j-1].ID; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ----- per-row validation -----

type rowValidator struct {
	header map[string]int
	record []string
	row    int
	errs   []RowError
}

func (v *rowValidator) raw(field string) string {
	idx, ok := v.header[field]
	if !ok || idx >= len(v.record) {
		return ""
	}
	return strings.TrimSpace(v.record[idx])
}

func (v *rowValidator) fail(field, value, msg string) {
	v.errs = append(v.errs, RowError{Row: v.row, Field: field, Value: value, Error: msg})
}

// date ต้องเป็น YYYY-MM-DD และ parse ได้จริง (2024-13-40 ไม่ผ่าน)
func (v *rowValidator) date(field string, required bool) time.Time {
	raw := v.raw(field)
	if raw == "" {
		if required {
			v.fail(field, raw, "required field is empty")
		}
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		v.fail(field, raw, "must be a valid YYYY-MM-DD date")
		return time.Time{}
	}
	return t
}

// decimal: ว่างได้ (นับเป็นศูนย์) ไม่ว่างต้อง parse ได้ แล้วปัดเป็น 2 ตำแหน่ง
func (v *rowValidator) decimal(field string, required bool) decimal.Decimal {
	raw := v.raw(field)
	if raw == "" {
		if required {
			v.fail(field, raw, "required field is empty")
		}
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		v.fail(field, raw, "must be a number")
		return decimal.Zero
	}
	return d.Round(2)
}

func (v *rowValidator) integer(field string, required bool) int {
	raw := v.raw(field)
	if raw == "" {
		if required {
			v.fail(field, raw, "required field is empty")
		}
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		v.fail(field, raw, "must be a whole number")
		return 0
	}
	return n
}

func (v *rowValidator) text(field string, required bool) string {
	raw := v.raw(field)
	if raw == "" && required {
		v.fail(field, raw, "required field is empty")
	}
	return raw
}

func parseMonthlyRow(v *rowValidator) entity.MonthlySummary {
	month := v.date("month", true)
	return entity.MonthlySummary{
		ID:            "monthly_" + month.Format(time.DateOnly),
		Month:         month,
		ToGoSales:     v.decimal("to_go_sales", false),
		DineInSales:   v.decimal("dine_in_sales", false),
		TaxCollected:  v.decimal("tax_collected", false),
		GrossSale:     v.decimal("gross_sale", false),
		Gratuity:      v.decimal("gratuity", false),
		NetSale:       v.decimal("net_sale", false),
		CreditTotal:   v.decimal("credit_total", false),
		CashDeposited: v.decimal("cash_deposited", false),
	}
}

func parseDailyRow(v *rowValidator) entity.DailySummary {
	date := v.date("date", true)
	return entity.DailySummary{
		ID:            "daily_" + date.Format(time.DateOnly),
		Date:          date,
		ToGoSales:     v.decimal("to_go_sales", false),
		DineInSales:   v.decimal("dine_in_sales", false),
		TaxCollected:  v.decimal("tax_collected", false),
		GrossSale:     v.decimal("gross_sale", false),
		Gratuity:      v.decimal("gratuity", false),
		NetSale:       v.decimal("net_sale", false),
		CreditTotal:   v.decimal("credit_total", false),
		CashDeposited: v.decimal("cash_deposited", false),
		OrderCount:    v.integer("order_count", false),
	}
}

func parseTransactionRow(v *rowValidator) entity.TransactionRecord {
	return entity.TransactionRecord{
		Date:          v.date("date", true),
		OrderNumber:   v.text("order_number", false),
		OrderType:     v.text("order_type", false),
		Amount:        v.decimal("amount", true),
		Tax:           v.decimal("tax", false),
		Gratuity:      v.decimal("gratuity", false),
		PaymentMethod: v.text("payment_method", false),
	}
}

func parseMenuItemRow(v *rowValidator) entity.MenuItem {
	return entity.MenuItem{
		Name:            v.text("name", true),
		Category:        v.text("category", false),
		Description:     v.text("description", false),
		Price:           v.decimal("price", true),
		PrepTimeMinutes: v.integer("prep_time_minutes", false),
		IsAvailable:     true,
	}
}

// ----- templates -----

var templates = map[string]string{
	ImportMonthly: `# Monthly summary import
# Required: month (YYYY-MM-DD, first day of the month)
# Optional: all money columns (blank = 0)
month,to_go_sales,dine_in_sales,tax_collected,gross_sale,gratuity,net_sale,credit_total,cash_deposited
2024-01-01,1500.00,8200.50,776.04,10476.54,1640.10,8060.40,7000.00,3476.54
`,
	ImportDaily: `# Daily summary import
# Required: date (YYYY-MM-DD)
# Optional: money columns and order_count (blank = 0)
date,to_go_sales,dine_in_sales,tax_collected,gross_sale,gratuity,net_sale,credit_total,cash_deposited,order_count
2024-01-15,120.00,640.50,60.84,821.34,128.10,632.40,500.00,321.34,23
`,
	ImportTransactions: `# Transaction import (always inserts, no dedup)
# Required: date (YYYY-MM-DD), amount
# Optional: order_number, order_type, tax, gratuity, payment_method
date,order_number,order_type,amount,tax,gratuity,payment_method
2024-01-15,1042,dine_in,54.20,4.01,10.03,credit
`,
	ImportMenuItems: `# Menu item import
# Required: name, price
# Optional: category, description, prep_time_minutes
name,category,price,prep_time_minutes,description
California Roll,sushi,12.50,8,Crab and avocado roll
`,
}

func (s *ImportService) Template(typ string) (string, error) {
	t, ok := templates[typ]
	if !ok {
		return "", fmt.Errorf("unknown import type %q", typ)
	}
	return t, nil
}
