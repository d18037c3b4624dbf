package services

import (
	"strings"
	"testing"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestImportService(t *testing.T, db *gorm.DB) *ImportService {
	t.Helper()
	return NewImportService(db,
		repository.NewSummaryRepository(db),
		repository.NewMenuRepository(db),
		repository.NewAuditRepository(db))
}

func TestImportDailyBadDateRejectsWholeBatch(t *testing.T) {
	db := testDB(t)
	svc := newTestImportService(t, db)

	csvData := `date,to_go_sales,dine_in_sales,gross_sale
2024-01-01,100.00,500.00,600.00
2024-01-02,110.00,520.00,630.00
2024-13-40,120.00,540.00,660.00
`
	result, err := svc.Import(ImportDaily, strings.NewReader(csvData), "daily.csv", 1)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.ProcessedRows)
	require.Len(t, result.Errors, 1)
	// header = แถว 1 → แถวเสียคือแถว 4 ของไฟล์
	assert.Equal(t, 4, result.Errors[0].Row)
	assert.Equal(t, "date", result.Errors[0].Field)
	assert.Equal(t, "2024-13-40", result.Errors[0].Value)

	var count int64
	db.Model(&entity.DailySummary{}).Count(&count)
	assert.EqualValues(t, 0, count, "nothing may be written on a rejected batch")
}

func TestImportReportsAllErrorsTogether(t *testing.T) {
	db := testDB(t)
	svc := newTestImportService(t, db)

	csvData := `date,to_go_sales,dine_in_sales
not-a-date,abc,100.00
2024-01-02,,xyz
`
	result, err := svc.Import(ImportDaily, strings.NewReader(csvData), "daily.csv", 1)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 3)

	fields := map[int][]string{}
	for _, e := range result.Errors {
		fields[e.Row] = append(fields[e.Row], e.Field)
	}
	assert.ElementsMatch(t, []string{"date", "to_go_sales"}, fields[2])
	assert.ElementsMatch(t, []string{"dine_in_sales"}, fields[3])
}

func TestImportMissingRequiredField(t *testing.T) {
	db := testDB(t)
	svc := newTestImportService(t, db)

	csvData := `date,order_number,amount
2024-02-01,1042,
`
	result, err := svc.Import(ImportTransactions, strings.NewReader(csvData), "tx.csv", 1)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "amount", result.Errors[0].Field)
	assert.Equal(t, "required field is empty", result.Errors[0].Error)
}

func TestImportMonthlyUpsertOverwrites(t *testing.T) {
	db := testDB(t)
	svc := newTestImportService(t, db)

	first := `month,gross_sale,net_sale
2024-01-01,10000.00,9000.00
`
	result, err := svc.Import(ImportMonthly, strings.NewReader(first), "jan.csv", 1)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.ProcessedRows)

	second := `month,gross_sale,net_sale
2024-01-01,12000.00,10800.00
`
	result, err = svc.Import(ImportMonthly, strings.NewReader(second), "jan-fixed.csv", 1)
	require.NoError(t, err)
	require.True(t, result.Success)

	var rows []entity.MonthlySummary
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1, "same derived id must overwrite, not duplicate")
	assert.Equal(t, "monthly_2024-01-01", rows[0].ID)
	assert.True(t, rows[0].GrossSale.Equal(d("12000.00")), "gross: %s", rows[0].GrossSale)
}

func TestImportTransactionsAlwaysInserts(t *testing.T) {
	db := testDB(t)
	svc := newTestImportService(t, db)

	csvData := `date,order_number,amount
2024-02-01,1042,54.20
`
	for i := 0; i < 2; i++ {
		result, err := svc.Import(ImportTransactions, strings.NewReader(csvData), "tx.csv", 1)
		require.NoError(t, err)
		require.True(t, result.Success)
	}

	var count int64
	db.Model(&entity.TransactionRecord{}).Count(&count)
	assert.EqualValues(t, 2, count, "transactions are not deduplicated")
}

func TestImportSkipsCommentLinesAndRoundsDecimals(t *testing.T) {
	db := testDB(t)
	svc := newTestImportService(t, db)

	csvData := `# comment line
# another comment
date,to_go_sales,gross_sale
2024-03-05,10.999,100.005
`
	result, err := svc.Import(ImportDaily, strings.NewReader(csvData), "daily.csv", 1)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.TotalRows)

	var row entity.DailySummary
	require.NoError(t, db.First(&row).Error)
	assert.True(t, row.ToGoSales.Equal(d("11.00")), "to_go: %s", row.ToGoSales)
	assert.True(t, row.GrossSale.Equal(d("100.01")), "gross: %s", row.GrossSale)
}

func TestImportWritesAuditEntry(t *testing.T) {
	db := testDB(t)
	svc := newTestImportService(t, db)

	csvData := `date,gross_sale
2024-03-05,100.00
`
	result, err := svc.Import(ImportDaily, strings.NewReader(csvData), "daily.csv", 7)
	require.NoError(t, err)
	require.True(t, result.Success)

	var logs []entity.AuditLog
	require.NoError(t, db.Where("action = ?", "import").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, ImportDaily, logs[0].TableName)
	assert.Equal(t, result.ImportID, logs[0].RecordID)
	assert.EqualValues(t, 7, logs[0].UserID)
	assert.Contains(t, logs[0].NewValues, "daily.csv")
}

func TestImportMenuItems(t *testing.T) {
	db := testDB(t)
	svc := newTestImportService(t, db)

	csvData := `name,category,price,prep_time_minutes
California Roll,sushi,12.50,8
Miso Soup,soups,4.00,3
`
	result, err := svc.Import(ImportMenuItems, strings.NewReader(csvData), "menu.csv", 1)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.ProcessedRows)

	var items []entity.MenuItem
	require.NoError(t, db.Order("name").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, "California Roll", items[0].Name)
	assert.True(t, items[0].IsAvailable)
}

func TestTemplatesExistForEveryType(t *testing.T) {
	db := testDB(t)
	svc := newTestImportService(t, db)

	for _, typ := range []string{ImportMonthly, ImportDaily, ImportTransactions, ImportMenuItems} {
		tpl, err := svc.Template(typ)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tpl, "#"), "template starts with comments")
		assert.GreaterOrEqual(t, strings.Count(tpl, "\n"), 3, "comments + header + example row")
	}

	_, err := svc.Template("nonsense")
	assert.Error(t, err)
}
