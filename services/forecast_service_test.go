package services

import (
	"testing"
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"github.com/evinas93/Fuji-PoS-sub001/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestForecastService(t *testing.T, db *gorm.DB) *ForecastService {
	t.Helper()
	return NewForecastService(repository.NewSummaryRepository(db))
}

// seedDaily inserts one daily summary per value on consecutive days, with the
// last value landing on end.
func seedDaily(t *testing.T, db *gorm.DB, end time.Time, values []float64) {
	t.Helper()
	start := end.AddDate(0, 0, -(len(values) - 1))
	for i, v := range values {
		day := start.AddDate(0, 0, i)
		row := entity.DailySummary{
			ID:        "daily_" + day.Format(time.DateOnly),
			Date:      day,
			GrossSale: decimal.NewFromFloat(v),
		}
		require.NoError(t, db.Create(&row).Error)
	}
}

func constSeries(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestForecastConstantSeries(t *testing.T) {
	db := testDB(t)
	svc := newTestForecastService(t, db)

	// ทั้ง history และ prediction อยู่ใน April (multiplier 1.00)
	end := time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC)
	seedDaily(t, db, end, constSeries(14, 500))

	f, err := svc.Next7Days()
	require.NoError(t, err)

	require.Len(t, f.Days, 7)
	assert.Equal(t, "2024-04-15", f.Days[0].Date)
	assert.Equal(t, "2024-04-21", f.Days[6].Date)
	assert.Equal(t, 14, f.BasedOn)
	for _, d := range f.Days {
		assert.InDelta(t, 500.0, d.Predicted, 0.01, "flat history predicts flat: %s", d.Date)
	}
	// ข้อมูลนิ่งสนิท -> confidence ชนเพดาน
	assert.Equal(t, 0.95, f.Confidence)
}

func TestForecastUpwardTrend(t *testing.T) {
	db := testDB(t)
	svc := newTestForecastService(t, db)

	end := time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 14)
	for i := range values {
		values[i] = 100 + 10*float64(i)
	}
	seedDaily(t, db, end, values)

	f, err := svc.Next7Days()
	require.NoError(t, err)

	histMean := mean(values)
	for _, d := range f.Days {
		assert.Greater(t, d.Predicted, histMean, "rising trend must pull predictions above the historical mean, got %v on %s", d.Predicted, d.Date)
	}
}

func TestForecastNeverNegative(t *testing.T) {
	db := testDB(t)
	svc := newTestForecastService(t, db)

	end := time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 14)
	for i := range values {
		values[i] = 60 - 10*float64(i)
	}
	seedDaily(t, db, end, values)

	f, err := svc.Next7Days()
	require.NoError(t, err)
	for _, d := range f.Days {
		assert.GreaterOrEqual(t, d.Predicted, 0.0)
	}
}

func TestForecastAppliesMonthMultiplier(t *testing.T) {
	db := testDB(t)
	svc := newTestForecastService(t, db)

	// history จบสิ้นเดือน Nov -> prediction อยู่ใน Dec (multiplier 1.15)
	end := time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC)
	seedDaily(t, db, end, constSeries(14, 200))

	f, err := svc.Next7Days()
	require.NoError(t, err)
	for _, d := range f.Days {
		assert.InDelta(t, 200*1.15, d.Predicted, 0.01, d.Date)
	}
}

func TestForecastNeedsSevenDays(t *testing.T) {
	db := testDB(t)
	svc := newTestForecastService(t, db)

	end := time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC)
	seedDaily(t, db, end, constSeries(5, 500))

	_, err := svc.Next7Days()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 7 days")
}

func TestForecastConfidenceFloorOnNoisyData(t *testing.T) {
	db := testDB(t)
	svc := newTestForecastService(t, db)

	end := time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 14)
	for i := range values {
		if i%2 == 0 {
			values[i] = 10
		} else {
			values[i] = 1000
		}
	}
	seedDaily(t, db, end, values)

	f, err := svc.Next7Days()
	require.NoError(t, err)
	assert.Equal(t, 0.5, f.Confidence)
}

func TestAccuracyPerfectOnConstantSeries(t *testing.T) {
	db := testDB(t)
	svc := newTestForecastService(t, db)

	// ทุกวันอยู่ใน April เพื่อไม่ให้ multiplier บิดผล
	end := time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)
	seedDaily(t, db, end, constSeries(30, 750))

	acc, err := svc.Accuracy(14)
	require.NoError(t, err)
	assert.Equal(t, 14, acc.Samples)
	assert.Equal(t, 0.0, acc.MAPE)
	assert.Equal(t, 0.0, acc.RMSE)
}

func TestAccuracyNeedsWindowPlusSeven(t *testing.T) {
	db := testDB(t)
	svc := newTestForecastService(t, db)

	end := time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC)
	seedDaily(t, db, end, constSeries(15, 500))

	_, err := svc.Accuracy(14)
	require.Error(t, err)
}
