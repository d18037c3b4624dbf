package repository

import (
	"time"

	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SummaryRepository struct {
	DB *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{DB: db}
}

// Upsert keyed by the derived id: re-import ของเดือนเดิมทับของเก่า
func (r *SummaryRepository) UpsertMonthly(tx *gorm.DB, rows []entity.MonthlySummary) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rows).Error
}

func (r *SummaryRepository) UpsertDaily(tx *gorm.DB, rows []entity.DailySummary) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rows).Error
}

func (r *SummaryRepository) InsertTransactions(tx *gorm.DB, rows []entity.TransactionRecord) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (r *SummaryRepository) ListMonthly() ([]entity.MonthlySummary, error) {
	var rows []entity.MonthlySummary
	err := r.DB.Order("month").Find(&rows).Error
	return rows, err
}

// DailyRange คืน summary ช่วง [from, to) เรียงตามวัน
func (r *SummaryRepository) DailyRange(from, to time.Time) ([]entity.DailySummary, error) {
	var rows []entity.DailySummary
	err := r.DB.Where("date >= ? AND date < ?", from, to).Order("date").Find(&rows).Error
	return rows, err
}

func (r *SummaryRepository) LatestDaily(limit int) ([]entity.DailySummary, error) {
	var rows []entity.DailySummary
	err := r.DB.Order("date DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	// กลับลำดับให้เก่า -> ใหม่
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
