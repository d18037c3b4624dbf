package repository

import (
	"github.com/evinas93/Fuji-PoS-sub001/entity"
	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Append(tx *gorm.DB, e *entity.AuditLog) error {
	return tx.Create(e).Error
}

func (r *AuditRepository) ListByAction(action string, limit int) ([]entity.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []entity.AuditLog
	err := r.DB.Where("action = ?", action).Order("id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
