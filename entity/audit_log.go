package entity

import (
	"time"
)

// AuditLog is append-only. Written on every mutating admin action
// (void, edit, import, print).
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TableName string    `gorm:"index" json:"tableName"`
	RecordID  string    `json:"recordId"`
	Action    string    `gorm:"index" json:"action"`
	OldValues string    `gorm:"type:text" json:"oldValues"`
	NewValues string    `gorm:"type:text" json:"newValues"`
	UserID    uint      `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
