package model

import "time"

// Timestamps audit columns managed by GORM
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ReportRecord bookkeeping columns shared by every report entity
type ReportRecord struct {
	ID        uint      `gorm:"primaryKey"                         json:"id"`
	UserID    string    `gorm:"type:uuid;not null"                 json:"user_id"`
	UpdatedBy string    `gorm:"type:uuid;not null"                 json:"updated_by"`
	TyphoonID *uint     `gorm:"index"                              json:"typhoon_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Base exposes the bookkeeping columns of any entity embedding ReportRecord
func (r *ReportRecord) Base() *ReportRecord { return r }

// Record is implemented by pointers to every report entity
type Record interface {
	TableName() string
	Base() *ReportRecord
}

// BookkeepingKeys are the JSON keys of ReportRecord; never accepted from row input
var BookkeepingKeys = []string{"id", "user_id", "updated_by", "typhoon_id", "created_at", "updated_at"}
