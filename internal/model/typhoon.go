package model

import "time"

// Typhoon statuses. active ⇄ paused → ended
const (
	TyphoonActive = "active"
	TyphoonPaused = "paused"
	TyphoonEnded  = "ended"
)

// Typhoon reporting cycle, table typhoons
type Typhoon struct {
	ID          uint       `gorm:"primaryKey"                                 json:"id"`
	Name        string     `gorm:"type:varchar(150);not null"                 json:"name"`
	Description *string    `gorm:"type:text"                                  json:"description"`
	Status      string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StartedAt   time.Time  `gorm:"not null"                                   json:"started_at"`
	PausedAt    *time.Time `json:"paused_at"`
	ResumedAt   *time.Time `json:"resumed_at"`
	EndedAt     *time.Time `json:"ended_at"`
	CreatedBy   string     `gorm:"type:uuid;not null"                         json:"created_by"`
	EndedBy     *string    `gorm:"type:uuid"                                  json:"ended_by"`
	ReportPath  *string    `gorm:"type:varchar(255)"                          json:"report_path"`
	Timestamps
}

// TableName table name
func (Typhoon) TableName() string { return "typhoons" }

// IsOpen reports whether data entry can still attach to this typhoon
func (t *Typhoon) IsOpen() bool {
	return t.Status == TyphoonActive || t.Status == TyphoonPaused
}
