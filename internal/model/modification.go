package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserSnapshot identifies who made a change at the time it was made
type UserSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FieldChange old/new value of one field
type FieldChange struct {
	Old  any          `json:"old"`
	New  any          `json:"new"`
	User UserSnapshot `json:"user"`
}

// ChangeSet field name → change, for one update action
type ChangeSet map[string]FieldChange

// Modification append-only change ledger, table modifications
type Modification struct {
	ID        uint                          `gorm:"primaryKey"                         json:"id"`
	ModelType string                        `gorm:"type:varchar(100);not null"         json:"model_type"`
	ModelID   uint                          `gorm:"not null"                           json:"model_id"`
	Changes   datatypes.JSONType[ChangeSet] `gorm:"type:jsonb;not null"                json:"changes"`
	CreatedAt time.Time                     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName table name
func (Modification) TableName() string { return "modifications" }
