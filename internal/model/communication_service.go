package model

// CommunicationService admin-maintained reference list, table communication_services.
// Rows are soft-disabled through IsActive and never deleted.
type CommunicationService struct {
	ID        uint    `gorm:"primaryKey"                 json:"id"`
	Name      string  `gorm:"type:varchar(150);not null" json:"name"`
	IsActive  bool    `gorm:"not null;default:true"      json:"is_active"`
	CreatedBy *string `gorm:"type:uuid"                  json:"created_by,omitempty"`
	UpdatedBy *string `gorm:"type:uuid"                  json:"updated_by,omitempty"`
	Timestamps
}

// TableName table name
func (CommunicationService) TableName() string { return "communication_services" }
