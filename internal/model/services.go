package model

// Communication service availability
const (
	CommAvailable   = "available"
	CommUnavailable = "unavailable"
	CommLimited     = "limited"
)

// ClassSuspension school closures, table class_suspensions
type ClassSuspension struct {
	Level            string `gorm:"type:varchar(100);not null" json:"level"              binding:"required,max=100"`
	DateOfSuspension string `gorm:"type:varchar(10)"            json:"date_of_suspension" binding:"omitempty,datetime=2006-01-02"`
	Remarks          string `gorm:"type:text"                   json:"remarks"`
	ReportRecord
}

func (ClassSuspension) TableName() string { return "class_suspensions" }

// WorkSuspension office closures, table work_suspensions
type WorkSuspension struct {
	Category         string `gorm:"type:varchar(150);not null" json:"category"           binding:"required,max=150"`
	DateOfSuspension string `gorm:"type:varchar(10)"            json:"date_of_suspension" binding:"omitempty,datetime=2006-01-02"`
	Remarks          string `gorm:"type:text"                   json:"remarks"`
	ReportRecord
}

func (WorkSuspension) TableName() string { return "work_suspensions" }

// RoadBridgeStatus passability of roads and bridges, table road_bridge_statuses
type RoadBridgeStatus struct {
	RoadBridgeName string `gorm:"type:varchar(255);not null" json:"road_bridge_name" binding:"required,max=255"`
	Status         string `gorm:"type:varchar(100)"           json:"status"           binding:"max=100"`
	AreasAffected  string `gorm:"type:text"                   json:"areas_affected"`
	ReRouting      string `gorm:"type:text"                   json:"re_routing"`
	Remarks        string `gorm:"type:text"                   json:"remarks"`
	ReportRecord
}

func (RoadBridgeStatus) TableName() string { return "road_bridge_statuses" }

// PowerOutage interrupted feeders, table power_outages
type PowerOutage struct {
	AreasAffected        string `gorm:"type:text;not null" json:"areas_affected"         binding:"required"`
	DateTimeInterruption string `gorm:"type:varchar(50)"   json:"date_time_interruption" binding:"max=50"`
	DateTimeRestored     string `gorm:"type:varchar(50)"   json:"date_time_restored"     binding:"max=50"`
	Remarks              string `gorm:"type:text"          json:"remarks"`
	ReportRecord
}

func (PowerOutage) TableName() string { return "power_outages" }

// CommunicationStatus availability of a CommunicationService, table communication_statuses
type CommunicationStatus struct {
	CommunicationServiceID *uint  `gorm:"not null"                  json:"communication_service_id" binding:"required"`
	Status                 string `gorm:"type:varchar(20);not null" json:"status"                   binding:"required,oneof=available unavailable limited"`
	Remarks                string `gorm:"type:text"                 json:"remarks"`
	ReportRecord

	CommunicationService *CommunicationService `gorm:"foreignKey:CommunicationServiceID" json:"communication_service,omitempty" mapstructure:"-"`
}

func (CommunicationStatus) TableName() string { return "communication_statuses" }
