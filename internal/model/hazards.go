package model

// WeatherReport weather condition, table weather_reports
type WeatherReport struct {
	Municipality  string `gorm:"type:varchar(150);not null" json:"municipality"  binding:"required,max=150"`
	SkyCondition  string `gorm:"type:varchar(150)"           json:"sky_condition" binding:"max=150"`
	Wind          string `gorm:"type:varchar(150)"           json:"wind"          binding:"max=150"`
	Precipitation string `gorm:"type:varchar(150)"           json:"precipitation" binding:"max=150"`
	SeaCondition  string `gorm:"type:varchar(150)"           json:"sea_condition" binding:"max=150"`
	ReportRecord
}

func (WeatherReport) TableName() string { return "weather_reports" }

// WaterLevel river gauge reading, table water_levels
type WaterLevel struct {
	GaugingStation string   `gorm:"type:varchar(150);not null" json:"gauging_station" binding:"required,max=150"`
	CurrentLevel   *float64 `json:"current_level"  binding:"omitempty,gte=0"`
	AlarmLevel     *float64 `json:"alarm_level"    binding:"omitempty,gte=0"`
	CriticalLevel  *float64 `json:"critical_level" binding:"omitempty,gte=0"`
	AffectedAreas  string   `gorm:"type:text"       json:"affected_areas"`
	ReportRecord
}

func (WaterLevel) TableName() string { return "water_levels" }

// IncidentMonitored incident log entry, table incidents_monitored
type IncidentMonitored struct {
	KindsOfIncident string `gorm:"type:varchar(255);not null" json:"kinds_of_incident" binding:"required,max=255"`
	DateTime        string `gorm:"type:varchar(50)"            json:"date_time"         binding:"max=50"`
	Location        string `gorm:"type:varchar(255)"           json:"location"          binding:"max=255"`
	Description     string `gorm:"type:text"                   json:"description"`
	ActionsTaken    string `gorm:"type:text"                   json:"actions_taken"`
	Remarks         string `gorm:"type:text"                   json:"remarks"`
	Status          string `gorm:"type:varchar(50)"            json:"status"            binding:"max=50"`
	ReportRecord
}

func (IncidentMonitored) TableName() string { return "incidents_monitored" }
