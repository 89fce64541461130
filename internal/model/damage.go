package model

// DamagedHouse house damage per barangay, table damaged_houses
type DamagedHouse struct {
	Barangay  string `gorm:"type:varchar(150);not null" json:"barangay"  binding:"required,max=150"`
	Partially *int   `json:"partially" binding:"omitempty,gte=0"`
	Totally   *int   `json:"totally"   binding:"omitempty,gte=0"`
	Total     *int   `json:"total"     binding:"omitempty,gte=0"`
	ReportRecord
}

func (DamagedHouse) TableName() string { return "damaged_houses" }

// PreEmptiveEvacuation evacuees per barangay and center, table pre_emptive_evacuations
type PreEmptiveEvacuation struct {
	Barangay         string `gorm:"type:varchar(150);not null" json:"barangay"          binding:"required,max=150"`
	EvacuationCenter string `gorm:"type:varchar(255)"           json:"evacuation_center" binding:"max=255"`
	Families         *int   `json:"families" binding:"omitempty,gte=0"`
	Persons          *int   `json:"persons"  binding:"omitempty,gte=0"`
	ReportRecord
}

func (PreEmptiveEvacuation) TableName() string { return "pre_emptive_evacuations" }

// ReliefAssistance relief distributed per barangay, table relief_assistances
type ReliefAssistance struct {
	Barangay       string   `gorm:"type:varchar(150);not null" json:"barangay" binding:"required,max=150"`
	FamiliesServed *int     `json:"families_served" binding:"omitempty,gte=0"`
	FoodPacks      *int     `json:"food_packs"      binding:"omitempty,gte=0"`
	Amount         *float64 `json:"amount"          binding:"omitempty,gte=0"`
	Source         string   `gorm:"type:varchar(255)" json:"source" binding:"max=255"`
	ReportRecord
}

func (ReliefAssistance) TableName() string { return "relief_assistances" }

// AgricultureReport crop damage, table agriculture_reports.
// Submissions replace the whole set for the open typhoon.
type AgricultureReport struct {
	Crop             string   `gorm:"type:varchar(150);not null" json:"crop" binding:"required,max=150"`
	AreaAffectedHa   *float64 `json:"area_affected_ha"   binding:"omitempty,gte=0"`
	ProductionLossMT *float64 `json:"production_loss_mt" binding:"omitempty,gte=0"`
	ValueOfDamage    *float64 `json:"value_of_damage"    binding:"omitempty,gte=0"`
	FarmersAffected  *int     `json:"farmers_affected"   binding:"omitempty,gte=0"`
	Remarks          string   `gorm:"type:text"          json:"remarks"`
	ReportRecord
}

func (AgricultureReport) TableName() string { return "agriculture_reports" }
