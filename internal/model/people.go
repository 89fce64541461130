package model

// Casualty deceased person, table casualties
type Casualty struct {
	Name            string `gorm:"type:varchar(150);not null" json:"name"              binding:"required,max=150"`
	Age             *int   `json:"age"                         binding:"omitempty,gte=0,lte=150"`
	Sex             string `gorm:"type:varchar(10)"            json:"sex"               binding:"omitempty,max=10"`
	Address         string `gorm:"type:varchar(255)"           json:"address"           binding:"max=255"`
	CauseOfDeath    string `gorm:"type:varchar(255)"           json:"cause_of_death"    binding:"max=255"`
	DateOfDeath     string `gorm:"type:varchar(10)"            json:"date_of_death"     binding:"omitempty,datetime=2006-01-02"`
	PlaceOfIncident string `gorm:"type:varchar(255)"           json:"place_of_incident" binding:"max=255"`
	Remarks         string `gorm:"type:text"                   json:"remarks"`
	ReportRecord
}

func (Casualty) TableName() string { return "casualties" }

// Injured injured person, table injured
type Injured struct {
	Name            string `gorm:"type:varchar(150);not null" json:"name"              binding:"required,max=150"`
	Age             *int   `json:"age"                         binding:"omitempty,gte=0,lte=150"`
	Sex             string `gorm:"type:varchar(10)"            json:"sex"               binding:"omitempty,max=10"`
	Address         string `gorm:"type:varchar(255)"           json:"address"           binding:"max=255"`
	Diagnosis       string `gorm:"type:varchar(255)"           json:"diagnosis"         binding:"max=255"`
	DateOfIncident  string `gorm:"type:varchar(10)"            json:"date_of_incident"  binding:"omitempty,datetime=2006-01-02"`
	PlaceOfIncident string `gorm:"type:varchar(255)"           json:"place_of_incident" binding:"max=255"`
	Remarks         string `gorm:"type:text"                   json:"remarks"`
	ReportRecord
}

func (Injured) TableName() string { return "injured" }

// Missing missing person, table missing
type Missing struct {
	Name              string `gorm:"type:varchar(150);not null" json:"name"                binding:"required,max=150"`
	Age               *int   `json:"age"                         binding:"omitempty,gte=0,lte=150"`
	Sex               string `gorm:"type:varchar(10)"            json:"sex"                 binding:"omitempty,max=10"`
	Address           string `gorm:"type:varchar(255)"           json:"address"             binding:"max=255"`
	Cause             string `gorm:"type:varchar(255)"           json:"cause"               binding:"max=255"`
	DateMissing       string `gorm:"type:varchar(10)"            json:"date_missing"        binding:"omitempty,datetime=2006-01-02"`
	LastKnownLocation string `gorm:"type:varchar(255)"           json:"last_known_location" binding:"max=255"`
	Status            string `gorm:"type:varchar(50)"            json:"status"              binding:"max=50"`
	ReportRecord
}

func (Missing) TableName() string { return "missing" }
