package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
)

// Repository aggregate entry point for every repository
type Repository struct {
	db *gorm.DB

	User                 UserRepository
	Typhoon              TyphoonRepository
	CommunicationService CommunicationServiceRepository
	Modification         ModificationRepository
	Reports              *Reports
}

// Reports one generic repository per report entity
type Reports struct {
	WeatherReports        ReportRepository[model.WeatherReport]
	WaterLevels           ReportRepository[model.WaterLevel]
	Casualties            ReportRepository[model.Casualty]
	Injured               ReportRepository[model.Injured]
	Missing               ReportRepository[model.Missing]
	DamagedHouses         ReportRepository[model.DamagedHouse]
	PreEmptiveEvacuations ReportRepository[model.PreEmptiveEvacuation]
	IncidentsMonitored    ReportRepository[model.IncidentMonitored]
	ClassSuspensions      ReportRepository[model.ClassSuspension]
	WorkSuspensions       ReportRepository[model.WorkSuspension]
	RoadBridgeStatuses    ReportRepository[model.RoadBridgeStatus]
	PowerOutages          ReportRepository[model.PowerOutage]
	CommunicationStatuses ReportRepository[model.CommunicationStatus]
	ReliefAssistances     ReportRepository[model.ReliefAssistance]
	AgricultureReports    ReportRepository[model.AgricultureReport]
}

// NewRepository builds the aggregate on db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:                   db,
		User:                 NewUserRepo(db),
		Typhoon:              NewTyphoonRepo(db),
		CommunicationService: NewCommunicationServiceRepo(db),
		Modification:         NewModificationRepo(db),
		Reports:              newReports(db),
	}
}

func newReports(db *gorm.DB) *Reports {
	return &Reports{
		WeatherReports:        NewReportRepo[model.WeatherReport](db),
		WaterLevels:           NewReportRepo[model.WaterLevel](db),
		Casualties:            NewReportRepo[model.Casualty](db),
		Injured:               NewReportRepo[model.Injured](db),
		Missing:               NewReportRepo[model.Missing](db),
		DamagedHouses:         NewReportRepo[model.DamagedHouse](db),
		PreEmptiveEvacuations: NewReportRepo[model.PreEmptiveEvacuation](db),
		IncidentsMonitored:    NewReportRepo[model.IncidentMonitored](db),
		ClassSuspensions:      NewReportRepo[model.ClassSuspension](db),
		WorkSuspensions:       NewReportRepo[model.WorkSuspension](db),
		RoadBridgeStatuses:    NewReportRepo[model.RoadBridgeStatus](db),
		PowerOutages:          NewReportRepo[model.PowerOutage](db),
		CommunicationStatuses: NewReportRepo[model.CommunicationStatus](db, "CommunicationService"),
		ReliefAssistances:     NewReportRepo[model.ReliefAssistance](db),
		AgricultureReports:    NewReportRepo[model.AgricultureReport](db),
	}
}

// WithTx returns an aggregate whose repositories all run on tx
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// RunInTx runs fn inside one database transaction; any error rolls back.
// An aggregate built without a database (unit-test mocks) runs fn directly.
func (r *Repository) RunInTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
