package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
)

// Ledger model types of the tracked entities
const (
	ModelCasualty          = "Casualty"
	ModelIncidentMonitored = "IncidentMonitored"
	ModelWaterLevel        = "WaterLevel"
)

// entityCatalog every report entity in report order
var entityCatalog = []entityEndpoint{
	newEndpoint[model.WeatherReport](EntitySpec{
		Key: "weather-reports", ModelType: "WeatherReport", Label: "Weather Condition",
		Columns: []Column{
			{"municipality", "Municipality"},
			{"sky_condition", "Sky Condition"},
			{"wind", "Wind"},
			{"precipitation", "Precipitation"},
			{"sea_condition", "Sea Condition"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.WeatherReport] {
		return r.Reports.WeatherReports
	}),

	newEndpoint[model.WaterLevel](EntitySpec{
		Key: "water-levels", ModelType: ModelWaterLevel, Label: "Water Level",
		Columns: []Column{
			{"gauging_station", "Gauging Station"},
			{"current_level", "Current Level (m)"},
			{"alarm_level", "Alarm Level (m)"},
			{"critical_level", "Critical Level (m)"},
			{"affected_areas", "Affected Areas"},
		},
		TyphoonScoped: true,
		Tracked:       true,
		IsEmpty:       blankRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.WaterLevel] {
		return r.Reports.WaterLevels
	}),

	newEndpoint[model.Casualty](EntitySpec{
		Key: "casualties", ModelType: ModelCasualty, Label: "Casualties (Dead)",
		Columns: []Column{
			{"name", "Name"},
			{"age", "Age"},
			{"sex", "Sex"},
			{"address", "Address"},
			{"cause_of_death", "Cause of Death"},
			{"date_of_death", "Date of Death"},
			{"place_of_incident", "Place of Incident"},
			{"remarks", "Remarks"},
		},
		TyphoonScoped: true,
		Tracked:       true,
		IsEmpty:       blankRow("sex"),
	}, func(r *repository.Repository) repository.ReportRepository[model.Casualty] {
		return r.Reports.Casualties
	}),

	newEndpoint[model.Injured](EntitySpec{
		Key: "injured", ModelType: "Injured", Label: "Injured",
		Columns: []Column{
			{"name", "Name"},
			{"age", "Age"},
			{"sex", "Sex"},
			{"address", "Address"},
			{"diagnosis", "Diagnosis"},
			{"date_of_incident", "Date of Incident"},
			{"place_of_incident", "Place of Incident"},
			{"remarks", "Remarks"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankRow("sex"),
	}, func(r *repository.Repository) repository.ReportRepository[model.Injured] {
		return r.Reports.Injured
	}),

	newEndpoint[model.Missing](EntitySpec{
		Key: "missing", ModelType: "Missing", Label: "Missing Persons",
		Columns: []Column{
			{"name", "Name"},
			{"age", "Age"},
			{"sex", "Sex"},
			{"address", "Address"},
			{"cause", "Cause"},
			{"date_missing", "Date Missing"},
			{"last_known_location", "Last Known Location"},
			{"status", "Status"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankRow("sex"),
	}, func(r *repository.Repository) repository.ReportRepository[model.Missing] {
		return r.Reports.Missing
	}),

	newEndpoint[model.DamagedHouse](EntitySpec{
		Key: "damaged-houses", ModelType: "DamagedHouse", Label: "Damaged Houses",
		Columns: []Column{
			{"barangay", "Barangay"},
			{"partially", "Partially Damaged"},
			{"totally", "Totally Damaged"},
			{"total", "Total"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankOrZeroRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.DamagedHouse] {
		return r.Reports.DamagedHouses
	}),

	newEndpoint[model.PreEmptiveEvacuation](EntitySpec{
		Key: "pre-emptive-evacuations", ModelType: "PreEmptiveEvacuation", Label: "Pre-emptive Evacuation",
		Columns: []Column{
			{"barangay", "Barangay"},
			{"evacuation_center", "Evacuation Center"},
			{"families", "Families"},
			{"persons", "Persons"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankOrZeroRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.PreEmptiveEvacuation] {
		return r.Reports.PreEmptiveEvacuations
	}),

	newEndpoint[model.IncidentMonitored](EntitySpec{
		Key: "incidents-monitored", ModelType: ModelIncidentMonitored, Label: "Incidents Monitored",
		Columns: []Column{
			{"kinds_of_incident", "Kind of Incident"},
			{"date_time", "Date/Time"},
			{"location", "Location"},
			{"description", "Description"},
			{"actions_taken", "Actions Taken"},
			{"remarks", "Remarks"},
			{"status", "Status"},
		},
		TyphoonScoped: true,
		Tracked:       true,
		IsEmpty:       blankRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.IncidentMonitored] {
		return r.Reports.IncidentsMonitored
	}),

	newEndpoint[model.ClassSuspension](EntitySpec{
		Key: "class-suspensions", ModelType: "ClassSuspension", Label: "Suspension of Classes",
		Columns: []Column{
			{"level", "Level"},
			{"date_of_suspension", "Date of Suspension"},
			{"remarks", "Remarks"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankRow("level"),
	}, func(r *repository.Repository) repository.ReportRepository[model.ClassSuspension] {
		return r.Reports.ClassSuspensions
	}),

	newEndpoint[model.WorkSuspension](EntitySpec{
		Key: "work-suspensions", ModelType: "WorkSuspension", Label: "Suspension of Work",
		Columns: []Column{
			{"category", "Category"},
			{"date_of_suspension", "Date of Suspension"},
			{"remarks", "Remarks"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.WorkSuspension] {
		return r.Reports.WorkSuspensions
	}),

	newEndpoint[model.RoadBridgeStatus](EntitySpec{
		Key: "road-bridge-statuses", ModelType: "RoadBridgeStatus", Label: "Status of Roads and Bridges",
		Columns: []Column{
			{"road_bridge_name", "Road/Bridge"},
			{"status", "Status"},
			{"areas_affected", "Areas Affected"},
			{"re_routing", "Re-routing"},
			{"remarks", "Remarks"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.RoadBridgeStatus] {
		return r.Reports.RoadBridgeStatuses
	}),

	newEndpoint[model.PowerOutage](EntitySpec{
		Key: "power-outages", ModelType: "PowerOutage", Label: "Power Outages",
		Columns: []Column{
			{"areas_affected", "Areas Affected"},
			{"date_time_interruption", "Interrupted"},
			{"date_time_restored", "Restored"},
			{"remarks", "Remarks"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.PowerOutage] {
		return r.Reports.PowerOutages
	}),

	communicationStatusEndpoint(),

	newEndpoint[model.ReliefAssistance](EntitySpec{
		Key: "relief-assistances", ModelType: "ReliefAssistance", Label: "Relief Assistance",
		Columns: []Column{
			{"barangay", "Barangay"},
			{"families_served", "Families Served"},
			{"food_packs", "Food Packs"},
			{"amount", "Amount (PHP)"},
			{"source", "Source"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankOrZeroRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.ReliefAssistance] {
		return r.Reports.ReliefAssistances
	}),

	newEndpoint[model.AgricultureReport](EntitySpec{
		Key: "agriculture-reports", ModelType: "AgricultureReport", Label: "Damage to Agriculture",
		Columns: []Column{
			{"crop", "Crop"},
			{"area_affected_ha", "Area Affected (ha)"},
			{"production_loss_mt", "Production Loss (MT)"},
			{"value_of_damage", "Value of Damage (PHP)"},
			{"farmers_affected", "Farmers Affected"},
			{"remarks", "Remarks"},
		},
		TyphoonScoped: true,
		ReplaceMode:   true,
		IsEmpty:       blankRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.AgricultureReport] {
		return r.Reports.AgricultureReports
	}),
}

func communicationStatusEndpoint() entityEndpoint {
	e := newEndpoint[model.CommunicationStatus](EntitySpec{
		Key: "communication-statuses", ModelType: "CommunicationStatus", Label: "Status of Communication Lines",
		Columns: []Column{
			{"communication_service_id", "Service"},
			{"status", "Status"},
			{"remarks", "Remarks"},
		},
		ReportColumns: []Column{
			{"communication_service_name", "Service"},
			{"status", "Status"},
			{"remarks", "Remarks"},
		},
		TyphoonScoped: true,
		IsEmpty:       blankRow(),
	}, func(r *repository.Repository) repository.ReportRepository[model.CommunicationStatus] {
		return r.Reports.CommunicationStatuses
	})
	e.check = func(ctx context.Context, repo *repository.Repository, rec, prev *model.CommunicationStatus, prefix string, verr *pkgerrors.ValidationError) error {
		// rows keep pointing at services disabled after they were written
		if prev != nil && *prev.CommunicationServiceID == *rec.CommunicationServiceID {
			return nil
		}
		svc, err := repo.CommunicationService.GetByID(ctx, *rec.CommunicationServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verr.Add(fieldPath(prefix, "communication_service_id"), "refers to an unknown service")
				return nil
			}
			return err
		}
		if !svc.IsActive {
			verr.Add(fieldPath(prefix, "communication_service_id"), "refers to a disabled service")
		}
		return nil
	}
	e.decorate = func(rec *model.CommunicationStatus, row map[string]any) {
		if rec.CommunicationService != nil {
			row["communication_service_name"] = rec.CommunicationService.Name
		}
	}
	return e
}

var (
	entitiesByKey       = make(map[string]entityEndpoint, len(entityCatalog))
	entitiesByModelType = make(map[string]entityEndpoint, len(entityCatalog))
)

func init() {
	for _, e := range entityCatalog {
		entitiesByKey[e.spec().Key] = e
		entitiesByModelType[e.spec().ModelType] = e
	}
}

// lookupEntity resolves a URL key ("casualties") or a model type ("Casualty")
func lookupEntity(name string) (entityEndpoint, bool) {
	if e, ok := entitiesByKey[name]; ok {
		return e, true
	}
	e, ok := entitiesByModelType[name]
	return e, ok
}
