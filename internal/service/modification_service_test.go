package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
)

func setupTestModificationService() (ModificationService, ReportService, *mockStore) {
	store := newMockStore()
	store.openTyphoon("Kristine")
	return NewModificationService(store.repo, zap.NewNop()),
		NewReportService(store.repo, true, nil, zap.NewNop()),
		store
}

func TestModificationService_TrackedUpdateAppendsOneEntry(t *testing.T) {
	_, reports, store := setupTestModificationService()
	ctx := context.Background()

	seed, err := reports.BulkSubmit(ctx, "water-levels", []map[string]any{
		{"gauging_station": "Bicol River - Naga", "current_level": float64(3.2), "alarm_level": float64(4)},
	}, testStaff)
	if err != nil {
		t.Fatalf("seed should succeed: %v", err)
	}
	id := seed.Rows[0].(*model.WaterLevel).ID

	store.clock.Advance(30 * time.Minute)
	if _, err := reports.UpdateRow(ctx, "water-levels", id, map[string]any{
		"current_level":  "4.6",
		"affected_areas": "Barangay Triangulo",
	}, testAdmin); err != nil {
		t.Fatalf("UpdateRow should succeed: %v", err)
	}

	if len(store.modifications.mods) != 1 {
		t.Fatalf("expected exactly one modification, got %d", len(store.modifications.mods))
	}
	mod := store.modifications.mods[0]
	if mod.ModelType != ModelWaterLevel || mod.ModelID != id {
		t.Errorf("unexpected modification target: %s %d", mod.ModelType, mod.ModelID)
	}
	changes := mod.Changes.Data()
	if len(changes) != 2 {
		t.Fatalf("expected 2 changed fields, got %v", changes)
	}
	level := changes["current_level"]
	if level.Old != float64(3.2) || level.New != float64(4.6) {
		t.Errorf("expected 3.2 → 4.6, got %v → %v", level.Old, level.New)
	}
	if level.User.ID != testAdmin.ID || level.User.Name != testAdmin.Name {
		t.Errorf("expected the acting user snapshot, got %+v", level.User)
	}
}

func TestModificationService_NoChangeNoEntry(t *testing.T) {
	_, reports, store := setupTestModificationService()
	ctx := context.Background()

	seed, _ := reports.BulkSubmit(ctx, "casualties", []map[string]any{casualtyRow("Juan", "Drowning")}, testStaff)
	id := seed.Rows[0].(*model.Casualty).ID

	if _, err := reports.UpdateRow(ctx, "casualties", id, map[string]any{"cause_of_death": " Drowning "}, testAdmin); err != nil {
		t.Fatalf("UpdateRow should succeed: %v", err)
	}
	if len(store.modifications.mods) != 0 {
		t.Errorf("an update that changes nothing must not be logged, got %d", len(store.modifications.mods))
	}
}

func TestModificationService_UntrackedEntitiesAreNotLogged(t *testing.T) {
	_, reports, store := setupTestModificationService()
	ctx := context.Background()

	seed, _ := reports.BulkSubmit(ctx, "injured", []map[string]any{{"name": "Ana", "diagnosis": "Fracture"}}, testStaff)
	id := seed.Rows[0].(*model.Injured).ID

	if _, err := reports.UpdateRow(ctx, "injured", id, map[string]any{"diagnosis": "Laceration"}, testAdmin); err != nil {
		t.Fatalf("UpdateRow should succeed: %v", err)
	}
	if len(store.modifications.mods) != 0 {
		t.Error("injured rows are not tracked")
	}
}

func TestModificationService_History(t *testing.T) {
	ledger, reports, store := setupTestModificationService()
	ctx := context.Background()

	seed, _ := reports.BulkSubmit(ctx, "incidents-monitored", []map[string]any{
		{"kinds_of_incident": "Flooding", "location": "Zone 1", "status": "Ongoing"},
	}, testStaff)
	id := seed.Rows[0].(*model.IncidentMonitored).ID

	store.clock.Advance(time.Hour)
	_, _ = reports.UpdateRow(ctx, "incidents-monitored", id, map[string]any{"status": "Monitoring"}, testStaff)
	store.clock.Advance(time.Hour)
	_, _ = reports.UpdateRow(ctx, "incidents-monitored", id, map[string]any{"status": "Resolved"}, testAdmin)

	for _, name := range []string{"IncidentMonitored", "incidents-monitored"} {
		resp, err := ledger.History(ctx, name)
		if err != nil {
			t.Fatalf("History(%s) should succeed: %v", name, err)
		}
		if resp.ModelType != ModelIncidentMonitored {
			t.Errorf("expected model type %s, got %s", ModelIncidentMonitored, resp.ModelType)
		}
		entries := resp.History[fmtHistoryKey(id, "status")]
		if len(entries) != 2 {
			t.Fatalf("expected 2 status entries, got %d", len(entries))
		}
		if entries[0].New != "Resolved" || entries[0].Old != "Monitoring" {
			t.Errorf("newest entry should come first, got %+v", entries[0])
		}
		if entries[1].Old != "Ongoing" || entries[1].User.ID != testStaff.ID {
			t.Errorf("unexpected oldest entry: %+v", entries[1])
		}
	}
}

func TestModificationService_History_UnknownModel(t *testing.T) {
	ledger, _, _ := setupTestModificationService()

	for _, name := range []string{"Volcano", "WeatherReport", "injured"} {
		if _, err := ledger.History(context.Background(), name); !errors.Is(err, ErrUnknownModelType) {
			t.Errorf("History(%s): expected ErrUnknownModelType, got %v", name, err)
		}
	}
}

func TestModificationService_LedgerFailureFailsUpdate(t *testing.T) {
	_, reports, store := setupTestModificationService()
	ctx := context.Background()

	seed, _ := reports.BulkSubmit(ctx, "casualties", []map[string]any{casualtyRow("Juan", "Drowning")}, testStaff)
	id := seed.Rows[0].(*model.Casualty).ID
	store.modifications.err = errMockDB

	_, err := reports.UpdateRow(ctx, "casualties", id, map[string]any{"cause_of_death": "Landslide"}, testAdmin)
	if err == nil {
		t.Fatal("an update whose ledger write fails must fail")
	}
}

func TestRecordModification(t *testing.T) {
	_, _, store := setupTestModificationService()

	err := recordModification(context.Background(), store.repo, ModelCasualty, 7, map[string]ValueChange{
		"remarks": {Old: "", New: "Identified by family"},
	}, testAdmin)
	if err != nil {
		t.Fatalf("recordModification should succeed: %v", err)
	}
	if len(store.modifications.mods) != 1 || store.modifications.mods[0].ModelID != 7 {
		t.Errorf("expected one entry for model 7, got %+v", store.modifications.mods)
	}

	if err := recordModification(context.Background(), store.repo, ModelCasualty, 7, nil, testAdmin); err != nil {
		t.Errorf("an empty change set is a no-op, got %v", err)
	}
	if len(store.modifications.mods) != 1 {
		t.Error("an empty change set must not be stored")
	}
}

func fmtHistoryKey(id uint, field string) string {
	return fmt.Sprintf("%d_%s", id, field)
}
