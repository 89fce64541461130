package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
)

func TestCommunicationServiceService_Lifecycle(t *testing.T) {
	store := newMockStore()
	svc := NewCommunicationServiceService(store.repo, zap.NewNop())
	ctx := context.Background()

	smart, err := svc.Create(ctx, &dto.CreateCommunicationServiceRequest{Name: " Smart "}, testAdmin)
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if smart.Name != "Smart" || !smart.IsActive {
		t.Errorf("unexpected service %+v", smart)
	}
	if _, err := svc.Create(ctx, &dto.CreateCommunicationServiceRequest{Name: "smart"}, testAdmin); !errors.Is(err, ErrCommunicationServiceExists) {
		t.Errorf("names are unique case-insensitively, got %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateCommunicationServiceRequest{Name: "Globe"}, testAdmin); err != nil {
		t.Fatalf("Create Globe: %v", err)
	}

	off := false
	if _, err := svc.Update(ctx, smart.ID, &dto.UpdateCommunicationServiceRequest{IsActive: &off}, testAdmin); err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}

	active, _ := svc.List(ctx, false)
	if len(active) != 1 || active[0].Name != "Globe" {
		t.Errorf("expected only Globe active, got %+v", active)
	}
	all, _ := svc.List(ctx, true)
	if len(all) != 2 {
		t.Errorf("include_inactive should list both, got %d", len(all))
	}

	globe := "Globe"
	if _, err := svc.Update(ctx, smart.ID, &dto.UpdateCommunicationServiceRequest{Name: &globe}, testAdmin); !errors.Is(err, ErrCommunicationServiceExists) {
		t.Errorf("renaming onto an existing name should conflict, got %v", err)
	}
	if _, err := svc.Update(ctx, 99, &dto.UpdateCommunicationServiceRequest{IsActive: &off}, testAdmin); !errors.Is(err, ErrCommunicationServiceNotFound) {
		t.Errorf("expected ErrCommunicationServiceNotFound, got %v", err)
	}
}
