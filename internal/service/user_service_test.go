package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
)

func setupTestUserService() (UserService, *mockStore) {
	store := newMockStore()
	return NewUserService(store.repo, zap.NewNop()), store
}

func TestUserService_Create(t *testing.T) {
	svc, store := setupTestUserService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateUserRequest{
		Name: " Lito Reyes ", Email: " Lito@MDRRMO.gov.ph", Password: "long-enough-pass", Role: model.RoleStaff,
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if resp.Email != "lito@mdrrmo.gov.ph" || resp.Name != "Lito Reyes" || !resp.IsActive {
		t.Errorf("unexpected user %+v", resp)
	}

	stored := store.users.users[resp.ID]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("long-enough-pass")) != nil {
		t.Error("password should be stored as a bcrypt hash")
	}

	_, err = svc.Create(ctx, &dto.CreateUserRequest{
		Name: "Other", Email: "lito@mdrrmo.gov.ph", Password: "long-enough-pass", Role: model.RoleAdmin,
	})
	if !errors.Is(err, ErrEmailTaken) || !errors.Is(err, pkgerrors.ErrConflict) {
		t.Errorf("expected a conflict on duplicate email, got %v", err)
	}
}

func TestUserService_List_Paging(t *testing.T) {
	svc, _ := setupTestUserService()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, &dto.CreateUserRequest{
			Name: fmt.Sprintf("Staff %d", i), Email: fmt.Sprintf("staff%d@mdrrmo.gov.ph", i),
			Password: "long-enough-pass", Role: model.RoleStaff,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	page, err := svc.List(ctx, &dto.UserListQuery{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if page.Total != 5 || len(page.Users) != 2 || page.Page != 2 {
		t.Errorf("unexpected page %+v", page)
	}
	if page.Users[0].Email != "staff2@mdrrmo.gov.ph" {
		t.Errorf("expected staff2 first on page 2, got %s", page.Users[0].Email)
	}

	defaults, _ := svc.List(ctx, &dto.UserListQuery{})
	if defaults.Page != 1 || defaults.PageSize != defaultPageSize || len(defaults.Users) != 5 {
		t.Errorf("unexpected defaults %+v", defaults)
	}
}
