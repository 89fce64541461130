package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Joechristian9/SituationalReport-sub000/config"
	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/jwt"
)

// ── test helpers ──

type recordingBlacklist struct {
	revoked map[string]time.Duration
}

func (b *recordingBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	b.revoked[jti] = ttl
	return nil
}

func setupTestAuthService() (AuthService, *mockStore, *jwt.Manager, *recordingBlacklist) {
	store := newMockStore()
	mgr := jwt.NewManager(&config.AuthConfig{JWTSecret: "test-secret-0123456789", AccessTokenTTL: 8 * time.Hour})
	bl := &recordingBlacklist{revoked: make(map[string]time.Duration)}
	return NewAuthService(store.repo, mgr, bl, zap.NewNop()), store, mgr, bl
}

func seedUser(t *testing.T, store *mockStore, email, password, role string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &model.User{Name: "Rosa Dizon", Email: email, PasswordHash: string(hash), Role: role, IsActive: active}
	if err := store.users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// ── Login ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, store, mgr, _ := setupTestAuthService()
	u := seedUser(t, store, "rosa@mdrrmo.gov.ph", "s3cure-pass", model.RoleStaff, true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ROSA@mdrrmo.gov.ph", Password: "s3cure-pass"})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}
	if resp.ExpiresIn != int((8 * time.Hour).Seconds()) {
		t.Errorf("unexpected expires_in %d", resp.ExpiresIn)
	}
	if resp.User.ID != u.UserID || resp.User.Role != model.RoleStaff {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}

	claims, err := mgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token should parse: %v", err)
	}
	if claims.UserID != u.UserID || claims.Name != u.Name || claims.Role != model.RoleStaff {
		t.Errorf("claims should carry the actor, got %+v", claims)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, store, _, _ := setupTestAuthService()
	seedUser(t, store, "rosa@mdrrmo.gov.ph", "s3cure-pass", model.RoleStaff, true)
	seedUser(t, store, "former@mdrrmo.gov.ph", "s3cure-pass", model.RoleStaff, false)

	tests := []struct {
		name    string
		req     dto.LoginRequest
		wantErr error
	}{
		{"wrong password", dto.LoginRequest{Email: "rosa@mdrrmo.gov.ph", Password: "nope"}, ErrInvalidCredentials},
		{"unknown email", dto.LoginRequest{Email: "ghost@mdrrmo.gov.ph", Password: "s3cure-pass"}, ErrInvalidCredentials},
		{"disabled account", dto.LoginRequest{Email: "former@mdrrmo.gov.ph", Password: "s3cure-pass"}, ErrAccountDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// ── Logout / Me ──

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	svc, store, mgr, bl := setupTestAuthService()
	seedUser(t, store, "rosa@mdrrmo.gov.ph", "s3cure-pass", model.RoleStaff, true)

	resp, _ := svc.Login(context.Background(), &dto.LoginRequest{Email: "rosa@mdrrmo.gov.ph", Password: "s3cure-pass"})
	claims, _ := mgr.ParseToken(resp.AccessToken)

	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("Logout should succeed: %v", err)
	}
	ttl, ok := bl.revoked[claims.ID]
	if !ok {
		t.Fatal("token id should be blacklisted")
	}
	if ttl <= 0 || ttl > 8*time.Hour {
		t.Errorf("blacklist ttl should be the remaining lifetime, got %s", ttl)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, store, _, _ := setupTestAuthService()
	u := seedUser(t, store, "rosa@mdrrmo.gov.ph", "s3cure-pass", model.RoleAdmin, true)

	me, err := svc.Me(context.Background(), u.UserID)
	if err != nil {
		t.Fatalf("Me should succeed: %v", err)
	}
	if me.Email != u.Email {
		t.Errorf("expected %s, got %s", u.Email, me.Email)
	}
	if _, err := svc.Me(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ── bootstrap ──

func TestAuthService_EnsureBootstrapAdmin(t *testing.T) {
	svc, store, _, _ := setupTestAuthService()
	ctx := context.Background()
	boot := config.BootstrapConfig{Name: "Admin", Email: "Admin@MDRRMO.gov.ph", Password: "first-login-pass"}

	if err := svc.EnsureBootstrapAdmin(ctx, config.BootstrapConfig{}); err != nil || len(store.users.users) != 0 {
		t.Fatalf("an unset bootstrap account is skipped, err=%v users=%d", err, len(store.users.users))
	}

	if err := svc.EnsureBootstrapAdmin(ctx, boot); err != nil {
		t.Fatalf("EnsureBootstrapAdmin should succeed: %v", err)
	}
	admin, err := store.users.GetByEmail(ctx, "admin@mdrrmo.gov.ph")
	if err != nil {
		t.Fatalf("bootstrap admin should exist: %v", err)
	}
	if admin.Role != model.RoleAdmin || !admin.IsActive {
		t.Errorf("unexpected bootstrap account %+v", admin)
	}

	// a second start with users present changes nothing
	if err := svc.EnsureBootstrapAdmin(ctx, config.BootstrapConfig{Email: "other@x.ph", Password: "another-pass"}); err != nil {
		t.Fatalf("second run should succeed: %v", err)
	}
	if len(store.users.users) != 1 {
		t.Errorf("expected a single account, got %d", len(store.users.users))
	}
}
