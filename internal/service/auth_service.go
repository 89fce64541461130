package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Joechristian9/SituationalReport-sub000/config"
	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/model"
	"github.com/Joechristian9/SituationalReport-sub000/internal/repository"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUserNotFound       = fmt.Errorf("%w: user not found", pkgerrors.ErrNotFound)
)

// TokenBlacklist revokes tokens before they expire
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService login, logout and the current account
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	// EnsureBootstrapAdmin creates the configured admin when no account exists yet
	EnsureBootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig) error
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("load user failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Name, user.Role)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:        toUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims.ID == "" {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, s.jwtMgr.RemainingTTL(claims)); err != nil {
		s.logger.Error("blacklist token failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) EnsureBootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig) error {
	if !cfg.Enabled() {
		return nil
	}
	n, err := s.repo.User.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}
	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}
	admin := &model.User{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(cfg.Email)),
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	s.logger.Info("bootstrap admin created", zap.String("email", admin.Email))
	return nil
}
