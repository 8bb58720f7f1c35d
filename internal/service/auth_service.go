package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bragboard/internal/auth"
	"github.com/spec-kit/bragboard/internal/config"
	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/repository"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

// AuthService coordinates self-service registration and login.
type AuthService struct {
	users       repository.UserRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	adminSecret string
}

// RegisterInput describes a self-service registration payload.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Department  string
	AdminSecret string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:       users,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost:  cfg.Auth.BcryptCost,
		adminSecret: cfg.Auth.AdminSecret,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new account. Supplying the configured admin secret
// elevates the account to the admin role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	department := strings.TrimSpace(input.Department)
	if name == "" || email == "" || department == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name, email and department are required", nil)
	}
	if input.Password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("password is required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	role := domain.UserRoleEmployee
	if s.adminSecret != "" && input.AdminSecret == s.adminSecret {
		role = domain.UserRoleAdmin
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Department:   department,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}
