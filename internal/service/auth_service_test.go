package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/bragboard/internal/config"
	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/repository/memory"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
			AdminSecret:           "let-me-in",
		},
	}
	return NewAuthService(cfg, memory.NewStore().Users())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, token, exp, err := svc.Register(ctx, RegisterInput{
		Name:       "Alice",
		Email:      "Alice@Example.com",
		Password:   "hunter2",
		Department: "Engineering",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.UserRoleEmployee, user.Role)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	logged, _, _, err := svc.Login(ctx, "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterAdminSecretElevates(t *testing.T) {
	svc := newAuthService(t)

	user, _, _, err := svc.Register(context.Background(), RegisterInput{
		Name:        "Ada",
		Email:       "ada@example.com",
		Password:    "hunter2",
		Department:  "People",
		AdminSecret: "let-me-in",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, user.Role)

	// a wrong secret falls back to the employee role, not an error
	user, _, _, err = svc.Register(context.Background(), RegisterInput{
		Name:        "Eve",
		Email:       "eve@example.com",
		Password:    "hunter2",
		Department:  "People",
		AdminSecret: "wrong",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleEmployee, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "x", Department: "Eng",
	})
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, RegisterInput{
		Name: "Imposter", Email: "ALICE@example.com", Password: "x", Department: "Eng",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter2", Department: "Eng",
	})
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}
