package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bragboard/internal/domain"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	ctx := context.Background()
	user, err := f.directory.CreateUser(ctx, "u-admin", CreateUserInput{
		Name:       "Dana",
		Email:      "Dana@Example.com",
		Password:   "s3cret",
		Department: "Finance",
		IsAdmin:    true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Equal(t, domain.UserRoleAdmin, user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	// duplicate email, case-insensitively
	_, err = f.directory.CreateUser(ctx, "u-admin", CreateUserInput{
		Name:       "Other Dana",
		Email:      "dana@example.com",
		Password:   "s3cret",
		Department: "Finance",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input CreateUserInput
	}{
		{"missing name", CreateUserInput{Email: "a@b.com", Password: "x", Department: "Eng"}},
		{"missing email", CreateUserInput{Name: "A", Password: "x", Department: "Eng"}},
		{"missing department", CreateUserInput{Name: "A", Email: "a@b.com", Password: "x"}},
		{"missing password", CreateUserInput{Name: "A", Email: "a@b.com", Department: "Eng"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.directory.CreateUser(context.Background(), "u-admin", tt.input)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
		})
	}
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-admin", "Ada", "People")
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	f.addUser(t, "u-cara", "Cara", "Support")

	ctx := context.Background()
	f.post(t, "u-alice", "authored by alice", "u-bob")
	survivor := f.post(t, "u-bob", "mentions alice", "u-alice", "u-cara")

	require.NoError(t, f.directory.DeleteUser(ctx, "u-admin", "u-alice"))

	// alice's own posts are gone
	feed, err := f.shoutouts.List(ctx, ShoutoutListInput{IncludeReported: true})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, survivor.ID, feed[0].ID)

	// and her id no longer dangles in remaining recipient sets
	assert.Equal(t, []string{"u-cara"}, feed[0].RecipientIDs)

	_, err = f.users.GetByID(ctx, "u-alice")
	require.Error(t, err)
}

func TestDeleteUserGuards(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-admin", "Ada", "People")

	ctx := context.Background()

	err := f.directory.DeleteUser(ctx, "u-admin", "u-admin")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	err = f.directory.DeleteUser(ctx, "u-admin", "u-ghost")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestListOthersExcludesCaller(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	f.addUser(t, "u-cara", "Cara", "Support")

	others, err := f.directory.ListOthers(context.Background(), "u-bob")
	require.NoError(t, err)
	require.Len(t, others, 2)
	for _, user := range others {
		assert.NotEqual(t, "u-bob", user.ID)
	}
}
