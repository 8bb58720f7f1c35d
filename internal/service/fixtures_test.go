package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/bragboard/internal/config"
	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/events"
	"github.com/spec-kit/bragboard/internal/repository"
	"github.com/spec-kit/bragboard/internal/repository/memory"
)

// fixture wires every service over the in-memory store, the same way main
// does when no Postgres DSN is configured.
type fixture struct {
	users       repository.UserRepository
	shoutouts   *ShoutoutService
	reactions   *ReactionService
	comments    *CommentService
	moderation  *ModerationService
	leaderboard *LeaderboardService
	directory   *DirectoryService
	dispatcher  events.Dispatcher
	audit       repository.AuditLogRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	userRepo := store.Users()
	shoutoutRepo := store.Shoutouts()
	reactionRepo := store.Reactions()
	commentRepo := store.Comments()
	auditRepo := store.AuditLog()
	dispatcher := events.NewInMemoryDispatcher()

	f := &fixture{
		users: userRepo,
		shoutouts: NewShoutoutService(ShoutoutDependencies{
			ShoutoutRepo: shoutoutRepo,
			UserRepo:     userRepo,
			ReactionRepo: reactionRepo,
			CommentRepo:  commentRepo,
			Dispatcher:   dispatcher,
		}),
		reactions:  NewReactionService(reactionRepo, dispatcher),
		comments:   NewCommentService(commentRepo, shoutoutRepo, userRepo, dispatcher),
		moderation: NewModerationService(shoutoutRepo, auditRepo, dispatcher),
		leaderboard: NewLeaderboardService(shoutoutRepo, userRepo, nil,
			config.LeaderboardConfig{Limit: 5}, zap.NewNop()),
		directory: NewDirectoryService(DirectoryDependencies{
			UserRepo:     userRepo,
			ShoutoutRepo: shoutoutRepo,
			AuditRepo:    auditRepo,
			Dispatcher:   dispatcher,
			BcryptCost:   bcrypt.MinCost,
		}),
		dispatcher: dispatcher,
		audit:      auditRepo,
	}
	f.leaderboard.RegisterInvalidation(dispatcher)
	return f
}

// addUser seeds a directory entry with a fixed id so tests can assert
// deterministic orderings.
func (f *fixture) addUser(t *testing.T, id, name, department string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:         id,
		Name:       name,
		Email:      id + "@example.com",
		Department: department,
		Role:       domain.UserRoleEmployee,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) post(t *testing.T, senderID, message string, recipientIDs ...string) *domain.Shoutout {
	t.Helper()

	shoutout, err := f.shoutouts.Create(context.Background(), senderID, message, recipientIDs)
	require.NoError(t, err)
	return shoutout
}
