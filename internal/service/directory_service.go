package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bragboard/internal/auth"
	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/events"
	"github.com/spec-kit/bragboard/internal/repository"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

// DirectoryService owns admin user lifecycle: creation and cascading
// deletion. Plaintext passwords are hashed immediately and never stored or
// logged.
type DirectoryService struct {
	users      repository.UserRepository
	shoutouts  repository.ShoutoutRepository
	audit      repository.AuditLogRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// DirectoryDependencies bundles repositories for the directory service.
type DirectoryDependencies struct {
	UserRepo     repository.UserRepository
	ShoutoutRepo repository.ShoutoutRepository
	AuditRepo    repository.AuditLogRepository
	Dispatcher   events.Dispatcher
	BcryptCost   int
}

// CreateUserInput describes an admin user creation payload.
type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	IsAdmin    bool
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		users:      deps.UserRepo,
		shoutouts:  deps.ShoutoutRepo,
		audit:      deps.AuditRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// CreateUser registers an account on behalf of an admin.
func (s *DirectoryService) CreateUser(ctx context.Context, adminID string, input CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	department := strings.TrimSpace(input.Department)
	if name == "" || email == "" || department == "" {
		return nil, apperrors.NewValidationError("name, email and department are required", nil)
	}
	if input.Password == "" {
		return nil, apperrors.NewValidationError("password is required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := domain.UserRoleEmployee
	if input.IsAdmin {
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
		return nil, err
	}

	s.recordAudit(ctx, adminID, domain.AuditActionUserCreated, "user", user.ID)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserCreated,
		Actor: events.Actor{UserID: adminID, Admin: true},
		Payload: events.UserLifecyclePayload{
			UserID: user.ID,
			Email:  user.Email,
		},
	})
	return user, nil
}

// DeleteUser removes an account and cascades: every shoutout the user
// authored disappears with its comments and reactions, and the user id is
// stripped from every remaining recipient set so no dangling references
// survive. Admins cannot delete their own account.
func (s *DirectoryService) DeleteUser(ctx context.Context, adminID, userID string) error {
	if adminID == userID {
		return apperrors.NewValidationError("cannot delete your own account", nil)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return err
	}

	deleted, err := s.shoutouts.DeleteBySender(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.shoutouts.RemoveRecipient(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil && err != pgx.ErrNoRows {
		return err
	}

	s.recordAudit(ctx, adminID, domain.AuditActionUserDeleted, "user", userID)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserDeleted,
		Actor: events.Actor{UserID: adminID, Admin: true},
		Payload: events.UserLifecyclePayload{
			UserID:           userID,
			DeletedShoutouts: len(deleted),
		},
	})
	return nil
}

// ListOthers returns every user except the caller, for the recipient picker.
func (s *DirectoryService) ListOthers(ctx context.Context, callerID string) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.User, 0, len(users))
	for _, user := range users {
		if user.ID == callerID {
			continue
		}
		result = append(result, user)
	}
	return result, nil
}

// Index returns the directory keyed by user id, for response rendering.
func (s *DirectoryService) Index(ctx context.Context) (map[string]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]domain.User, len(users))
	for _, user := range users {
		index[user.ID] = user
	}
	return index, nil
}

// AuditLog returns recent admin actions, newest first.
func (s *DirectoryService) AuditLog(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	if s.audit == nil {
		return []domain.AuditEntry{}, nil
	}
	return s.audit.List(ctx, limit, offset)
}

func (s *DirectoryService) recordAudit(ctx context.Context, adminID string, action domain.AuditAction, targetType, targetID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, &domain.AuditEntry{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	})
}
