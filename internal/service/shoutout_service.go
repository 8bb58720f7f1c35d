package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/events"
	"github.com/spec-kit/bragboard/internal/repository"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

// ShoutoutService coordinates the recognition feed: creation, lookup and
// listing of shoutouts with their reactions and comments attached.
type ShoutoutService struct {
	shoutouts  repository.ShoutoutRepository
	users      repository.UserRepository
	reactions  repository.ReactionRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
}

// ShoutoutDependencies bundles repositories for the shoutout service.
type ShoutoutDependencies struct {
	ShoutoutRepo repository.ShoutoutRepository
	UserRepo     repository.UserRepository
	ReactionRepo repository.ReactionRepository
	CommentRepo  repository.CommentRepository
	Dispatcher   events.Dispatcher
}

// ShoutoutListInput describes feed filters.
type ShoutoutListInput struct {
	Departments     []string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
	IncludeReported bool
	Limit           int
	Offset          int
}

// NewShoutoutService constructs the service.
func NewShoutoutService(deps ShoutoutDependencies) *ShoutoutService {
	return &ShoutoutService{
		shoutouts:  deps.ShoutoutRepo,
		users:      deps.UserRepo,
		reactions:  deps.ReactionRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create posts a new shoutout. The message must be non-empty, the sender must
// resolve in the directory and every recipient id must resolve; unresolved
// recipients are rejected rather than silently dropped. Duplicate recipients
// are collapsed and the sender never appears in its own recipient set.
func (s *ShoutoutService) Create(ctx context.Context, senderID, message string, recipientIDs []string) (*domain.Shoutout, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("message cannot be empty", nil)
	}

	if _, err := s.users.GetByID(ctx, senderID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("sender does not exist", map[string]any{"sender_id": senderID})
		}
		return nil, err
	}

	seen := make(map[string]struct{}, len(recipientIDs))
	recipients := make([]string, 0, len(recipientIDs))
	for _, rid := range recipientIDs {
		if rid == senderID {
			continue
		}
		if _, ok := seen[rid]; ok {
			continue
		}
		seen[rid] = struct{}{}
		if _, err := s.users.GetByID(ctx, rid); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("recipient does not exist", map[string]any{"recipient_id": rid})
			}
			return nil, err
		}
		recipients = append(recipients, rid)
	}

	shoutout := &domain.Shoutout{
		SenderID:         senderID,
		Message:          message,
		RecipientIDs:     recipients,
		ModerationStatus: domain.ModerationStatusClean,
	}
	if err := s.shoutouts.Create(ctx, shoutout); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventShoutoutCreated,
		ShoutoutID: shoutout.ID,
		Actor:      events.Actor{UserID: senderID},
		Payload: events.ShoutoutCreatedPayload{
			SenderID:     senderID,
			RecipientIDs: recipients,
			Preview:      stringPreview(message, 120),
		},
	})
	return shoutout, nil
}

// Get returns a single shoutout with reactions and comments attached.
func (s *ShoutoutService) Get(ctx context.Context, id string) (*domain.Shoutout, error) {
	shoutout, err := s.shoutouts.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("shoutout", map[string]any{"id": id})
		}
		return nil, err
	}
	if err := s.attachSubEntities(ctx, shoutout); err != nil {
		return nil, err
	}
	return shoutout, nil
}

// List returns the feed newest first, optionally narrowed to shoutouts whose
// sender belongs to one of the given departments.
func (s *ShoutoutService) List(ctx context.Context, input ShoutoutListInput) ([]domain.Shoutout, error) {
	filter := repository.ShoutoutFilter{
		Departments:     input.Departments,
		CreatedFrom:     input.CreatedFrom,
		CreatedTo:       input.CreatedTo,
		IncludeReported: input.IncludeReported,
		Limit:           input.Limit,
		Offset:          input.Offset,
	}
	result, err := s.shoutouts.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range result {
		if err := s.attachSubEntities(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *ShoutoutService) attachSubEntities(ctx context.Context, shoutout *domain.Shoutout) error {
	reactions, err := s.reactions.MapByShoutout(ctx, shoutout.ID)
	if err != nil && err != pgx.ErrNoRows {
		return err
	}
	shoutout.Reactions = reactions

	comments, err := s.comments.ListByShoutout(ctx, shoutout.ID)
	if err != nil && err != pgx.ErrNoRows {
		return err
	}
	shoutout.Comments = comments
	return nil
}

func (s *ShoutoutService) publishEvent(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, event)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
