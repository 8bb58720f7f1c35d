package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/events"
	"github.com/spec-kit/bragboard/internal/repository"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

// CommentService manages the append-only comment threads.
type CommentService struct {
	comments   repository.CommentRepository
	shoutouts  repository.ShoutoutRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, shoutouts repository.ShoutoutRepository, users repository.UserRepository, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{comments: comments, shoutouts: shoutouts, users: users, dispatcher: dispatcher}
}

// Add appends a comment to a shoutout's thread. Comments are immutable and
// keep their creation order for display.
func (s *CommentService) Add(ctx context.Context, shoutoutID, authorID, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("comment text cannot be empty", nil)
	}

	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("author does not exist", map[string]any{"author_id": authorID})
		}
		return nil, err
	}
	if _, err := s.shoutouts.GetByID(ctx, shoutoutID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("shoutout does not exist", map[string]any{"shoutout_id": shoutoutID})
		}
		return nil, err
	}

	comment := &domain.Comment{
		ShoutoutID: shoutoutID,
		AuthorID:   authorID,
		Text:       text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventCommentAdded,
		ShoutoutID: shoutoutID,
		Actor:      events.Actor{UserID: authorID},
		Payload: events.CommentAddedPayload{
			CommentID: comment.ID,
			AuthorID:  authorID,
			Preview:   stringPreview(text, 120),
		},
	})
	return comment, nil
}

// List returns a shoutout's comments in creation order.
func (s *CommentService) List(ctx context.Context, shoutoutID string) ([]domain.Comment, error) {
	if _, err := s.shoutouts.GetByID(ctx, shoutoutID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("shoutout", map[string]any{"id": shoutoutID})
		}
		return nil, err
	}
	comments, err := s.comments.ListByShoutout(ctx, shoutoutID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	return comments, nil
}
