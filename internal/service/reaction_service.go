package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/events"
	"github.com/spec-kit/bragboard/internal/repository"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

// ReactionAction describes the outcome of a toggle.
type ReactionAction string

const (
	ReactionActionAdded   ReactionAction = "added"
	ReactionActionRemoved ReactionAction = "removed"
)

// ToggleResult reports the state transition and the reactor-set size after it.
type ToggleResult struct {
	Action   ReactionAction
	NewCount int
}

// ReactionService enforces idempotent toggle semantics for reactions.
type ReactionService struct {
	reactions  repository.ReactionRepository
	dispatcher events.Dispatcher
}

// NewReactionService constructs the service.
func NewReactionService(reactions repository.ReactionRepository, dispatcher events.Dispatcher) *ReactionService {
	return &ReactionService{reactions: reactions, dispatcher: dispatcher}
}

// Toggle flips the caller's reaction of the given type on a shoutout: absent
// becomes present, present becomes absent. Exactly one state transition per
// call; repeated likes never accumulate.
func (s *ReactionService) Toggle(ctx context.Context, shoutoutID, userID string, reactionType domain.ReactionType) (*ToggleResult, error) {
	if !domain.ValidReactionType(reactionType) {
		return nil, apperrors.NewValidationError("unknown reaction type", map[string]any{"reaction_type": reactionType})
	}

	added, newCount, err := s.reactions.Toggle(ctx, shoutoutID, userID, reactionType)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("shoutout", map[string]any{"id": shoutoutID})
		}
		return nil, err
	}

	action := ReactionActionRemoved
	if added {
		action = ReactionActionAdded
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventReactionToggled,
		ShoutoutID: shoutoutID,
		Actor:      events.Actor{UserID: userID},
		Payload: events.ReactionToggledPayload{
			ReactionType: reactionType,
			Added:        added,
			NewCount:     newCount,
		},
	})
	return &ToggleResult{Action: action, NewCount: newCount}, nil
}
