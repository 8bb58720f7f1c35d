package events

import (
	"time"

	"github.com/spec-kit/bragboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventShoutoutCreated  EventType = "shoutout_created"
	EventShoutoutDeleted  EventType = "shoutout_deleted"
	EventReactionToggled  EventType = "reaction_toggled"
	EventCommentAdded     EventType = "comment_added"
	EventShoutoutReported EventType = "shoutout_reported"
	EventReportDismissed  EventType = "report_dismissed"
	EventUserCreated      EventType = "user_created"
	EventUserDeleted      EventType = "user_deleted"
)

// MutatingEvents lists every event that changes leaderboard inputs.
var MutatingEvents = []EventType{
	EventShoutoutCreated,
	EventShoutoutDeleted,
	EventUserDeleted,
}

// Actor identifies who triggered an event.
type Actor struct {
	UserID string `json:"user_id"`
	Admin  bool   `json:"admin,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ShoutoutID string      `json:"shoutout_id,omitempty"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// ShoutoutCreatedPayload payload.
type ShoutoutCreatedPayload struct {
	SenderID     string   `json:"sender_id"`
	RecipientIDs []string `json:"recipient_ids,omitempty"`
	Preview      string   `json:"preview"`
}

// ShoutoutDeletedPayload payload.
type ShoutoutDeletedPayload struct {
	SenderID string                  `json:"sender_id"`
	Status   domain.ModerationStatus `json:"status"`
}

// ReactionToggledPayload payload.
type ReactionToggledPayload struct {
	ReactionType domain.ReactionType `json:"reaction_type"`
	Added        bool                `json:"added"`
	NewCount     int                 `json:"new_count"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID string `json:"comment_id"`
	AuthorID  string `json:"author_id"`
	Preview   string `json:"preview"`
}

// ModerationPayload payload for report and dismiss events.
type ModerationPayload struct {
	OldStatus domain.ModerationStatus `json:"old_status"`
	NewStatus domain.ModerationStatus `json:"new_status"`
}

// UserLifecyclePayload payload for directory events.
type UserLifecyclePayload struct {
	UserID           string `json:"user_id"`
	Email            string `json:"email,omitempty"`
	DeletedShoutouts int    `json:"deleted_shoutouts,omitempty"`
}
