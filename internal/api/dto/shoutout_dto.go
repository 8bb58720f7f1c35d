package dto

import "time"

// CreateShoutoutRequest is the POST /shoutouts payload.
type CreateShoutoutRequest struct {
	Message      string   `json:"message"`
	RecipientIDs []string `json:"recipient_ids"`
}

// ToggleReactionRequest is the POST /shoutouts/:id/reactions payload.
type ToggleReactionRequest struct {
	ReactionType string `json:"reaction_type"`
}

// CreateCommentRequest is the POST /shoutouts/:id/comments payload.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// UserSummary is the embedded user shape for feed rendering.
type UserSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}

// CommentResponse is a single rendered comment.
type CommentResponse struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}

// ShoutoutResponse is a rendered feed entry. Reactions carries the count for
// every deployable reaction type, zero included.
type ShoutoutResponse struct {
	ID               string            `json:"id"`
	Message          string            `json:"message"`
	Sender           UserSummary       `json:"sender"`
	Recipients       []UserSummary     `json:"recipients"`
	Reactions        map[string]int    `json:"reactions"`
	Comments         []CommentResponse `json:"comments"`
	ModerationStatus string            `json:"moderation_status"`
	IsReported       bool              `json:"is_reported"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ToggleReactionResponse reports the toggle outcome.
type ToggleReactionResponse struct {
	Action   string `json:"action"`
	NewCount int    `json:"new_count"`
}

// ReportResponse reports the moderation status after a report call.
type ReportResponse struct {
	Status string `json:"status"`
}
