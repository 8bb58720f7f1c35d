package domain

import "time"

// ModerationStatus enumerates the report workflow states of a shoutout.
type ModerationStatus string

const (
	ModerationStatusClean     ModerationStatus = "CLEAN"
	ModerationStatusReported  ModerationStatus = "REPORTED"
	ModerationStatusDismissed ModerationStatus = "DISMISSED"
)

// ReactionType enumerates the reactions the client can toggle.
type ReactionType string

const (
	ReactionTypeLike ReactionType = "like"
	ReactionTypeClap ReactionType = "clap"
	ReactionTypeStar ReactionType = "star"
)

// ReactionTypes lists every deployable reaction type in display order.
var ReactionTypes = []ReactionType{ReactionTypeLike, ReactionTypeClap, ReactionTypeStar}

// ValidReactionType reports whether t belongs to the closed reaction set.
func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionTypeLike, ReactionTypeClap, ReactionTypeStar:
		return true
	}
	return false
}

// Shoutout is the aggregate for a single recognition post. Reactions map each
// type to the distinct set of reactor ids; Comments are in creation order.
// An empty RecipientIDs slice means the post addresses the whole team.
type Shoutout struct {
	ID               string
	SenderID         string
	Message          string
	RecipientIDs     []string
	ModerationStatus ModerationStatus
	Reactions        map[ReactionType][]string
	Comments         []Comment
	CreatedAt        time.Time
}

// ReactionCount returns the number of distinct reactors for a type.
func (s *Shoutout) ReactionCount(t ReactionType) int {
	if s == nil || s.Reactions == nil {
		return 0
	}
	return len(s.Reactions[t])
}
