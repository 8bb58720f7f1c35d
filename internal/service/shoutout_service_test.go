package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

func TestShoutoutCreateValidation(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Engineering")

	tests := []struct {
		name       string
		senderID   string
		message    string
		recipients []string
	}{
		{
			name:       "empty message",
			senderID:   "u-alice",
			message:    "",
			recipients: []string{"u-bob"},
		},
		{
			name:       "whitespace-only message",
			senderID:   "u-alice",
			message:    "   \t ",
			recipients: []string{"u-bob"},
		},
		{
			name:       "unknown sender",
			senderID:   "u-ghost",
			message:    "great work",
			recipients: []string{"u-bob"},
		},
		{
			name:       "unknown recipient",
			senderID:   "u-alice",
			message:    "great work",
			recipients: []string{"u-ghost"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.shoutouts.Create(context.Background(), tt.senderID, tt.message, tt.recipients)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
		})
	}
}

func TestShoutoutCreateNormalizesRecipients(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Engineering")
	f.addUser(t, "u-cara", "Cara", "Sales")

	shoutout := f.post(t, "u-alice", "shipped the release",
		"u-bob", "u-bob", "u-alice", "u-cara")

	assert.Equal(t, []string{"u-bob", "u-cara"}, shoutout.RecipientIDs)
	assert.NotEmpty(t, shoutout.ID)
	assert.Equal(t, "shipped the release", shoutout.Message)
}

func TestShoutoutFeedNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")

	first := f.post(t, "u-alice", "first", "u-bob")
	second := f.post(t, "u-bob", "second", "u-alice")
	third := f.post(t, "u-alice", "third", "u-bob")

	feed, err := f.shoutouts.List(context.Background(), ShoutoutListInput{IncludeReported: true})
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, third.ID, feed[0].ID)
	assert.Equal(t, second.ID, feed[1].ID)
	assert.Equal(t, first.ID, feed[2].ID)
}

func TestShoutoutFeedDepartmentFilter(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	f.addUser(t, "u-cara", "Cara", "Support")

	engPost := f.post(t, "u-alice", "from engineering", "u-bob")
	salesPost := f.post(t, "u-bob", "from sales", "u-cara")
	f.post(t, "u-cara", "from support", "u-alice")

	feed, err := f.shoutouts.List(context.Background(), ShoutoutListInput{
		Departments:     []string{"Engineering", "Sales"},
		IncludeReported: true,
	})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	// filter keys on the sender's department, newest first
	assert.Equal(t, salesPost.ID, feed[0].ID)
	assert.Equal(t, engPost.ID, feed[1].ID)
}

func TestShoutoutGet(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")

	posted := f.post(t, "u-alice", "nice demo", "u-bob")

	_, err := f.comments.Add(context.Background(), posted.ID, "u-bob", "thanks!")
	require.NoError(t, err)
	_, err = f.reactions.Toggle(context.Background(), posted.ID, "u-bob", "clap")
	require.NoError(t, err)

	got, err := f.shoutouts.Get(context.Background(), posted.ID)
	require.NoError(t, err)
	assert.Equal(t, posted.ID, got.ID)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "thanks!", got.Comments[0].Text)
	assert.Equal(t, 1, got.ReactionCount("clap"))
}

func TestShoutoutGetNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.shoutouts.Get(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
