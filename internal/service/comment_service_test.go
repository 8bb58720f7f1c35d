package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

func TestCommentsKeepCreationOrder(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "great sprint", "u-bob")

	ctx := context.Background()
	for _, text := range []string{"first", "second", "third"} {
		_, err := f.comments.Add(ctx, posted.ID, "u-bob", text)
		require.NoError(t, err)
	}

	comments, err := f.comments.List(ctx, posted.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "third", comments[2].Text)
}

func TestCommentValidation(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "great sprint", "u-bob")

	ctx := context.Background()

	_, err := f.comments.Add(ctx, posted.ID, "u-bob", "  ")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = f.comments.Add(ctx, posted.ID, "u-ghost", "hello")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = f.comments.Add(ctx, "missing-id", "u-bob", "hello")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestCommentListMissingShoutout(t *testing.T) {
	f := newFixture(t)

	_, err := f.comments.List(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
