package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bragboard/internal/domain"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

func TestToggleIsSelfInverse(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "great demo", "u-bob")

	ctx := context.Background()

	first, err := f.reactions.Toggle(ctx, posted.ID, "u-bob", domain.ReactionTypeLike)
	require.NoError(t, err)
	assert.Equal(t, ReactionActionAdded, first.Action)
	assert.Equal(t, 1, first.NewCount)

	second, err := f.reactions.Toggle(ctx, posted.ID, "u-bob", domain.ReactionTypeLike)
	require.NoError(t, err)
	assert.Equal(t, ReactionActionRemoved, second.Action)
	assert.Equal(t, 0, second.NewCount)

	third, err := f.reactions.Toggle(ctx, posted.ID, "u-bob", domain.ReactionTypeLike)
	require.NoError(t, err)
	assert.Equal(t, ReactionActionAdded, third.Action)
	assert.Equal(t, 1, third.NewCount)
}

func TestToggleTracksTypesIndependently(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "great demo", "u-bob")

	ctx := context.Background()

	_, err := f.reactions.Toggle(ctx, posted.ID, "u-bob", domain.ReactionTypeLike)
	require.NoError(t, err)
	result, err := f.reactions.Toggle(ctx, posted.ID, "u-bob", domain.ReactionTypeClap)
	require.NoError(t, err)
	assert.Equal(t, ReactionActionAdded, result.Action)
	assert.Equal(t, 1, result.NewCount)

	got, err := f.shoutouts.Get(ctx, posted.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReactionCount(domain.ReactionTypeLike))
	assert.Equal(t, 1, got.ReactionCount(domain.ReactionTypeClap))
	assert.Equal(t, 0, got.ReactionCount(domain.ReactionTypeStar))
}

func TestToggleRejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "great demo", "u-bob")

	_, err := f.reactions.Toggle(context.Background(), posted.ID, "u-bob", "wave")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestToggleMissingShoutout(t *testing.T) {
	f := newFixture(t)

	_, err := f.reactions.Toggle(context.Background(), "missing-id", "u-bob", domain.ReactionTypeLike)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestToggleConcurrentDistinctUsers(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "great demo", "u-bob")

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := f.reactions.Toggle(context.Background(), posted.ID,
				fmt.Sprintf("u-worker-%02d", n), domain.ReactionTypeStar)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := f.shoutouts.Get(context.Background(), posted.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.ReactionCount(domain.ReactionTypeStar))
}
