package memory

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bragboard/internal/domain"
)

type reactionStore struct {
	store *Store
}

// Toggle flips the (user, type) membership under the shoutout's own mutex,
// which serializes concurrent toggles on the same shoutout in arrival order.
func (r *reactionStore) Toggle(_ context.Context, shoutoutID, userID string, reactionType domain.ReactionType) (bool, int, error) {
	entry, ok := r.store.entry(shoutoutID)
	if !ok {
		return false, 0, pgx.ErrNoRows
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	reactors := entry.reactions[reactionType]
	for i, id := range reactors {
		if id == userID {
			entry.reactions[reactionType] = append(reactors[:i], reactors[i+1:]...)
			return false, len(entry.reactions[reactionType]), nil
		}
	}
	entry.reactions[reactionType] = append(reactors, userID)
	return true, len(entry.reactions[reactionType]), nil
}

func (r *reactionStore) MapByShoutout(_ context.Context, shoutoutID string) (map[domain.ReactionType][]string, error) {
	entry, ok := r.store.entry(shoutoutID)
	if !ok {
		return nil, pgx.ErrNoRows
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	result := make(map[domain.ReactionType][]string, len(entry.reactions))
	for reactionType, reactors := range entry.reactions {
		result[reactionType] = append([]string(nil), reactors...)
	}
	return result, nil
}
