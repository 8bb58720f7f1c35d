package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bragboard/internal/domain"
)

type commentStore struct {
	store *Store
}

func (r *commentStore) Create(_ context.Context, comment *domain.Comment) error {
	entry, ok := r.store.entry(comment.ShoutoutID)
	if !ok {
		return pgx.ErrNoRows
	}

	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.CreatedAt = time.Now()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.comments = append(entry.comments, *comment)
	return nil
}

func (r *commentStore) ListByShoutout(_ context.Context, shoutoutID string) ([]domain.Comment, error) {
	entry, ok := r.store.entry(shoutoutID)
	if !ok {
		return nil, pgx.ErrNoRows
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return append([]domain.Comment(nil), entry.comments...), nil
}
