package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/bragboard/internal/domain"
)

type auditStore struct {
	store *Store
}

func (r *auditStore) Append(_ context.Context, entry *domain.AuditEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now()
	r.store.audit = append(r.store.audit, *entry)
	return nil
}

func (r *auditStore) List(_ context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	// newest first
	var result []domain.AuditEntry
	for i := len(r.store.audit) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, r.store.audit[i])
	}
	return result, nil
}
