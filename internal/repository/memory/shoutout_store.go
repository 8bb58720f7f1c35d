package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/repository"
)

type shoutoutStore struct {
	store *Store
}

func (r *shoutoutStore) Create(_ context.Context, shoutout *domain.Shoutout) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if shoutout.ID == "" {
		shoutout.ID = uuid.NewString()
	}
	shoutout.CreatedAt = time.Now()

	entry := &shoutoutEntry{
		shoutout:  *shoutout,
		reactions: make(map[domain.ReactionType][]string),
	}
	entry.shoutout.RecipientIDs = append([]string(nil), shoutout.RecipientIDs...)
	r.store.shoutouts[shoutout.ID] = entry
	r.store.feed = append(r.store.feed, shoutout.ID)
	return nil
}

func (r *shoutoutStore) GetByID(_ context.Context, id string) (*domain.Shoutout, error) {
	entry, ok := r.store.entry(id)
	if !ok {
		return nil, pgx.ErrNoRows
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	shoutout := cloneShoutout(entry)
	return &shoutout, nil
}

func (r *shoutoutStore) ListWithFilter(_ context.Context, filter repository.ShoutoutFilter) ([]domain.Shoutout, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	departments := make(map[string]struct{}, len(filter.Departments))
	for _, dept := range filter.Departments {
		departments[dept] = struct{}{}
	}

	var result []domain.Shoutout
	// feed holds insertion order; walk backwards for newest first
	for i := len(r.store.feed) - 1; i >= 0; i-- {
		entry, ok := r.store.shoutouts[r.store.feed[i]]
		if !ok {
			continue
		}
		entry.mu.Lock()
		shoutout := cloneShoutout(entry)
		entry.mu.Unlock()

		if filter.SenderID != nil && shoutout.SenderID != *filter.SenderID {
			continue
		}
		if len(departments) > 0 {
			sender, ok := r.store.users[shoutout.SenderID]
			if !ok {
				continue
			}
			if _, ok := departments[sender.Department]; !ok {
				continue
			}
		}
		if filter.Status != nil && shoutout.ModerationStatus != *filter.Status {
			continue
		}
		if filter.CreatedFrom != nil && shoutout.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && shoutout.CreatedAt.After(*filter.CreatedTo) {
			continue
		}
		if !filter.IncludeReported && shoutout.ModerationStatus == domain.ModerationStatusReported {
			continue
		}
		result = append(result, shoutout)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return nil, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *shoutoutStore) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.shoutouts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.shoutouts, id)
	r.store.removeFromFeed(id)
	return nil
}

func (r *shoutoutStore) DeleteBySender(_ context.Context, senderID string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var ids []string
	for id, entry := range r.store.shoutouts {
		if entry.shoutout.SenderID == senderID {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		delete(r.store.shoutouts, id)
		r.store.removeFromFeed(id)
	}
	return ids, nil
}

func (r *shoutoutStore) RemoveRecipient(_ context.Context, userID string) error {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, entry := range r.store.shoutouts {
		entry.mu.Lock()
		recipients := entry.shoutout.RecipientIDs[:0]
		for _, rid := range entry.shoutout.RecipientIDs {
			if rid != userID {
				recipients = append(recipients, rid)
			}
		}
		entry.shoutout.RecipientIDs = recipients
		entry.mu.Unlock()
	}
	return nil
}

func (r *shoutoutStore) UpdateModerationStatus(_ context.Context, id string, from, to domain.ModerationStatus) (bool, error) {
	entry, ok := r.store.entry(id)
	if !ok {
		return false, nil
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.shoutout.ModerationStatus != from {
		return false, nil
	}
	entry.shoutout.ModerationStatus = to
	return true, nil
}

func (r *shoutoutStore) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.shoutouts), nil
}

func (r *shoutoutStore) CountBySender(_ context.Context) ([]repository.UserCount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[string]int)
	for _, entry := range r.store.shoutouts {
		counts[entry.shoutout.SenderID]++
	}
	return toUserCounts(counts), nil
}

func (r *shoutoutStore) CountByRecipient(_ context.Context) ([]repository.UserCount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[string]int)
	for _, entry := range r.store.shoutouts {
		entry.mu.Lock()
		for _, rid := range entry.shoutout.RecipientIDs {
			counts[rid]++
		}
		entry.mu.Unlock()
	}
	return toUserCounts(counts), nil
}

func (r *shoutoutStore) CountByDepartment(_ context.Context) (map[string]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[string]int)
	for _, entry := range r.store.shoutouts {
		sender, ok := r.store.users[entry.shoutout.SenderID]
		if !ok {
			continue
		}
		counts[sender.Department]++
	}
	return counts, nil
}

func (s *Store) removeFromFeed(id string) {
	for i, fid := range s.feed {
		if fid == id {
			s.feed = append(s.feed[:i], s.feed[i+1:]...)
			return
		}
	}
}

func toUserCounts(counts map[string]int) []repository.UserCount {
	result := make([]repository.UserCount, 0, len(counts))
	for id, count := range counts {
		result = append(result, repository.UserCount{UserID: id, Count: count})
	}
	return result
}
