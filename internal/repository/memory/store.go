// Package memory provides an in-process implementation of the repository
// interfaces. It backs the service when no Postgres DSN is configured and is
// the fixture for service tests. A store-level RWMutex guards the entity maps
// while each shoutout carries its own mutex, so mutations on one shoutout are
// linearized without blocking operations on any other.
package memory

import (
	"sync"

	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/repository"
)

// Store holds every entity map behind the repository views.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	shoutouts map[string]*shoutoutEntry
	feed      []string // shoutout ids in insertion order
	audit     []domain.AuditEntry
}

type shoutoutEntry struct {
	mu        sync.Mutex
	shoutout  domain.Shoutout
	reactions map[domain.ReactionType][]string
	comments  []domain.Comment
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]*domain.User),
		shoutouts: make(map[string]*shoutoutEntry),
	}
}

// Users returns the user repository view.
func (s *Store) Users() repository.UserRepository {
	return &userStore{store: s}
}

// Shoutouts returns the shoutout repository view.
func (s *Store) Shoutouts() repository.ShoutoutRepository {
	return &shoutoutStore{store: s}
}

// Reactions returns the reaction repository view.
func (s *Store) Reactions() repository.ReactionRepository {
	return &reactionStore{store: s}
}

// Comments returns the comment repository view.
func (s *Store) Comments() repository.CommentRepository {
	return &commentStore{store: s}
}

// AuditLog returns the audit log repository view.
func (s *Store) AuditLog() repository.AuditLogRepository {
	return &auditStore{store: s}
}

func (s *Store) entry(id string) (*shoutoutEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.shoutouts[id]
	return entry, ok
}

func cloneShoutout(entry *shoutoutEntry) domain.Shoutout {
	shoutout := entry.shoutout
	shoutout.RecipientIDs = append([]string(nil), entry.shoutout.RecipientIDs...)
	return shoutout
}
