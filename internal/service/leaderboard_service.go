package service

import (
	"context"
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/bragboard/internal/config"
	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/events"
	"github.com/spec-kit/bragboard/internal/persistence"
	"github.com/spec-kit/bragboard/internal/repository"
)

const leaderboardCacheKey = "leaderboard:v1"

// LeaderboardService derives the "top givers" and "most tagged" rankings from
// the shoutout set. Results are cached in Redis and the cache is dropped
// synchronously on every mutating store event, so a read always reflects the
// latest completed mutation.
type LeaderboardService struct {
	shoutouts repository.ShoutoutRepository
	users     repository.UserRepository
	cache     *persistence.Redis
	cfg       config.LeaderboardConfig
	logger    *zap.Logger
}

// NewLeaderboardService constructs the service. cache may be nil; every query
// then recomputes from the store.
func NewLeaderboardService(shoutouts repository.ShoutoutRepository, users repository.UserRepository, cache *persistence.Redis, cfg config.LeaderboardConfig, logger *zap.Logger) *LeaderboardService {
	return &LeaderboardService{
		shoutouts: shoutouts,
		users:     users,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
	}
}

// RegisterInvalidation subscribes the cache invalidator to every event that
// changes leaderboard inputs.
func (s *LeaderboardService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range events.MutatingEvents {
		dispatcher.Subscribe(eventType, s.invalidate)
	}
}

// Compute returns both rankings, cached or fresh. Ordering is deterministic:
// count descending, ties broken by ascending user id, so consecutive calls
// over unchanged data return identical lists.
func (s *LeaderboardService) Compute(ctx context.Context) (*domain.Leaderboard, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	board, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, board)
	return board, nil
}

// Stats assembles the admin dashboard: totals, truncated rankings, department
// engagement and the moderation queue.
func (s *LeaderboardService) Stats(ctx context.Context) (*domain.EngagementStats, error) {
	board, err := s.Compute(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.shoutouts.Count(ctx)
	if err != nil {
		return nil, err
	}

	departments, err := s.shoutouts.CountByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	reported := domain.ModerationStatusReported
	queue, err := s.shoutouts.ListWithFilter(ctx, repository.ShoutoutFilter{
		Status:          &reported,
		IncludeReported: true,
	})
	if err != nil {
		return nil, err
	}

	return &domain.EngagementStats{
		TotalShoutouts:   total,
		TopGivers:        truncate(board.TopGivers, s.cfg.Limit),
		MostTagged:       truncate(board.MostTagged, s.cfg.Limit),
		DepartmentCounts: departments,
		ReportedPosts:    queue,
	}, nil
}

// ExportRows produces the tabular report snapshot for every shoutout. File
// formatting is the caller's concern.
func (s *LeaderboardService) ExportRows(ctx context.Context) ([]domain.ExportRow, error) {
	shoutouts, err := s.shoutouts.ListWithFilter(ctx, repository.ShoutoutFilter{IncludeReported: true})
	if err != nil {
		return nil, err
	}

	names, departments, err := s.userIndex(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ExportRow, 0, len(shoutouts))
	for _, shoutout := range shoutouts {
		name, ok := names[shoutout.SenderID]
		dept := departments[shoutout.SenderID]
		if !ok {
			name = "Deleted User"
			dept = "N/A"
		}
		rows = append(rows, domain.ExportRow{
			ShoutoutID:       shoutout.ID,
			SenderName:       name,
			SenderDepartment: dept,
			Message:          shoutout.Message,
			CreatedAt:        shoutout.CreatedAt.Format("2006-01-02 15:04"),
			Reported:         shoutout.ModerationStatus == domain.ModerationStatusReported,
		})
	}
	return rows, nil
}

func (s *LeaderboardService) compute(ctx context.Context) (*domain.Leaderboard, error) {
	senderCounts, err := s.shoutouts.CountBySender(ctx)
	if err != nil {
		return nil, err
	}
	recipientCounts, err := s.shoutouts.CountByRecipient(ctx)
	if err != nil {
		return nil, err
	}

	names, _, err := s.userIndex(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Leaderboard{
		TopGivers:  rank(senderCounts, names),
		MostTagged: rank(recipientCounts, names),
	}, nil
}

func (s *LeaderboardService) userIndex(ctx context.Context) (names map[string]string, departments map[string]string, err error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	names = make(map[string]string, len(users))
	departments = make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
		departments[user.ID] = user.Department
	}
	return names, departments, nil
}

func (s *LeaderboardService) invalidate(ctx context.Context, _ events.Event) error {
	if err := s.cache.Delete(ctx, leaderboardCacheKey); err != nil && s.logger != nil {
		s.logger.Warn("leaderboard cache invalidation failed", zap.Error(err))
	}
	return nil
}

func (s *LeaderboardService) fromCache(ctx context.Context) (*domain.Leaderboard, bool) {
	raw, hit, err := s.cache.GetBytes(ctx, leaderboardCacheKey)
	if err != nil || !hit {
		return nil, false
	}
	var board domain.Leaderboard
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, false
	}
	return &board, true
}

func (s *LeaderboardService) toCache(ctx context.Context, board *domain.Leaderboard) {
	raw, err := json.Marshal(board)
	if err != nil {
		return
	}
	if err := s.cache.SetBytes(ctx, leaderboardCacheKey, raw, s.cfg.CacheTTL()); err != nil && s.logger != nil {
		s.logger.Warn("leaderboard cache write failed", zap.Error(err))
	}
}

func rank(counts []repository.UserCount, names map[string]string) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(counts))
	for _, uc := range counts {
		name, ok := names[uc.UserID]
		if !ok {
			// sender deleted between aggregation and the name join
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID: uc.UserID,
			Name:   name,
			Count:  uc.Count,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}

func truncate(entries []domain.LeaderboardEntry, limit int) []domain.LeaderboardEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
