package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bragboard/internal/domain"
)

func seedRankings(t *testing.T, f *fixture) {
	t.Helper()

	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	f.addUser(t, "u-cara", "Cara", "Support")

	// alice sends 2, bob sends 2, cara sends 1
	f.post(t, "u-alice", "one", "u-bob")
	f.post(t, "u-alice", "two", "u-cara")
	f.post(t, "u-bob", "three", "u-cara")
	f.post(t, "u-bob", "four", "u-alice", "u-cara")
	f.post(t, "u-cara", "five", "u-alice")
}

func TestLeaderboardRankingAndTieBreak(t *testing.T) {
	f := newFixture(t)
	seedRankings(t, f)

	board, err := f.leaderboard.Compute(context.Background())
	require.NoError(t, err)

	// givers: alice and bob tie at 2, broken by ascending user id
	require.Len(t, board.TopGivers, 3)
	assert.Equal(t, "u-alice", board.TopGivers[0].UserID)
	assert.Equal(t, 2, board.TopGivers[0].Count)
	assert.Equal(t, "u-bob", board.TopGivers[1].UserID)
	assert.Equal(t, 2, board.TopGivers[1].Count)
	assert.Equal(t, "u-cara", board.TopGivers[2].UserID)
	assert.Equal(t, 1, board.TopGivers[2].Count)

	// tagged: cara 3, alice 2, bob 1
	require.Len(t, board.MostTagged, 3)
	assert.Equal(t, "u-cara", board.MostTagged[0].UserID)
	assert.Equal(t, 3, board.MostTagged[0].Count)
	assert.Equal(t, "u-alice", board.MostTagged[1].UserID)
	assert.Equal(t, "u-bob", board.MostTagged[2].UserID)
}

func TestLeaderboardIsDeterministic(t *testing.T) {
	f := newFixture(t)
	seedRankings(t, f)

	first, err := f.leaderboard.Compute(context.Background())
	require.NoError(t, err)
	second, err := f.leaderboard.Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLeaderboardReflectsDeletion(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "soon gone", "u-bob")

	ctx := context.Background()
	board, err := f.leaderboard.Compute(ctx)
	require.NoError(t, err)
	require.Len(t, board.TopGivers, 1)

	require.NoError(t, f.moderation.Delete(ctx, "u-admin", posted.ID))

	board, err = f.leaderboard.Compute(ctx)
	require.NoError(t, err)
	assert.Empty(t, board.TopGivers)
	assert.Empty(t, board.MostTagged)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	seedRankings(t, f)

	ctx := context.Background()
	feed, err := f.shoutouts.List(ctx, ShoutoutListInput{IncludeReported: true})
	require.NoError(t, err)
	_, err = f.moderation.Report(ctx, feed[0].ID, "u-bob")
	require.NoError(t, err)

	stats, err := f.leaderboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalShoutouts)
	assert.Equal(t, map[string]int{"Engineering": 2, "Sales": 2, "Support": 1}, stats.DepartmentCounts)
	require.Len(t, stats.ReportedPosts, 1)
	assert.Equal(t, feed[0].ID, stats.ReportedPosts[0].ID)
	assert.Equal(t, domain.ModerationStatusReported, stats.ReportedPosts[0].ModerationStatus)
}

func TestExportRowsFallBackForDeletedSender(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-admin", "Ada", "People")
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "kudos to bob", "u-bob")
	f.post(t, "u-bob", "right back at you", "u-alice")

	ctx := context.Background()
	require.NoError(t, f.users.Delete(ctx, "u-alice"))

	rows, err := f.leaderboard.ExportRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := make(map[string]domain.ExportRow, len(rows))
	for _, row := range rows {
		byID[row.ShoutoutID] = row
	}
	orphan := byID[posted.ID]
	assert.Equal(t, "Deleted User", orphan.SenderName)
	assert.Equal(t, "N/A", orphan.SenderDepartment)
	assert.Equal(t, "kudos to bob", orphan.Message)
	assert.NotEmpty(t, orphan.CreatedAt)
}
