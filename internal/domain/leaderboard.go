package domain

// LeaderboardEntry is a derived ranking row; never persisted as source of
// truth, always recomputable from the shoutout set.
type LeaderboardEntry struct {
	UserID string
	Name   string
	Count  int
}

// Leaderboard bundles both rankings. Entries are sorted by count descending
// with ties broken by ascending user id so consecutive computations over the
// same data return identical orderings.
type Leaderboard struct {
	TopGivers  []LeaderboardEntry
	MostTagged []LeaderboardEntry
}

// EngagementStats is the admin dashboard snapshot.
type EngagementStats struct {
	TotalShoutouts   int
	TopGivers        []LeaderboardEntry
	MostTagged       []LeaderboardEntry
	DepartmentCounts map[string]int
	ReportedPosts    []Shoutout
}

// ExportRow is one line of the admin report snapshot. File formatting is the
// caller's concern; the engine only produces the tabular data.
type ExportRow struct {
	ShoutoutID       string
	SenderName       string
	SenderDepartment string
	Message          string
	CreatedAt        string
	Reported         bool
}
