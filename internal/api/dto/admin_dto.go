package dto

import "time"

// CreateUserRequest is the POST /admin/users payload.
type CreateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	IsAdmin    bool   `json:"is_admin"`
}

// LeaderboardEntryResponse is one ranking row.
type LeaderboardEntryResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// LeaderboardResponse carries both rankings.
type LeaderboardResponse struct {
	TopGivers  []LeaderboardEntryResponse `json:"top_givers"`
	MostTagged []LeaderboardEntryResponse `json:"most_tagged"`
}

// StatsResponse is the admin dashboard snapshot.
type StatsResponse struct {
	TotalShoutouts  int                        `json:"total_shoutouts"`
	TopGivers       []LeaderboardEntryResponse `json:"top_givers"`
	MostTagged      []LeaderboardEntryResponse `json:"most_tagged"`
	DepartmentStats map[string]int             `json:"department_stats"`
	ReportedPosts   []ShoutoutResponse         `json:"reported_posts"`
}

// ExportRowResponse is one line of the report snapshot.
type ExportRowResponse struct {
	ShoutoutID       string `json:"shoutout_id"`
	SenderName       string `json:"sender_name"`
	SenderDepartment string `json:"sender_department"`
	Message          string `json:"message"`
	CreatedAt        string `json:"created_at"`
	Reported         bool   `json:"reported"`
}

// AuditEntryResponse is one admin action record.
type AuditEntryResponse struct {
	ID         string    `json:"id"`
	AdminID    string    `json:"admin_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}
