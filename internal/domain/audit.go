package domain

import "time"

// AuditAction enumerates recorded admin actions.
type AuditAction string

const (
	AuditActionUserCreated     AuditAction = "USER_CREATED"
	AuditActionUserDeleted     AuditAction = "USER_DELETED"
	AuditActionShoutoutDeleted AuditAction = "SHOUTOUT_DELETED"
	AuditActionReportDismissed AuditAction = "REPORT_DISMISSED"
)

// AuditEntry records a single admin action for the audit trail.
type AuditEntry struct {
	ID         string
	AdminID    string
	Action     AuditAction
	TargetType string
	TargetID   string
	CreatedAt  time.Time
}
