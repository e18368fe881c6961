// Package models - audit_log.go defines the AuditLog model for recording
// security-relevant events, capturing actor, action, affected resource, client
// IP, and whether the request was denied by visibility rules.
package models

import "time"

// AuditLog represents an audit log entry for tracking user actions
type AuditLog struct {
	ID           string    `db:"id"`
	UserID       *string   `db:"user_id"` // Nullable for anonymous requests
	Action       string    `db:"action"`  // "POST /api/v1/models", "model.visibility_denied"
	ResourceType *string   `db:"resource_type"`
	ResourceID   *string   `db:"resource_id"`
	StatusCode   int       `db:"status_code"`
	Denied       bool      `db:"denied"` // Visibility denial, reported externally as 404
	IPAddress    *string   `db:"ip_address"`
	CreatedAt    time.Time `db:"created_at"`
}
