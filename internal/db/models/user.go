// Package models - user.go defines the User model for registry accounts,
// including the shared invite token that gates registration when self-signup
// is disabled.
package models

import "time"

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	// InviteToken is the multi-use token this user may hand out to invitees.
	// Nil until the user generates one.
	InviteToken          *string    `json:"invite_token,omitempty"`
	InviteTokenExpiresAt *time.Time `json:"invite_token_expires_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// HasValidInviteToken reports whether the user's invite token exists and has
// not expired as of now.
func (u *User) HasValidInviteToken(now time.Time) bool {
	return u.InviteToken != nil && u.InviteTokenExpiresAt != nil && u.InviteTokenExpiresAt.After(now)
}
