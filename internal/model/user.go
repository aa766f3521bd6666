package model

import "time"

// User is a login account.  Accounts link to an organizer or participant
// profile through ProfileID; the profile carries the person data, the account
// only carries credentials and status.
//
// Fields:
//  ID           – prefixed identifier ("USR-...").
//  Email        – unique login email.
//  PasswordHash – bcrypt hash of the password.
//  Role         – ADMIN, ORGANIZER or PARTICIPANT.
//  Status       – account status; only ACTIVE accounts may log in.
//  ProfileID    – id of the linked organizer/participant profile, if any.
//  CreatedAt    – creation timestamp.
type User struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"password_hash"`
	Role         string        `json:"role"`
	Status       AccountStatus `json:"status"`
	ProfileID    string        `json:"profile_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// CanLogin reports whether the account status allows authentication.
func (u *User) CanLogin() bool { return u.Status == AccountStatusActive }

// RefreshToken is a stored refresh session.  Only the SHA-256 hash of the
// token is kept; the raw value goes back to the client once.
type RefreshToken struct {
	UserID    string     `json:"user_id"`
	TokenHash string     `json:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
