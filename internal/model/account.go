package model

import "time"

// UserID uniquely identifies an account
type UserID string

// Account is a stored credential record
type Account struct {
	ID           UserID `json:"id"`
	Username     string `json:"username"` // exact-match, case-sensitive
	PasswordHash string `json:"passwordHash,omitempty"`

	// Password holds a plaintext secret written by older clients.
	// It is cleared the first time the account logs in successfully.
	Password string `json:"password,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Session is the currently authenticated user of a portal
type Session struct {
	UserID    UserID    `json:"id"`
	Username  string    `json:"username"`
	LoginTime time.Time `json:"loginTime"`
}
