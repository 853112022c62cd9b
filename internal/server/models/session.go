package models

import "time"

// Session is an opaque bearer credential bound to an account. The token is
// the primary key; possession of it is the proof of a prior signin.
type Session struct {
	Token     string
	AccountID int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionTokenLength is the number of alphanumeric characters in a session
// token.
const SessionTokenLength = 64
