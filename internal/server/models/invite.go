package models

import "time"

// Invite is a single-use, role-scoped signup credential. Redemption is
// modeled by flipping ExpiresAt into the past inside the signup transaction,
// so "used" and "expired" are the same observable state.
type Invite struct {
	ID        int64
	Role      Role
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// InviteCodeLength is the number of alphanumeric characters in an invite
// code. Shorter than a session token: single-use and valid for a week.
const InviteCodeLength = 16
