// Package common defines shared constants and sentinel errors used across
// the donorbase layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Signin errors.
	ErrAccountNotFound   = errors.New("account not found")
	ErrIncorrectPassword = errors.New("password incorrect")

	// Signup errors.
	ErrInviteNotFound = errors.New("invite not found")
	ErrExpiredInvite  = errors.New("invite expired or already used")

	// Session validation errors. ErrNoCookies means the request carried no
	// cookie header at all; ErrNoSessionToken means cookies were present but
	// the session cookie was not among them.
	ErrNoCookies               = errors.New("cookies not found")
	ErrNoSessionToken          = errors.New("session_token cookie not found")
	ErrInvalidToken            = errors.New("invalid session token")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	// Credential hashing errors. A malformed stored hash is not the same
	// thing as a wrong password and must never be reported as one.
	ErrMalformedHash = errors.New("malformed password hash")

	// Validation errors.
	ErrInvalidEmail = errors.New("invalid email address")
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "session_token"
