package services

import (
	"net/mail"
	"strings"

	"github.com/donorbase/donorbase/internal/common"
)

// NormalizeEmail validates the address syntactically and returns its
// canonical (lower-cased) form. Uniqueness in the accounts table is defined
// over this form.
func NormalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", common.ErrInvalidEmail
	}
	return strings.ToLower(email), nil
}
