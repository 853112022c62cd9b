// Package services contains the server-side business logic: authentication,
// invite-gated signup, invite issuance, session housekeeping, and the CRUD
// services the HTTP layer exposes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/passhash"
	"github.com/donorbase/donorbase/internal/randx"
	"github.com/donorbase/donorbase/internal/server/config"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/donorbase/donorbase/internal/server/repositories/repomanager"
)

// AuthService issues, revokes, and resolves sessions.
type AuthService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	sessionTTL time.Duration
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:         db,
		repos:      m,
		sessionTTL: cfg.SessionTTL,
	}
}

// SignIn verifies the credentials and, on success, mints a session token and
// stores a session row with the configured TTL. The caller transports the
// token as a cookie.
//
// An unknown email yields common.ErrAccountNotFound and a wrong password
// common.ErrIncorrectPassword; the two are deliberately distinct.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return "", err
	}

	account, err := s.repos.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrAccountNotFound
		}
		return "", fmt.Errorf("looking up account: %w", err)
	}

	ok, err := passhash.Verify(password, account.PasswordHash)
	if err != nil {
		// Malformed stored hash. Not the caller's fault, never reported as
		// a wrong password.
		return "", fmt.Errorf("verifying credential for account %d: %w", account.ID, err)
	}
	if !ok {
		return "", common.ErrIncorrectPassword
	}

	token, err := randx.MakeRandString(models.SessionTokenLength)
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	if err := s.repos.Sessions(s.db).Create(ctx, token, account.ID, s.sessionTTL); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	return token, nil
}

// SignOut deletes the session row for token. Idempotent: an unknown or
// already-removed token still succeeds.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if err := s.repos.Sessions(s.db).Delete(ctx, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Resolve maps a session token to its owning account. Expired and unknown
// tokens are indistinguishable and yield common.ErrInvalidToken.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.Account, error) {
	account, err := s.repos.Sessions(s.db).GetAccountByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("resolving session: %w", err)
	}
	return account, nil
}
