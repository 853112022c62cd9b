// Package sessions provides the repository for session tokens.
package sessions

import (
	"context"
	"time"

	"github.com/donorbase/donorbase/internal/server/models"
)

type Repository interface {
	// Create inserts a session for accountID expiring at now+ttl.
	Create(ctx context.Context, token string, accountID int64, ttl time.Duration) error

	// Delete removes a session by token. Deleting an absent token is not an
	// error: signout is idempotent.
	Delete(ctx context.Context, token string) error

	// GetAccountByToken resolves a live (unexpired) session token to its
	// owning account, or common.ErrNotFound. Single indexed join; the role
	// extractor calls this on every protected request.
	GetAccountByToken(ctx context.Context, token string) (*models.Account, error)

	// DeleteExpired bulk-deletes all sessions whose expiry has passed and
	// returns the number removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
