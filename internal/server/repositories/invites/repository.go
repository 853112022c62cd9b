// Package invites provides the repository for single-use signup invites.
package invites

import (
	"context"
	"time"

	"github.com/donorbase/donorbase/internal/server/models"
)

type Repository interface {
	// Create inserts an invite granting role, expiring at now+ttl.
	// A colliding code yields common.ErrConflict.
	Create(ctx context.Context, role models.Role, code string, ttl time.Duration) (*models.Invite, error)

	// GetByCode returns the invite with the given code, or
	// common.ErrNotFound. Expiry is not checked here; consumption decides.
	GetByCode(ctx context.Context, code string) (*models.Invite, error)

	// Consume flips the invite's expiry into the past, but only if it has
	// not passed yet, and reports whether the flip happened. This
	// conditional update is the single-use lock: of two concurrent
	// redemptions, the database serializes the row update and exactly one
	// caller sees true.
	Consume(ctx context.Context, id int64) (bool, error)
}
