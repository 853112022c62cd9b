// Package accounts provides the repository for account rows.
package accounts

import (
	"context"

	"github.com/donorbase/donorbase/internal/server/models"
)

type Repository interface {
	// Create inserts an account and returns it with the generated ID.
	// A duplicate email yields common.ErrConflict.
	Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.Account, error)

	// GetByEmail returns the account with the given (canonical) email,
	// or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByID returns the account with the given ID, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// List returns all accounts.
	List(ctx context.Context) ([]*models.Account, error)

	// DeleteBelowRank deletes the account only if its role rank is strictly
	// below maxRank, and reports whether a row was removed.
	DeleteBelowRank(ctx context.Context, id int64, maxRank uint8) (bool, error)

	// UpdateEmail changes the account's email. A duplicate yields
	// common.ErrConflict.
	UpdateEmail(ctx context.Context, id int64, email string) error

	// UpdatePasswordHash replaces the stored credential hash.
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}
