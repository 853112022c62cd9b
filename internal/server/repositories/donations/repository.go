// Package donations provides the repository for donation rows.
package donations

import (
	"context"

	"github.com/donorbase/donorbase/internal/server/models"
)

type Repository interface {
	// Create inserts a donation; donated_at is set by the database.
	Create(ctx context.Context, coins uint64, incomeEUR float64, coOp string) (*models.Donation, error)

	// GetByID returns the donation, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Donation, error)

	// List returns all donations.
	List(ctx context.Context) ([]*models.Donation, error)

	// Update replaces the mutable fields and reports whether the row exists.
	Update(ctx context.Context, id int64, coins uint64, incomeEUR float64, coOp string) (bool, error)

	// Delete removes the donation and reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
