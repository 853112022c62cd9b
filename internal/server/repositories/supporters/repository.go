// Package supporters provides the repository for supporter rows.
package supporters

import (
	"context"

	"github.com/donorbase/donorbase/internal/server/models"
)

type Repository interface {
	// Create inserts a supporter linked to a donation.
	Create(ctx context.Context, name string, donationID int64) (*models.Supporter, error)

	// GetByID returns the supporter, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Supporter, error)

	// List returns all supporters.
	List(ctx context.Context) ([]*models.Supporter, error)

	// Update replaces the mutable fields and reports whether the row exists.
	Update(ctx context.Context, id int64, name string, donationID int64) (bool, error)

	// Delete removes the supporter and reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
