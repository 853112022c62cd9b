package supporters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/dbx"
	"github.com/donorbase/donorbase/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, name string, donationID int64) (*models.Supporter, error) {
	query := `
		INSERT INTO supporters (name, donation_id)
		VALUES ($1, $2)
		RETURNING id
	`
	supporter := &models.Supporter{Name: name, DonationID: donationID}
	if err := r.db.QueryRowContext(ctx, query, name, donationID).Scan(&supporter.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return supporter, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Supporter, error) {
	query := `
		SELECT id, name, donation_id
		FROM supporters
		WHERE id = $1
	`
	supporter := &models.Supporter{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&supporter.ID, &supporter.Name, &supporter.DonationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return supporter, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Supporter, error) {
	query := `
		SELECT id, name, donation_id
		FROM supporters
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Supporter
	for rows.Next() {
		supporter := &models.Supporter{}
		if err := rows.Scan(&supporter.ID, &supporter.Name, &supporter.DonationID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, supporter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, name string, donationID int64) (bool, error) {
	query := `
		UPDATE supporters
		SET name = $1, donation_id = $2
		WHERE id = $3
	`
	res, err := r.db.ExecContext(ctx, query, name, donationID, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `
		DELETE FROM supporters
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
