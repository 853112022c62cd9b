package donations

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

func (r *PostgresRepository) Create(ctx context.Context, coins uint64, incomeEUR float64, coOp string) (*models.Donation, error) {
	query := `
		INSERT INTO donations (coins, income_eur, co_op)
		VALUES ($1, $2, $3)
		RETURNING id, donated_at
	`
	donation := &models.Donation{Coins: coins, IncomeEUR: incomeEUR, CoOp: coOp}
	err := r.db.QueryRowContext(ctx, query, int64(coins), incomeEUR, coOp).
		Scan(&donation.ID, &donation.DonatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return donation, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Donation, error) {
	query := `
		SELECT id, coins, donated_at, income_eur, co_op
		FROM donations
		WHERE id = $1
	`
	donation := &models.Donation{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&donation.ID, &donation.Coins, &donation.DonatedAt, &donation.IncomeEUR, &donation.CoOp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return donation, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Donation, error) {
	query := `
		SELECT id, coins, donated_at, income_eur, co_op
		FROM donations
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Donation
	for rows.Next() {
		donation := &models.Donation{}
		if err := rows.Scan(&donation.ID, &donation.Coins, &donation.DonatedAt, &donation.IncomeEUR, &donation.CoOp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, coins uint64, incomeEUR float64, coOp string) (bool, error) {
	query := `
		UPDATE donations
		SET coins = $1, income_eur = $2, co_op = $3
		WHERE id = $4
	`
	res, err := r.db.ExecContext(ctx, query, int64(coins), incomeEUR, coOp, id)
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
		DELETE FROM donations
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
