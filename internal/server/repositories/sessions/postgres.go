package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	query := `
		INSERT INTO sessions (token, account_id, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, token, accountID, time.Now().Add(ttl)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM sessions
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetAccountByToken filters on expires_at as well: an expired session is
// invalid even before the sweeper gets to it.
func (r *PostgresRepository) GetAccountByToken(ctx context.Context, token string) (*models.Account, error) {
	query := `
		SELECT accounts.id, accounts.email, accounts.role
		FROM sessions
		JOIN accounts ON accounts.id = sessions.account_id
		WHERE sessions.token = $1 AND sessions.expires_at > now()
	`
	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&account.ID, &account.Email, &account.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE expires_at < now()
	`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
