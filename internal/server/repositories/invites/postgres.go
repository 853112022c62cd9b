package invites

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

func (r *PostgresRepository) Create(ctx context.Context, role models.Role, code string, ttl time.Duration) (*models.Invite, error) {
	query := `
		INSERT INTO invites (role, code, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	invite := &models.Invite{Role: role, Code: code, ExpiresAt: time.Now().Add(ttl)}
	err := r.db.QueryRowContext(ctx, query, role, code, invite.ExpiresAt).
		Scan(&invite.ID, &invite.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return invite, nil
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*models.Invite, error) {
	query := `
		SELECT id, role, code, expires_at, created_at
		FROM invites
		WHERE code = $1
	`
	invite := &models.Invite{}
	err := r.db.QueryRowContext(ctx, query, code).
		Scan(&invite.ID, &invite.Role, &invite.Code, &invite.ExpiresAt, &invite.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return invite, nil
}

func (r *PostgresRepository) Consume(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE invites
		SET expires_at = now()
		WHERE id = $1 AND expires_at > now()
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
