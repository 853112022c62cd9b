package repomanager

import (
	"context"
	"database/sql"

	"github.com/donorbase/donorbase/internal/dbx"
	"github.com/donorbase/donorbase/internal/server/migrations"
	"github.com/donorbase/donorbase/internal/server/repositories/accounts"
	"github.com/donorbase/donorbase/internal/server/repositories/donations"
	"github.com/donorbase/donorbase/internal/server/repositories/invites"
	"github.com/donorbase/donorbase/internal/server/repositories/sessions"
	"github.com/donorbase/donorbase/internal/server/repositories/supporters"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Invites(db dbx.DBTX) invites.Repository {
	return invites.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Donations(db dbx.DBTX) donations.Repository {
	return donations.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Supporters(db dbx.DBTX) supporters.Repository {
	return supporters.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
