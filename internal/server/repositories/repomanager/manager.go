// Package repomanager binds repositories to a database handle. Accessors
// take a dbx.DBTX so services can use the same repository code on the shared
// pool and inside transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/donorbase/donorbase/internal/dbx"
	"github.com/donorbase/donorbase/internal/server/repositories/accounts"
	"github.com/donorbase/donorbase/internal/server/repositories/donations"
	"github.com/donorbase/donorbase/internal/server/repositories/invites"
	"github.com/donorbase/donorbase/internal/server/repositories/sessions"
	"github.com/donorbase/donorbase/internal/server/repositories/supporters"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Invites(db dbx.DBTX) invites.Repository
	Donations(db dbx.DBTX) donations.Repository
	Supporters(db dbx.DBTX) supporters.Repository
}
