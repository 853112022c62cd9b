// Command bootstrap creates the first SuperAdmin account directly in the
// database. Invites require an existing SuperAdmin, so a fresh deployment
// runs this once before anything else.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/passhash"
	"github.com/donorbase/donorbase/internal/server/config"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/donorbase/donorbase/internal/server/repositories/repomanager"
	"github.com/donorbase/donorbase/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg := config.LoadConfig()

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Enter email for the SuperAdmin account")

	email, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	email, err = services.NormalizeEmail(strings.TrimSpace(email))
	if err != nil {
		return err
	}

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}

	hash, err := passhash.Hash(string(password))
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return err
	}

	account, err := repos.Accounts(db).Create(ctx, email, hash, models.RoleSuperAdmin)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return fmt.Errorf("account %s already exists", email)
		}
		return err
	}

	fmt.Printf("Created SuperAdmin %s (id=%d)\n", account.Email, account.ID)
	return nil
}
