// Package server initializes and runs the donorbase backend: it opens the
// database pool, applies migrations, and supervises the HTTP endpoint and
// the session sweeper until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/donorbase/donorbase/internal/logging"
	"github.com/donorbase/donorbase/internal/server/config"
	"github.com/donorbase/donorbase/internal/server/httpapi"
	"github.com/donorbase/donorbase/internal/server/repositories/repomanager"
	"github.com/donorbase/donorbase/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
	sweep  *services.Sweeper
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := openDB(context.Background(), cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	auth := services.NewAuthService(db, repos, cfg)
	signup := services.NewSignupService(db, repos)
	invites := services.NewInviteService(db, repos, cfg)
	accounts := services.NewAccountService(db, repos)
	donations := services.NewDonationService(db, repos)
	supporters := services.NewSupporterService(db, repos)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: httpapi.NewHTTPServer(cfg, logger, auth, signup, invites, accounts, donations, supporters),
		sweep:  services.NewSweeper(db, repos, cfg, logger),
	}, nil
}

// openDB opens the pool and pings it with a short backoff so the server
// survives a database that comes up a moment later.
func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(db.PingContext(ctx))
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "starting app", "env", app.config.Env)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.sweep.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
