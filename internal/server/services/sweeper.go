package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/donorbase/donorbase/internal/logging"
	"github.com/donorbase/donorbase/internal/server/config"
	"github.com/donorbase/donorbase/internal/server/repositories/repomanager"
)

// Sweeper periodically purges expired sessions. Validation filters expired
// sessions out at query time anyway; the sweeper only keeps the table from
// growing without bound.
type Sweeper struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	interval time.Duration
	logger   logging.Logger
}

func NewSweeper(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *Sweeper {
	return &Sweeper{
		db:       db,
		repos:    m,
		interval: cfg.SweepInterval,
		logger:   l.With("module", "sweeper"),
	}
}

// Run blocks, sweeping once per interval until ctx is cancelled. It is
// started once at process startup and shares the connection pool with the
// request handlers. A failed sweep is logged and retried on the next tick,
// never fatal.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info(ctx, "starting session sweeper", "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "stopping session sweeper")
			return
		case <-ticker.C:
			n, err := s.repos.Sessions(s.db).DeleteExpired(ctx)
			if err != nil {
				s.logger.Error(ctx, "expired session cleanup failed", "error", err.Error())
				continue
			}
			s.logger.Info(ctx, "deleted expired sessions", "count", n)
		}
	}
}
