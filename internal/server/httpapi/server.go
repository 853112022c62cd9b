// Package httpapi exposes the donorbase services over HTTP. Routing is
// chi-based; authentication rides on the session cookie and a role gate
// wraps the protected routes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/donorbase/donorbase/internal/logging"
	"github.com/donorbase/donorbase/internal/server/config"
	"github.com/donorbase/donorbase/internal/server/services"
)

type HTTPServer struct {
	cfg        *config.Config
	logger     logging.Logger
	auth       *services.AuthService
	signup     *services.SignupService
	invites    *services.InviteService
	accounts   *services.AccountService
	donations  *services.DonationService
	supporters *services.SupporterService
}

func NewHTTPServer(
	cfg *config.Config,
	l logging.Logger,
	auth *services.AuthService,
	signup *services.SignupService,
	invites *services.InviteService,
	accounts *services.AccountService,
	donations *services.DonationService,
	supporters *services.SupporterService,
) *HTTPServer {
	return &HTTPServer{
		cfg:        cfg,
		logger:     l.With("module", "http_server"),
		auth:       auth,
		signup:     signup,
		invites:    invites,
		accounts:   accounts,
		donations:  donations,
		supporters: supporters,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info(ctx, "starting http server", "address", s.cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "stopping http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
