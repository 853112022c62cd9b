package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/google/uuid"
)

type ctxKey string

const accountKey ctxKey = "account"

// sessionToken pulls the session token from the request cookies. A request
// without any cookie header and one whose cookies lack the session cookie
// fail differently so the client can tell the two apart.
func sessionToken(r *http.Request) (string, error) {
	if r.Header.Get("Cookie") == "" {
		return "", common.ErrNoCookies
	}
	cookie, err := r.Cookie(common.SessionCookieName)
	if err != nil {
		return "", common.ErrNoSessionToken
	}
	return cookie.Value, nil
}

// authenticate resolves the session cookie to an account and stores it in
// the request context. Extraction and resolution failures map to distinct
// VALIDATE_ codes.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := sessionToken(r)
		if err != nil {
			writeServiceError(w, "VALIDATE", err)
			return
		}

		account, err := s.auth.Resolve(r.Context(), token)
		if err != nil {
			if !errors.Is(err, common.ErrInvalidToken) {
				s.logger.Error(r.Context(), "session resolution failed", "error", err.Error())
			}
			writeServiceError(w, "VALIDATE", err)
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole gates a subtree on a minimum role. It must run after
// authenticate.
func (s *HTTPServer) requireRole(min models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account := accountFrom(r.Context())
			if account == nil || !account.Role.AtLeast(min) {
				writeServiceError(w, "VALIDATE", common.ErrInsufficientPermissions)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func accountFrom(ctx context.Context) *models.Account {
	account, _ := ctx.Value(accountKey).(*models.Account)
	return account
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger tags every request with a generated ID and logs method,
// path, status, and duration.
func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		logger := s.logger.With("request_id", uuid.NewString())

		next.ServeHTTP(rec, r)

		logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
