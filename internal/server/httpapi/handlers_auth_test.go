package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/stretchr/testify/require"
)

// serverWithMock pairs the test server with the sqlmock handle backing its
// transactions.
type serverWithMock struct {
	Server *httptest.Server
	mock   sqlmock.Sqlmock
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, newMemRepos(), nil)

	var body map[string]string
	resp := doRequest(t, ts, http.MethodGet, "/health", "", nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == common.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestSignin(t *testing.T) {
	repos := newMemRepos()
	repos.addAccount(t, "ed@example.com", "hunter2", models.RoleEditor)
	ts := newTestServer(t, repos, nil)

	resp := doRequest(t, ts, http.MethodPost, "/users/auth/signin", "",
		map[string]string{"email": "ed@example.com", "password": "hunter2"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	require.Len(t, cookie.Value, models.SessionTokenLength)
	require.Equal(t, 3600, cookie.MaxAge)
	require.Equal(t, "/", cookie.Path)
	require.True(t, cookie.HttpOnly)
	require.False(t, cookie.Secure, "the development cookie must work over plain http")
}

func TestSignin_Errors(t *testing.T) {
	repos := newMemRepos()
	repos.addAccount(t, "ed@example.com", "hunter2", models.RoleEditor)
	ts := newTestServer(t, repos, nil)

	t.Run("unknown account", func(t *testing.T) {
		var payload ErrorResponse
		resp := doRequest(t, ts, http.MethodPost, "/users/auth/signin", "",
			map[string]string{"email": "nobody@example.com", "password": "x"}, &payload)
		requireErrorCode(t, resp, http.StatusNotFound, "SIGNIN_ACCOUNT_NOT_FOUND", payload)
	})

	t.Run("wrong password", func(t *testing.T) {
		var payload ErrorResponse
		resp := doRequest(t, ts, http.MethodPost, "/users/auth/signin", "",
			map[string]string{"email": "ed@example.com", "password": "wrong"}, &payload)
		requireErrorCode(t, resp, http.StatusUnauthorized, "SIGNIN_INCORRECT_PASSWORD", payload)
	})

	t.Run("invalid email", func(t *testing.T) {
		var payload ErrorResponse
		resp := doRequest(t, ts, http.MethodPost, "/users/auth/signin", "",
			map[string]string{"email": "not an email", "password": "x"}, &payload)
		requireErrorCode(t, resp, http.StatusUnprocessableEntity, "SIGNIN_INVALID_EMAIL", payload)
	})
}

func TestSignout(t *testing.T) {
	repos := newMemRepos()
	account := repos.addAccount(t, "ed@example.com", "hunter2", models.RoleEditor)
	token := repos.addSession(account)
	ts := newTestServer(t, repos, nil)

	resp := doRequest(t, ts, http.MethodDelete, "/users/auth/signout", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	require.Equal(t, "", cookie.Value)
	// net/http parses a Set-Cookie Max-Age=0 back as MaxAge -1.
	require.Equal(t, -1, cookie.MaxAge)

	// The session row is gone; repeating still succeeds.
	resp = doRequest(t, ts, http.MethodDelete, "/users/auth/signout", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload ErrorResponse
	resp = doRequest(t, ts, http.MethodGet, "/users/auth/validate", token, nil, &payload)
	requireErrorCode(t, resp, http.StatusUnauthorized, "VALIDATE_INVALID_TOKEN", payload)
}

func TestValidate(t *testing.T) {
	repos := newMemRepos()
	account := repos.addAccount(t, "ed@example.com", "hunter2", models.RoleEditor)
	token := repos.addSession(account)
	ts := newTestServer(t, repos, nil)

	t.Run("valid session", func(t *testing.T) {
		resp := doRequest(t, ts, http.MethodGet, "/users/auth/validate", token, nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("no cookies at all", func(t *testing.T) {
		var payload ErrorResponse
		resp := doRequest(t, ts, http.MethodGet, "/users/auth/validate", "", nil, &payload)
		requireErrorCode(t, resp, http.StatusUnauthorized, "VALIDATE_NO_COOKIES", payload)
	})

	t.Run("cookies without session token", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/users/auth/validate", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "other", Value: "x"})
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var payload ErrorResponse
		require.NoError(t, jsonDecode(resp, &payload))
		requireErrorCode(t, resp, http.StatusUnauthorized, "VALIDATE_NO_SESSION_TOKEN", payload)
	})

	t.Run("unknown token", func(t *testing.T) {
		var payload ErrorResponse
		resp := doRequest(t, ts, http.MethodGet, "/users/auth/validate", "bogus", nil, &payload)
		requireErrorCode(t, resp, http.StatusUnauthorized, "VALIDATE_INVALID_TOKEN", payload)
	})
}

func TestInvite(t *testing.T) {
	repos := newMemRepos()
	super := repos.addAccount(t, "root@example.com", "hunter2", models.RoleSuperAdmin)
	admin := repos.addAccount(t, "admin@example.com", "hunter2", models.RoleAdmin)
	superToken := repos.addSession(super)
	adminToken := repos.addSession(admin)
	ts := newTestServer(t, repos, nil)

	t.Run("superadmin mints invite", func(t *testing.T) {
		var body inviteResponse
		resp := doRequest(t, ts, http.MethodPost, "/users/auth/invite", superToken,
			map[string]string{"role": "editor"}, &body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Len(t, body.Code, models.InviteCodeLength)
	})

	t.Run("admin may not", func(t *testing.T) {
		var payload ErrorResponse
		resp := doRequest(t, ts, http.MethodPost, "/users/auth/invite", adminToken,
			map[string]string{"role": "editor"}, &payload)
		requireErrorCode(t, resp, http.StatusForbidden, "INVITE_INSUFFICIENT_PERMISSIONS", payload)
	})

	t.Run("superadmin invite not mintable", func(t *testing.T) {
		var payload ErrorResponse
		resp := doRequest(t, ts, http.MethodPost, "/users/auth/invite", superToken,
			map[string]string{"role": "superadmin"}, &payload)
		requireErrorCode(t, resp, http.StatusForbidden, "INVITE_INSUFFICIENT_PERMISSIONS", payload)
	})
}

func TestSignup(t *testing.T) {
	newSignupServer := func(t *testing.T, repos *memRepos) (ts *serverWithMock) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return &serverWithMock{Server: newTestServer(t, repos, db), mock: mock}
	}

	t.Run("success", func(t *testing.T) {
		repos := newMemRepos()
		repos.Invites(nil).Create(context.Background(), models.RoleEditor, "GOODCODE", time.Hour)
		ts := newSignupServer(t, repos)
		ts.mock.ExpectBegin()
		ts.mock.ExpectCommit()

		resp := doRequest(t, ts.Server, http.MethodPost, "/users/auth/signup", "",
			map[string]string{"email": "new@example.com", "password": "pw", "invite": "GOODCODE"}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Nil(t, sessionCookie(resp), "signup must not issue a session")
		require.NoError(t, ts.mock.ExpectationsWereMet())
	})

	t.Run("invite not found", func(t *testing.T) {
		ts := newSignupServer(t, newMemRepos())
		ts.mock.ExpectBegin()
		ts.mock.ExpectRollback()

		var payload ErrorResponse
		resp := doRequest(t, ts.Server, http.MethodPost, "/users/auth/signup", "",
			map[string]string{"email": "new@example.com", "password": "pw", "invite": "NOPE"}, &payload)
		requireErrorCode(t, resp, http.StatusNotFound, "SIGNUP_INVITE_NOT_FOUND", payload)
	})

	t.Run("consumed invite is gone", func(t *testing.T) {
		repos := newMemRepos()
		repos.Invites(nil).Create(context.Background(), models.RoleEditor, "ONCE", time.Hour)
		ts := newSignupServer(t, repos)
		ts.mock.ExpectBegin()
		ts.mock.ExpectCommit()
		ts.mock.ExpectBegin()
		ts.mock.ExpectRollback()

		resp := doRequest(t, ts.Server, http.MethodPost, "/users/auth/signup", "",
			map[string]string{"email": "a@example.com", "password": "pw", "invite": "ONCE"}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var payload ErrorResponse
		resp = doRequest(t, ts.Server, http.MethodPost, "/users/auth/signup", "",
			map[string]string{"email": "b@example.com", "password": "pw", "invite": "ONCE"}, &payload)
		requireErrorCode(t, resp, http.StatusGone, "SIGNUP_EXPIRED_INVITE", payload)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		repos := newMemRepos()
		repos.addAccount(t, "taken@example.com", "pw", models.RoleEditor)
		repos.Invites(nil).Create(context.Background(), models.RoleEditor, "GOODCODE", time.Hour)
		ts := newSignupServer(t, repos)
		ts.mock.ExpectBegin()
		ts.mock.ExpectRollback()

		var payload ErrorResponse
		resp := doRequest(t, ts.Server, http.MethodPost, "/users/auth/signup", "",
			map[string]string{"email": "taken@example.com", "password": "pw", "invite": "GOODCODE"}, &payload)
		requireErrorCode(t, resp, http.StatusConflict, "SIGNUP_CONFLICT", payload)
	})
}
