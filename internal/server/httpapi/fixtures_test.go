package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/dbx"
	"github.com/donorbase/donorbase/internal/logging"
	"github.com/donorbase/donorbase/internal/passhash"
	"github.com/donorbase/donorbase/internal/server/config"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/donorbase/donorbase/internal/server/repositories/accounts"
	"github.com/donorbase/donorbase/internal/server/repositories/donations"
	"github.com/donorbase/donorbase/internal/server/repositories/invites"
	"github.com/donorbase/donorbase/internal/server/repositories/sessions"
	"github.com/donorbase/donorbase/internal/server/repositories/supporters"
	"github.com/donorbase/donorbase/internal/server/services"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// memRepos is an in-memory repository set backing the handler tests. The
// maps are keyed the same way the database tables are.
type memRepos struct {
	accountsByID map[int64]*models.Account
	sessions     map[string]int64
	invites      map[string]*models.Invite
	donations    map[int64]*models.Donation
	supporters   map[int64]*models.Supporter
	nextID       int64
}

func newMemRepos() *memRepos {
	return &memRepos{
		accountsByID: map[int64]*models.Account{},
		sessions:     map[string]int64{},
		invites:      map[string]*models.Invite{},
		donations:    map[int64]*models.Donation{},
		supporters:   map[int64]*models.Supporter{},
		nextID:       1,
	}
}

func (m *memRepos) addAccount(t *testing.T, email, password string, role models.Role) *models.Account {
	t.Helper()
	hash, err := passhash.Hash(password)
	require.NoError(t, err)
	account := &models.Account{ID: m.nextID, Email: email, PasswordHash: hash, Role: role}
	m.nextID++
	m.accountsByID[account.ID] = account
	return account
}

func (m *memRepos) addSession(account *models.Account) string {
	token := "tok-" + account.Email
	m.sessions[token] = account.ID
	return token
}

func (m *memRepos) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepos) Accounts(dbx.DBTX) accounts.Repository { return (*memAccounts)(m) }
func (m *memRepos) Sessions(dbx.DBTX) sessions.Repository { return (*memSessions)(m) }
func (m *memRepos) Invites(dbx.DBTX) invites.Repository { return (*memInvites)(m) }
func (m *memRepos) Donations(dbx.DBTX) donations.Repository { return (*memDonations)(m) }
func (m *memRepos) Supporters(dbx.DBTX) supporters.Repository { return (*memSupporters)(m) }

type memAccounts memRepos

func (m *memAccounts) Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.Account, error) {
	for _, a := range m.accountsByID {
		if a.Email == email {
			return nil, common.ErrConflict
		}
	}
	account := &models.Account{ID: m.nextID, Email: email, PasswordHash: passwordHash, Role: role}
	m.nextID++
	m.accountsByID[account.ID] = account
	return account, nil
}

func (m *memAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, a := range m.accountsByID {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memAccounts) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if a, ok := m.accountsByID[id]; ok {
		return a, nil
	}
	return nil, common.ErrNotFound
}

func (m *memAccounts) List(ctx context.Context) ([]*models.Account, error) {
	var result []*models.Account
	for _, a := range m.accountsByID {
		result = append(result, a)
	}
	return result, nil
}

func (m *memAccounts) DeleteBelowRank(ctx context.Context, id int64, maxRank uint8) (bool, error) {
	a, ok := m.accountsByID[id]
	if !ok || a.Role.Rank() >= maxRank {
		return false, nil
	}
	delete(m.accountsByID, id)
	return true, nil
}

func (m *memAccounts) UpdateEmail(ctx context.Context, id int64, email string) error {
	if a, ok := m.accountsByID[id]; ok {
		a.Email = email
	}
	return nil
}

func (m *memAccounts) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	if a, ok := m.accountsByID[id]; ok {
		a.PasswordHash = passwordHash
	}
	return nil
}

type memSessions memRepos

func (m *memSessions) Create(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	m.sessions[token] = accountID
	return nil
}

func (m *memSessions) Delete(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *memSessions) GetAccountByToken(ctx context.Context, token string) (*models.Account, error) {
	id, ok := m.sessions[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	if a, ok := m.accountsByID[id]; ok {
		return a, nil
	}
	return nil, common.ErrNotFound
}

func (m *memSessions) DeleteExpired(ctx context.Context) (int64, error) { return 0, nil }

type memInvites memRepos

func (m *memInvites) Create(ctx context.Context, role models.Role, code string, ttl time.Duration) (*models.Invite, error) {
	if _, ok := m.invites[code]; ok {
		return nil, common.ErrConflict
	}
	invite := &models.Invite{ID: m.nextID, Role: role, Code: code, ExpiresAt: time.Now().Add(ttl)}
	m.nextID++
	m.invites[code] = invite
	return invite, nil
}

func (m *memInvites) GetByCode(ctx context.Context, code string) (*models.Invite, error) {
	if i, ok := m.invites[code]; ok {
		return i, nil
	}
	return nil, common.ErrNotFound
}

func (m *memInvites) Consume(ctx context.Context, id int64) (bool, error) {
	for _, i := range m.invites {
		if i.ID == id && i.ExpiresAt.After(time.Now()) {
			i.ExpiresAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

type memDonations memRepos

func (m *memDonations) Create(ctx context.Context, coins uint64, incomeEUR float64, coOp string) (*models.Donation, error) {
	d := &models.Donation{ID: m.nextID, Coins: coins, DonatedAt: time.Now(), IncomeEUR: incomeEUR, CoOp: coOp}
	m.nextID++
	m.donations[d.ID] = d
	return d, nil
}

func (m *memDonations) GetByID(ctx context.Context, id int64) (*models.Donation, error) {
	if d, ok := m.donations[id]; ok {
		return d, nil
	}
	return nil, common.ErrNotFound
}

func (m *memDonations) List(ctx context.Context) ([]*models.Donation, error) {
	var result []*models.Donation
	for _, d := range m.donations {
		result = append(result, d)
	}
	return result, nil
}

func (m *memDonations) Update(ctx context.Context, id int64, coins uint64, incomeEUR float64, coOp string) (bool, error) {
	d, ok := m.donations[id]
	if !ok {
		return false, nil
	}
	d.Coins, d.IncomeEUR, d.CoOp = coins, incomeEUR, coOp
	return true, nil
}

func (m *memDonations) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.donations[id]; !ok {
		return false, nil
	}
	delete(m.donations, id)
	return true, nil
}

type memSupporters memRepos

func (m *memSupporters) Create(ctx context.Context, name string, donationID int64) (*models.Supporter, error) {
	sp := &models.Supporter{ID: m.nextID, Name: name, DonationID: donationID}
	m.nextID++
	m.supporters[sp.ID] = sp
	return sp, nil
}

func (m *memSupporters) GetByID(ctx context.Context, id int64) (*models.Supporter, error) {
	if sp, ok := m.supporters[id]; ok {
		return sp, nil
	}
	return nil, common.ErrNotFound
}

func (m *memSupporters) List(ctx context.Context) ([]*models.Supporter, error) {
	var result []*models.Supporter
	for _, sp := range m.supporters {
		result = append(result, sp)
	}
	return result, nil
}

func (m *memSupporters) Update(ctx context.Context, id int64, name string, donationID int64) (bool, error) {
	sp, ok := m.supporters[id]
	if !ok {
		return false, nil
	}
	sp.Name, sp.DonationID = name, donationID
	return true, nil
}

func (m *memSupporters) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.supporters[id]; !ok {
		return false, nil
	}
	delete(m.supporters, id)
	return true, nil
}

// newTestServer wires a full HTTPServer over the in-memory repositories and
// returns a running httptest server. db backs the transactional flows
// (signup, me patch); tests that exercise those pass a sqlmock handle.
func newTestServer(t *testing.T, repos *memRepos, db *sql.DB) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	srv := NewHTTPServer(
		cfg,
		nopLogger{},
		services.NewAuthService(db, repos, cfg),
		services.NewSignupService(db, repos),
		services.NewInviteService(db, repos, cfg),
		services.NewAccountService(db, repos),
		services.NewDonationService(db, repos),
		services.NewSupporterService(db, repos),
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// doRequest sends a JSON request, optionally carrying the session cookie,
// and decodes the JSON response body into out when it is non-nil.
func doRequest(t *testing.T, ts *httptest.Server, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: token})
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func jsonDecode(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

// requireErrorCode asserts the response status and payload code.
func requireErrorCode(t *testing.T, resp *http.Response, status int, code string, payload ErrorResponse) {
	t.Helper()
	require.Equal(t, status, resp.StatusCode)
	require.Equal(t, code, payload.Error)
	require.NotEmpty(t, payload.Message)
}
