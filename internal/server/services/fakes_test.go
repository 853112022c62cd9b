package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/dbx"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/donorbase/donorbase/internal/server/repositories/accounts"
	"github.com/donorbase/donorbase/internal/server/repositories/donations"
	"github.com/donorbase/donorbase/internal/server/repositories/invites"
	"github.com/donorbase/donorbase/internal/server/repositories/sessions"
	"github.com/donorbase/donorbase/internal/server/repositories/supporters"
)

var commonNotFound = common.ErrNotFound

// fakeRepoManager hands out the fixed fakes regardless of the DBTX.
type fakeRepoManager struct {
	accounts   accounts.Repository
	sessions   sessions.Repository
	invites    invites.Repository
	donations  donations.Repository
	supporters supporters.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(dbx.DBTX) accounts.Repository { return m.accounts }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository { return m.sessions }
func (m *fakeRepoManager) Invites(dbx.DBTX) invites.Repository { return m.invites }
func (m *fakeRepoManager) Donations(dbx.DBTX) donations.Repository { return m.donations }
func (m *fakeRepoManager) Supporters(dbx.DBTX) supporters.Repository { return m.supporters }

type fakeAccountsRepo struct {
	byEmail map[string]*models.Account
	byID    map[int64]*models.Account

	createErr error
}

func (f *fakeAccountsRepo) Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Account{ID: 1, Email: email, PasswordHash: passwordHash, Role: role}, nil
}

func (f *fakeAccountsRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, commonNotFound
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, commonNotFound
}

func (f *fakeAccountsRepo) List(ctx context.Context) ([]*models.Account, error) { return nil, nil }

func (f *fakeAccountsRepo) DeleteBelowRank(ctx context.Context, id int64, maxRank uint8) (bool, error) {
	a, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	if a.Role.Rank() >= maxRank {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeAccountsRepo) UpdateEmail(ctx context.Context, id int64, email string) error { return nil }

func (f *fakeAccountsRepo) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	return nil
}

type createdSession struct {
	token     string
	accountID int64
	ttl       time.Duration
}

type fakeSessionsRepo struct {
	created []createdSession
	deleted []string

	resolved   *models.Account
	resolveErr error

	deleteExpiredN   int64
	deleteExpiredErr error

	mu     sync.Mutex
	sweeps int
}

func (f *fakeSessionsRepo) sweepCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sweeps
}

func (f *fakeSessionsRepo) Create(ctx context.Context, token string, accountID int64, ttl time.Duration) error {
	f.created = append(f.created, createdSession{token: token, accountID: accountID, ttl: ttl})
	return nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeSessionsRepo) GetAccountByToken(ctx context.Context, token string) (*models.Account, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.resolved, nil
}

func (f *fakeSessionsRepo) DeleteExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	f.sweeps++
	f.mu.Unlock()
	if f.deleteExpiredErr != nil {
		return 0, f.deleteExpiredErr
	}
	return f.deleteExpiredN, nil
}

type inviteCreate struct {
	role models.Role
	code string
	ttl  time.Duration
}

type fakeInvitesRepo struct {
	creates    []inviteCreate
	createErrs []error // consumed per call; nil entry means success
}

func (f *fakeInvitesRepo) Create(ctx context.Context, role models.Role, code string, ttl time.Duration) (*models.Invite, error) {
	f.creates = append(f.creates, inviteCreate{role: role, code: code, ttl: ttl})
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &models.Invite{ID: 1, Role: role, Code: code, ExpiresAt: time.Now().Add(ttl)}, nil
}

func (f *fakeInvitesRepo) GetByCode(ctx context.Context, code string) (*models.Invite, error) {
	return nil, commonNotFound
}

func (f *fakeInvitesRepo) Consume(ctx context.Context, id int64) (bool, error) { return false, nil }
