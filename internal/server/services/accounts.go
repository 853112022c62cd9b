package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/dbx"
	"github.com/donorbase/donorbase/internal/passhash"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/donorbase/donorbase/internal/server/repositories/repomanager"
)

// AccountService serves account administration and self-service.
type AccountService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repos: m}
}

// Get returns a single account by ID.
func (s *AccountService) Get(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.repos.Accounts(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// List returns all accounts.
func (s *AccountService) List(ctx context.Context) ([]*models.Account, error) {
	return s.repos.Accounts(s.db).List(ctx)
}

// Delete removes an account. Only accounts ranked strictly below the
// requester may be deleted: an Admin cannot remove a peer Admin or a
// SuperAdmin.
func (s *AccountService) Delete(ctx context.Context, id int64, requester models.Role) error {
	repo := s.repos.Accounts(s.db)

	if _, err := repo.GetByID(ctx, id); err != nil {
		return err
	}

	deleted, err := repo.DeleteBelowRank(ctx, id, requester.Rank())
	if err != nil {
		return err
	}
	if !deleted {
		return common.ErrInsufficientPermissions
	}
	return nil
}

// UpdateSelf changes the caller's email and/or password in one transaction.
// Nil fields are left untouched.
func (s *AccountService) UpdateSelf(ctx context.Context, id int64, email, password *string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Accounts(tx)

		if email != nil {
			canonical, err := NormalizeEmail(*email)
			if err != nil {
				return err
			}
			if err := repo.UpdateEmail(ctx, id, canonical); err != nil {
				return err
			}
		}

		if password != nil {
			hash, err := passhash.Hash(*password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}
			if err := repo.UpdatePasswordHash(ctx, id, hash); err != nil {
				return err
			}
		}

		return nil
	})
}
