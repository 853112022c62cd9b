package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/dbx"
	"github.com/donorbase/donorbase/internal/passhash"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/donorbase/donorbase/internal/server/repositories/repomanager"
)

// SignupService provisions accounts by consuming single-use invites.
type SignupService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewSignupService(db *sql.DB, m repomanager.RepositoryManager) *SignupService {
	return &SignupService{db: db, repos: m}
}

// SignUp consumes the invite and creates the account in one transaction.
// If either effect fails, both roll back: a duplicate-email conflict leaves
// the invite redeemable.
//
// Consumption is a conditional update that flips the invite's expiry into
// the past only while it is still in the future. Zero affected rows means
// the invite was already used or had expired; the database's row locking
// guarantees at most one of two racing signups sees the flip.
//
// No session is minted here; the caller signs in afterwards.
func (s *SignupService) SignUp(ctx context.Context, email, password, code string) (*models.Account, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	var account *models.Account

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		invitesTx := s.repos.Invites(tx)

		invite, err := invitesTx.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInviteNotFound
			}
			return fmt.Errorf("looking up invite: %w", err)
		}

		consumed, err := invitesTx.Consume(ctx, invite.ID)
		if err != nil {
			return fmt.Errorf("consuming invite: %w", err)
		}
		if !consumed {
			return common.ErrExpiredInvite
		}

		hash, err := passhash.Hash(password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		account, err = s.repos.Accounts(tx).Create(ctx, email, hash, invite.Role)
		if err != nil {
			// common.ErrConflict propagates as-is; the rollback restores
			// the invite.
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}
