package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/randx"
	"github.com/donorbase/donorbase/internal/server/config"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/donorbase/donorbase/internal/server/repositories/repomanager"
	"github.com/sethvargo/go-retry"
)

// inviteCodeAttempts bounds code-collision retries. Collisions are
// vanishingly rare at 16 alphanumeric characters; more than a couple in a
// row means something else is wrong and the conflict surfaces to the caller.
const inviteCodeAttempts = 3

// InviteService mints role-scoped signup invites.
type InviteService struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	inviteTTL time.Duration
}

func NewInviteService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *InviteService {
	return &InviteService{
		db:        db,
		repos:     m,
		inviteTTL: cfg.InviteTTL,
	}
}

// Issue creates an invite granting target. Only a SuperAdmin may mint
// invites, and never for the SuperAdmin role itself.
func (s *InviteService) Issue(ctx context.Context, requester, target models.Role) (*models.Invite, error) {
	if !requester.AtLeast(models.RoleSuperAdmin) || target.AtLeast(models.RoleSuperAdmin) {
		return nil, common.ErrInsufficientPermissions
	}
	if !target.IsValid() {
		return nil, common.ErrInsufficientPermissions
	}

	var invite *models.Invite

	// On a code collision, retry with a fresh code instead of failing the
	// request outright.
	err := retry.Do(ctx, retry.WithMaxRetries(inviteCodeAttempts, retry.NewConstant(time.Millisecond)), func(ctx context.Context) error {
		code, err := randx.MakeRandString(models.InviteCodeLength)
		if err != nil {
			return fmt.Errorf("generating invite code: %w", err)
		}

		invite, err = s.repos.Invites(s.db).Create(ctx, target, code, s.inviteTTL)
		if errors.Is(err, common.ErrConflict) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return invite, nil
}
