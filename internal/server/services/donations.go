package services

import (
	"context"
	"database/sql"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/donorbase/donorbase/internal/server/repositories/repomanager"
)

// DonationService serves the donation records of the co-ops.
type DonationService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewDonationService(db *sql.DB, m repomanager.RepositoryManager) *DonationService {
	return &DonationService{db: db, repos: m}
}

func (s *DonationService) Create(ctx context.Context, coins uint64, incomeEUR float64, coOp string) (*models.Donation, error) {
	return s.repos.Donations(s.db).Create(ctx, coins, incomeEUR, coOp)
}

func (s *DonationService) Get(ctx context.Context, id int64) (*models.Donation, error) {
	return s.repos.Donations(s.db).GetByID(ctx, id)
}

func (s *DonationService) List(ctx context.Context) ([]*models.Donation, error) {
	return s.repos.Donations(s.db).List(ctx)
}

func (s *DonationService) Update(ctx context.Context, id int64, coins uint64, incomeEUR float64, coOp string) error {
	updated, err := s.repos.Donations(s.db).Update(ctx, id, coins, incomeEUR, coOp)
	if err != nil {
		return err
	}
	if !updated {
		return common.ErrNotFound
	}
	return nil
}

func (s *DonationService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repos.Donations(s.db).Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return common.ErrNotFound
	}
	return nil
}
