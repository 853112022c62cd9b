package services

import (
	"context"
	"database/sql"

	"github.com/donorbase/donorbase/internal/common"
	"github.com/donorbase/donorbase/internal/server/models"
	"github.com/donorbase/donorbase/internal/server/repositories/repomanager"
)

// SupporterService serves supporter records linked to donations.
type SupporterService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewSupporterService(db *sql.DB, m repomanager.RepositoryManager) *SupporterService {
	return &SupporterService{db: db, repos: m}
}

func (s *SupporterService) Create(ctx context.Context, name string, donationID int64) (*models.Supporter, error) {
	return s.repos.Supporters(s.db).Create(ctx, name, donationID)
}

func (s *SupporterService) Get(ctx context.Context, id int64) (*models.Supporter, error) {
	return s.repos.Supporters(s.db).GetByID(ctx, id)
}

func (s *SupporterService) List(ctx context.Context) ([]*models.Supporter, error) {
	return s.repos.Supporters(s.db).List(ctx)
}

func (s *SupporterService) Update(ctx context.Context, id int64, name string, donationID int64) error {
	updated, err := s.repos.Supporters(s.db).Update(ctx, id, name, donationID)
	if err != nil {
		return err
	}
	if !updated {
		return common.ErrNotFound
	}
	return nil
}

func (s *SupporterService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repos.Supporters(s.db).Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return common.ErrNotFound
	}
	return nil
}
