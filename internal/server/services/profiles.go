package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/server/models"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/repomanager"
)

type ProfileInput struct {
	DisplayName string
	Medication  string
	DoseDay     int
}

// ProfileService manages the onboarding profile.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m, now: time.Now}
}

func (s *ProfileService) Create(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Medication = strings.TrimSpace(in.Medication)
	if in.DisplayName == "" {
		return nil, fmt.Errorf("%w: display name is required", common.ErrorValidation)
	}
	if in.DoseDay < 0 || in.DoseDay > 6 {
		return nil, fmt.Errorf("%w: dose day must be between 0 and 6", common.ErrorValidation)
	}

	p := &models.Profile{
		UserID:      userID,
		DisplayName: in.DisplayName,
		Medication:  in.Medication,
		DoseDay:     in.DoseDay,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repomanager.Profiles(s.db).Create(ctx, p); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating profile: %w", err)
	}
	return p, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByUserID(ctx, userID)
}

func (s *ProfileService) ProfileExists(ctx context.Context, userID string) (bool, error) {
	return s.repomanager.Profiles(s.db).Exists(ctx, userID)
}
