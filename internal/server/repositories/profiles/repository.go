// Package profiles stores the onboarding profile that gates the main
// authenticated area.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/jablog/internal/server/models"
)

type Repository interface {
	// Create stores p. A second profile for the same user yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, p *models.Profile) error
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Exists(ctx context.Context, userID string) (bool, error)
}
