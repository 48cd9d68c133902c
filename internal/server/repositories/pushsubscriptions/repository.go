// Package pushsubscriptions stores Web Push endpoints registered through the
// API. Delivering notifications is not handled here.
package pushsubscriptions

import (
	"context"

	"github.com/dmitrijs2005/jablog/internal/server/models"
)

type Repository interface {
	// Upsert stores sub, re-binding an already known endpoint to sub.UserID.
	Upsert(ctx context.Context, sub *models.PushSubscription) error
	// Delete removes the user's subscription for endpoint, returning
	// common.ErrorNotFound if there was none.
	Delete(ctx context.Context, userID, endpoint string) error
	ListByUser(ctx context.Context, userID string) ([]models.PushSubscription, error)
}
