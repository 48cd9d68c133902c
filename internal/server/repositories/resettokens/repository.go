// Package resettokens stores pending password reset tokens by hash.
package resettokens

import (
	"context"

	"github.com/dmitrijs2005/jablog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.ResetToken) error
	// Find returns common.ErrorNotFound for an unknown hash. Expiry is the
	// caller's concern.
	Find(ctx context.Context, tokenHash string) (*models.ResetToken, error)
	// DeleteForUser drops every pending token of userID; deleting nothing is
	// not an error.
	DeleteForUser(ctx context.Context, userID string) error
}
