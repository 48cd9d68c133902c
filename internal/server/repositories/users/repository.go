// Package users stores credential records.
package users

import (
	"context"

	"github.com/dmitrijs2005/jablog/internal/server/models"
)

// Repository persists users. Lookups return common.ErrorNotFound when the
// row is absent; Create returns common.ErrorAlreadyExists for a taken email.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id string, hash []byte) error
}
