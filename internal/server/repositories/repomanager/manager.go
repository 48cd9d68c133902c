// Package repomanager vends dialect-specific repository implementations and
// applies the embedded goose migrations for the chosen dialect.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jablog/internal/dbx"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/pushsubscriptions"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	PushSubscriptions(db dbx.DBTX) pushsubscriptions.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
}
