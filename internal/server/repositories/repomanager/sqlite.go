package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jablog/internal/dbx"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/pushsubscriptions"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends repositories for the embedded database.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) PushSubscriptions(db dbx.DBTX) pushsubscriptions.Repository {
	return pushsubscriptions.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) ResetTokens(db dbx.DBTX) resettokens.Repository {
	return resettokens.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runGoose(ctx, goose.DialectSQLite3, db)
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
