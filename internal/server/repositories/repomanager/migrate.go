package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jablog/internal/server/migrations"
	"github.com/pressly/goose/v3"
)

// runGoose is a seam for testing migrations.Up.
var runGoose = func(ctx context.Context, dialect goose.Dialect, db *sql.DB) error {
	return migrations.Up(ctx, db, dialect)
}
