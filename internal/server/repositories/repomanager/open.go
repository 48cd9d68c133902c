package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const sqlitePrefix = "sqlite:"

// Open connects to the database named by dsn and returns the matching
// manager. A dsn of the form "sqlite:<path>" selects the embedded driver;
// anything else is handed to pgx.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	driver, source, manager := "pgx", dsn, NewPostgresRepositoryManager()
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		driver, source, manager = "sqlite", sqliteSource(path), NewSQLiteRepositoryManager()
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// one writer at a time, and ":memory:" is per connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, manager, nil
}

func sqliteSource(path string) string {
	if strings.Contains(path, "_pragma=foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}
