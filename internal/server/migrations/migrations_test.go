package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestUp_SQLiteCreatesTables(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	require.NoError(t, Up(context.Background(), db, goose.DialectSQLite3))

	for _, table := range []string{"users", "profiles", "push_subscriptions", "password_reset_tokens"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestUp_UnknownDialect(t *testing.T) {
	err := Up(context.Background(), nil, goose.DialectMySQL)
	assert.ErrorContains(t, err, "no migrations")
}

func TestFS_HasBothDialects(t *testing.T) {
	for _, dir := range []string{"postgres", "sqlite"} {
		entries, err := FS.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2, dir)
	}
}
