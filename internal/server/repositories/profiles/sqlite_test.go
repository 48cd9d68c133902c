package profiles

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/server/migrations"
	"github.com/dmitrijs2005/jablog/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newSQLiteRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db, goose.DialectSQLite3))
	_, err = db.Exec(`INSERT INTO users (id, email, password_hash, created_at) VALUES ('u-1', 'a@example.com', x'00', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)
	return NewSQLiteRepository(db), db
}

func TestSQLite_ProfileLifecycle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSQLiteRepo(t)

	ok, err := repo.Exists(ctx, "u-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByUserID(ctx, "u-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	p := &models.Profile{UserID: "u-1", DisplayName: "Alice", Medication: "sema", DoseDay: 5, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, p))

	ok, err = repo.Exists(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.DisplayName)
	assert.Equal(t, 5, got.DoseDay)

	assert.ErrorIs(t, repo.Create(ctx, p), common.ErrorAlreadyExists)
}

func TestSQLite_RejectsDoseDayOutOfRange(t *testing.T) {
	repo, _ := newSQLiteRepo(t)

	err := repo.Create(context.Background(), &models.Profile{UserID: "u-1", DisplayName: "A", DoseDay: 7, CreatedAt: time.Now()})
	assert.Error(t, err)
}
