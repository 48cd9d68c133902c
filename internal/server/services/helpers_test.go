package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/dmitrijs2005/jablog/internal/server/auth"
	"github.com/dmitrijs2005/jablog/internal/server/config"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	ctx := context.Background()
	db, m, err := repomanager.Open(ctx, "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, m.RunMigrations(ctx, db))
	return db, m
}

type capturingMailer struct {
	mu    sync.Mutex
	to    []string
	links []string
	err   error
}

func (m *capturingMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, to)
	m.links = append(m.links, link)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "0123456789abcdef-services-tests"
	cfg.BaseURL = "https://jablog.test/"
	return cfg
}

func newTestUserService(t *testing.T, db *sql.DB, m repomanager.RepositoryManager, mailer Mailer) *UserService {
	t.Helper()
	cfg := testConfig()
	codec, err := auth.NewCodec(cfg.SecretKey)
	require.NoError(t, err)
	s, err := newUserService(db, m, codec, mailer, logging.Nop(), cfg, bcrypt.MinCost)
	require.NoError(t, err)
	return s
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
