// Package server wires the jablog web server together: storage, services,
// the two session checks and the HTTP transport. Everything is constructed
// once in NewApp and handed down explicitly.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/dmitrijs2005/jablog/internal/server/auth"
	"github.com/dmitrijs2005/jablog/internal/server/config"
	"github.com/dmitrijs2005/jablog/internal/server/httpapi"
	"github.com/dmitrijs2005/jablog/internal/server/metrics"
	"github.com/dmitrijs2005/jablog/internal/server/ratelimit"
	"github.com/dmitrijs2005/jablog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jablog/internal/server/services"
	"github.com/dmitrijs2005/jablog/internal/server/session"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	limiter ratelimit.Limiter
	http    *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if cfg.SecretKey == config.DefaultSecretKey {
		logger.Warn(ctx, "using the development secret key; set JABLOG_SECRET_KEY in production")
	}

	db, repos, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := repos.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	codec, err := auth.NewCodec(cfg.SecretKey)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session keys: %w", err)
	}

	users, err := services.NewUserService(db, repos, codec, services.NewLogMailer(logger), logger, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	profiles := services.NewProfileService(db, repos)

	limiter, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cookie := session.NewCookie(cfg.CookieName, cfg.SecureCookies)
	reader := session.NewCookieReader(cookie, codec)

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, httpapi.Deps{
		Users:           users,
		Profiles:        profiles,
		Push:            services.NewPushService(db, repos),
		Reader:          reader,
		Verifier:        session.NewVerifier(reader, users, profiles, logger.With("module", "session")),
		Cookie:          cookie,
		Limiter:         limiter,
		Metrics:         metrics.New(),
		DB:              db,
		Logger:          logger,
		LoginRateLimit:  cfg.LoginRateLimit,
		LoginRateWindow: cfg.LoginRateWindow,
		TrustedProxies:  cfg.TrustedProxies,
		MetricsAddr:     cfg.MetricsAddr,
	})

	return &App{config: cfg, logger: logger, db: db, limiter: limiter, http: srv}, nil
}

func newLimiter(ctx context.Context, cfg *config.Config, logger logging.Logger) (ratelimit.Limiter, error) {
	if cfg.RedisAddr == "" {
		return ratelimit.NewMemoryLimiter(), nil
	}
	client, err := ratelimit.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	logger.Info(ctx, "using redis rate limiter", "addr", cfg.RedisAddr)
	return ratelimit.NewRedisLimiter(client, logger), nil
}

// Run serves until SIGINT, SIGTERM or SIGQUIT, then releases resources.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")
	runErr := app.http.Run(ctx)

	closeErr := errors.Join(app.limiter.Close(), app.db.Close())
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return errors.Join(runErr, closeErr)
}
