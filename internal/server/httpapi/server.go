// Package httpapi is the web transport: pages, form posts and the small JSON
// API. Every request passes the edge gate first; handlers that touch user
// data additionally run the authoritative session check.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/dmitrijs2005/jablog/internal/server/auth"
	"github.com/dmitrijs2005/jablog/internal/server/metrics"
	"github.com/dmitrijs2005/jablog/internal/server/models"
	"github.com/dmitrijs2005/jablog/internal/server/ratelimit"
	"github.com/dmitrijs2005/jablog/internal/server/services"
	"github.com/dmitrijs2005/jablog/internal/server/session"
	"golang.org/x/sync/errgroup"
)

// Server timeouts.
const (
	ReadHeaderTimeout = 2 * time.Second
	ReadTimeout       = 10 * time.Second
	WriteTimeout      = 10 * time.Second
	IdleTimeout       = 60 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, time.Time, *auth.Identity, error)
	Register(ctx context.Context, email, password string) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type Profiles interface {
	Create(ctx context.Context, userID string, in services.ProfileInput) (*models.Profile, error)
	Get(ctx context.Context, userID string) (*models.Profile, error)
	ProfileExists(ctx context.Context, userID string) (bool, error)
}

type PushSubscriptions interface {
	Subscribe(ctx context.Context, userID string, in services.PushSubscriptionInput) error
	Unsubscribe(ctx context.Context, userID, endpoint string) error
	List(ctx context.Context, userID string) ([]models.PushSubscription, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the server is built from.
type Deps struct {
	Users    Authenticator
	Profiles Profiles
	Push     PushSubscriptions
	Reader   session.OptimisticSessionReader
	Verifier session.AuthoritativeSessionVerifier
	Cookie   session.Cookie
	Limiter  ratelimit.Limiter
	Metrics  *metrics.Metrics
	DB       Pinger
	Logger   logging.Logger

	LoginRateLimit  int
	LoginRateWindow time.Duration

	// TrustedProxies may set the client address through forwarding headers.
	TrustedProxies []string
	// MetricsAddr serves /metrics on its own listener; empty disables it.
	MetricsAddr string
}

type Server struct {
	address string
	Deps
	proxies *proxyMatcher
	logger  logging.Logger
}

func NewServer(address string, deps Deps) *Server {
	return &Server{
		address: address,
		Deps:    deps,
		proxies: newProxyMatcher(deps.TrustedProxies),
		logger:  deps.Logger.With("module", "http_server"),
	}
}

// Listen creates a TCP listener on the given address.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", addr)
}

// Serve runs srv on listener inside grp and shuts it down once ctx is done.
func Serve(ctx context.Context, grp *errgroup.Group, srv *http.Server, listener net.Listener, shutdownTimeout time.Duration) {
	srv.ReadHeaderTimeout = ReadHeaderTimeout
	srv.ReadTimeout = ReadTimeout
	srv.WriteTimeout = WriteTimeout
	srv.IdleTimeout = IdleTimeout

	grp.Go(func() error {
		err := srv.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// Run serves until ctx is canceled or a listener fails.
func (s *Server) Run(ctx context.Context) error {
	listener, err := Listen(ctx, s.address)
	if err != nil {
		return err
	}

	var metricsListener net.Listener
	if s.MetricsAddr != "" {
		metricsListener, err = Listen(ctx, s.MetricsAddr)
		if err != nil {
			_ = listener.Close()
			return err
		}
	}

	return s.serve(ctx, listener, metricsListener)
}

// serve runs the site on listener and, when metricsListener is not nil, the
// Prometheus endpoint on that one.
func (s *Server) serve(ctx context.Context, listener, metricsListener net.Listener) error {
	grp, ctx := errgroup.WithContext(ctx)

	Serve(ctx, grp, &http.Server{Handler: s.Handler()}, listener, ShutdownTimeout)
	s.logger.Info(ctx, "Starting HTTP server", "address", listener.Addr().String())

	if metricsListener != nil {
		Serve(ctx, grp, &http.Server{Handler: s.MetricsHandler()}, metricsListener, ShutdownTimeout)
		s.logger.Info(ctx, "Starting metrics server", "address", metricsListener.Addr().String())
	}

	err := grp.Wait()
	s.logger.Info(context.WithoutCancel(ctx), "HTTP server stopped")
	return err
}
