package httpapi

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/server/edge"
	"github.com/dmitrijs2005/jablog/internal/server/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type verifyFunc func(ctx context.Context, r *http.Request) (session.Decision, error)

// requireSession guards handlers with the plain authoritative check.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return s.verified("session", s.Verifier.VerifySession, s.denyPage, next)
}

// requireProfile additionally demands a completed profile.
func (s *Server) requireProfile(next http.Handler) http.Handler {
	return s.verified("profile", s.Verifier.VerifySessionWithProfile, s.denyPage, next)
}

// requireSessionAPI answers 401 instead of redirecting.
func (s *Server) requireSessionAPI(next http.Handler) http.Handler {
	return s.verified("api", s.Verifier.VerifySession, s.denyAPI, next)
}

func (s *Server) verified(level string, verify verifyFunc, deny func(http.ResponseWriter, *http.Request, session.DenyRedirect), next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := verify(r.Context(), r)
		if err != nil {
			s.Metrics.Verification(level, "error")
			s.logger.Error(r.Context(), "session verification failed", "error", err)
			if level == "api" {
				writeError(w, http.StatusInternalServerError, "internal error")
			} else {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
			return
		}

		switch d := d.(type) {
		case session.Allowed:
			s.Metrics.Verification(level, "allowed")
			next.ServeHTTP(w, r.WithContext(session.WithIdentity(r.Context(), d.Identity)))
		case session.DenyRedirect:
			s.Metrics.Verification(level, "denied")
			deny(w, r, d)
		default:
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

func (s *Server) denyPage(w http.ResponseWriter, r *http.Request, d session.DenyRedirect) {
	target := d.Target
	if target == common.LoginPath {
		// A cookie the edge still accepts would bounce /login back here.
		s.Cookie.Clear(w)
		target = edge.LoginURL(r.URL.Path)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) denyAPI(w http.ResponseWriter, r *http.Request, d session.DenyRedirect) {
	if d.Target == common.OnboardingPath {
		writeError(w, http.StatusForbidden, "profile required")
		return
	}
	writeError(w, http.StatusUnauthorized, "unauthorized")
}

// rateLimit limits requests per client IP for route.
func (s *Server) rateLimit(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.Limiter == nil || s.LoginRateLimit <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			d := s.Limiter.Allow(r.Context(), route+":"+clientIP(r), s.LoginRateLimit, s.LoginRateWindow)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(s.LoginRateLimit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining(s.LoginRateLimit)))
			if !d.WindowEnd.IsZero() {
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.WindowEnd.Unix(), 10))
			}
			if !d.Allowed {
				s.Metrics.RateLimited(route)
				s.logger.Warn(r.Context(), "rate limited", "route", route, "ip", clientIP(r))
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter(d.WindowEnd)))
				http.Error(w, "Too many attempts, try again later", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfter(end time.Time) int {
	secs := int(time.Until(end).Seconds())
	if secs < 1 {
		return 1
	}
	return secs
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		host = "unknown"
	}
	return host
}

// observe records request count and latency by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.Metrics.ObserveRequest(r.Method, route, status, time.Since(start))
	})
}
