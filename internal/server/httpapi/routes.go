package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/server/edge"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// pages served behind the profile-aware check, with their titles
var protectedPages = []struct {
	path, title string
}{
	{"/summary", "Summary"},
	{"/results", "Results"},
	{"/jabs", "Injections"},
	{"/calendar", "Calendar"},
	{"/settings", "Settings"},
	{"/log", "Daily log"},
	{"/weight", "Weight"},
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(trustedRealIP(s.proxies))
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(edge.Middleware(s.Reader, s.logger, s.Metrics))

	r.Get("/", s.handleLanding)
	r.Get("/offline", s.handleOffline)

	r.Get("/login", s.handleLoginPage)
	r.With(s.rateLimit("/login")).Post("/login", s.handleLogin)
	r.Get("/register", s.handleRegisterPage)
	r.With(s.rateLimit("/register")).Post("/register", s.handleRegister)
	r.Get("/forgot-password", s.handleForgotPasswordPage)
	r.With(s.rateLimit("/forgot-password")).Post("/forgot-password", s.handleForgotPassword)
	r.Get("/reset-password", s.handleResetPasswordPage)
	r.Post("/reset-password", s.handleResetPassword)
	r.Post(common.SignOutPath, s.handleSignOut)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/onboarding", s.handleOnboardingPage)
		r.Post("/onboarding", s.handleOnboarding)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireProfile)
		for _, p := range protectedPages {
			r.Get(p.path, s.handlePage(p.title))
			r.Get(p.path+"/*", s.handlePage(p.title))
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSessionAPI)
			r.Get("/push/subscribe", s.handlePushList)
			r.Post("/push/subscribe", s.handlePushSubscribe)
			r.Delete("/push/subscribe", s.handlePushUnsubscribe)
		})
	})

	return r
}

// MetricsHandler is mounted on the metrics listener, away from the site.
func (s *Server) MetricsHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	return r
}
