package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/server/services"
	"github.com/dmitrijs2005/jablog/internal/server/session"
)

const (
	maxFormBytes  = 16 << 10
	healthTimeout = 2 * time.Second

	forgotPasswordMessage = "If an account exists for that email, a reset link is on its way."
)

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "landing", pageData{Title: "jablog"})
}

func (s *Server) handleOffline(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "offline", pageData{Title: "Offline"})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Sign in", Callback: r.URL.Query().Get(common.CallbackParam)}
	if r.URL.Query().Get("reset") != "" {
		data.Message = "Your password has been changed. Please sign in."
	}
	s.render(w, r, http.StatusOK, "login", data)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")
	callback := r.PostForm.Get(common.CallbackParam)

	token, expires, id, err := s.Users.Login(r.Context(), email, r.PostForm.Get("password"))
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.Metrics.Login("invalid")
			s.render(w, r, http.StatusUnauthorized, "login", pageData{
				Title:    "Sign in",
				Error:    common.ErrInvalidCredentials.Error(),
				Email:    email,
				Callback: callback,
			})
			return
		}
		s.Metrics.Login("error")
		s.logger.Error(r.Context(), "login failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.Metrics.Login("success")
	s.logger.Info(r.Context(), "login succeeded", "user_id", id.UserID)
	s.Cookie.Set(w, token, expires)
	http.Redirect(w, r, safeCallback(callback), http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", pageData{Title: "Create account"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")
	password := r.PostForm.Get("password")

	if _, err := s.Users.Register(r.Context(), email, password); err != nil {
		data := pageData{Title: "Create account", Email: email}
		switch {
		case errors.Is(err, common.ErrorValidation):
			data.Error = validationMessage(err)
			s.render(w, r, http.StatusBadRequest, "register", data)
		case errors.Is(err, common.ErrorAlreadyExists):
			data.Error = "An account with this email already exists."
			s.render(w, r, http.StatusConflict, "register", data)
		default:
			s.logger.Error(r.Context(), "register failed", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	token, expires, _, err := s.Users.Login(r.Context(), email, password)
	if err != nil {
		s.logger.Error(r.Context(), "login after register failed", "error", err)
		http.Redirect(w, r, common.LoginPath, http.StatusSeeOther)
		return
	}
	s.Cookie.Set(w, token, expires)
	http.Redirect(w, r, common.OnboardingPath, http.StatusSeeOther)
}

func (s *Server) handleForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "forgot-password", pageData{Title: "Reset password"})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	// A failure only happens for known emails, so it must look like success.
	if err := s.Users.RequestPasswordReset(r.Context(), r.PostForm.Get("email")); err != nil {
		s.logger.Error(r.Context(), "password reset request failed", "error", err)
	}
	s.render(w, r, http.StatusOK, "forgot-password", pageData{Title: "Reset password", Message: forgotPasswordMessage})
}

func (s *Server) handleResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "reset-password", pageData{Title: "Choose a new password", Token: r.URL.Query().Get("token")})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	token := r.PostForm.Get("token")

	err := s.Users.ResetPassword(r.Context(), token, r.PostForm.Get("password"))
	switch {
	case err == nil:
		http.Redirect(w, r, common.LoginPath+"?reset=1", http.StatusSeeOther)
	case errors.Is(err, common.ErrorValidation):
		s.render(w, r, http.StatusBadRequest, "reset-password", pageData{Title: "Choose a new password", Token: token, Error: validationMessage(err)})
	case errors.Is(err, common.ErrResetTokenInvalid):
		s.render(w, r, http.StatusBadRequest, "reset-password", pageData{Title: "Choose a new password", Error: common.ErrResetTokenInvalid.Error()})
	default:
		s.logger.Error(r.Context(), "password reset failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	s.Cookie.Clear(w)
	http.Redirect(w, r, common.LoginPath, http.StatusSeeOther)
}

func (s *Server) handleOnboardingPage(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IdentityFrom(r.Context())
	exists, err := s.Profiles.ProfileExists(r.Context(), id.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "profile lookup failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if exists {
		http.Redirect(w, r, common.LandingPath, http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "onboarding", pageData{Title: "Welcome", Email: id.Email})
}

func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IdentityFrom(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	doseDay, err := strconv.Atoi(r.PostForm.Get("dose_day"))
	if err != nil {
		s.render(w, r, http.StatusBadRequest, "onboarding", pageData{Title: "Welcome", Error: "Choose a dose day."})
		return
	}

	_, err = s.Profiles.Create(r.Context(), id.UserID, services.ProfileInput{
		DisplayName: r.PostForm.Get("display_name"),
		Medication:  r.PostForm.Get("medication"),
		DoseDay:     doseDay,
	})
	switch {
	case err == nil, errors.Is(err, common.ErrorAlreadyExists):
		http.Redirect(w, r, common.LandingPath, http.StatusSeeOther)
	case errors.Is(err, common.ErrorValidation):
		s.render(w, r, http.StatusBadRequest, "onboarding", pageData{Title: "Welcome", Error: validationMessage(err)})
	default:
		s.logger.Error(r.Context(), "create profile failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handlePage(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := session.IdentityFrom(r.Context())
		profile, err := s.Profiles.Get(r.Context(), id.UserID)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			http.Redirect(w, r, common.OnboardingPath, http.StatusSeeOther)
			return
		case err != nil:
			s.logger.Error(r.Context(), "profile lookup failed", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.render(w, r, http.StatusOK, "page", pageData{Title: title, Email: id.Email, Name: profile.DisplayName})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type pushSubscriptionRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

func (s *Server) handlePushSubscribe(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IdentityFrom(r.Context())

	var req pushSubscriptionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := s.Push.Subscribe(r.Context(), id.UserID, services.PushSubscriptionInput{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, map[string]string{"status": "subscribed"})
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	default:
		s.logger.Error(r.Context(), "push subscribe failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handlePushUnsubscribe(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IdentityFrom(r.Context())

	var req pushSubscriptionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil || req.Endpoint == "" {
		writeError(w, http.StatusBadRequest, "endpoint is required")
		return
	}

	err := s.Push.Unsubscribe(r.Context(), id.UserID, req.Endpoint)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "subscription not found")
	default:
		s.logger.Error(r.Context(), "push unsubscribe failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type pushSubscriptionResponse struct {
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handlePushList(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IdentityFrom(r.Context())

	subs, err := s.Push.List(r.Context(), id.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "push list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]pushSubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, pushSubscriptionResponse{Endpoint: sub.Endpoint, CreatedAt: sub.CreatedAt})
	}
	writeJSON(w, http.StatusOK, map[string]any{"subscriptions": out})
}

// safeCallback accepts only local absolute paths and falls back to the
// landing page otherwise.
func safeCallback(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return common.LandingPath
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return common.LandingPath
	}
	return raw
}

// validationMessage strips the sentinel prefix from a wrapped validation error.
func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, common.ErrorValidation.Error()+": "); ok {
		return rest
	}
	return msg
}
