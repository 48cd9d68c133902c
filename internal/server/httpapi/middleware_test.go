package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/dmitrijs2005/jablog/internal/server/metrics"
	"github.com/dmitrijs2005/jablog/internal/server/session"
	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	decision session.Decision
	err      error
}

func (v stubVerifier) VerifySession(ctx context.Context, r *http.Request) (session.Decision, error) {
	return v.decision, v.err
}

func (v stubVerifier) VerifySessionWithProfile(ctx context.Context, r *http.Request) (session.Decision, error) {
	return v.decision, v.err
}

func newStubServer(v session.AuthoritativeSessionVerifier) *Server {
	return NewServer("", Deps{
		Verifier: v,
		Cookie:   session.NewCookie("", false),
		Metrics:  metrics.New(),
		Logger:   logging.Nop(),
	})
}

func TestVerified_StoreErrorIs500(t *testing.T) {
	s := newStubServer(stubVerifier{err: errors.New("db down")})
	reached := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { reached = true })

	rec := httptest.NewRecorder()
	s.requireProfile(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, reached)

	rec = httptest.NewRecorder()
	s.requireSessionAPI(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/push/subscribe", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.False(t, reached)
}

func TestVerified_AllowedPutsIdentityInContext(t *testing.T) {
	s := newStubServer(stubVerifier{decision: session.Allowed{Identity: session.Identity{UserID: "u-1"}}})

	var got session.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = session.IdentityFrom(r.Context())
	})

	rec := httptest.NewRecorder()
	s.requireSession(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/onboarding", nil))
	assert.Equal(t, "u-1", got.UserID)
}

func TestVerified_APIWithoutProfileIsForbidden(t *testing.T) {
	s := newStubServer(stubVerifier{decision: session.DenyRedirect{Target: "/onboarding"}})

	rec := httptest.NewRecorder()
	s.requireSessionAPI(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/x", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVerified_OnboardingRedirectKeepsCookie(t *testing.T) {
	s := newStubServer(stubVerifier{decision: session.DenyRedirect{Target: "/onboarding"}})

	rec := httptest.NewRecorder()
	s.requireProfile(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/onboarding", rec.Header().Get("Location"))
	assert.Empty(t, rec.Result().Cookies())
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientIP(r))

	r.RemoteAddr = "10.0.0.2"
	assert.Equal(t, "10.0.0.2", clientIP(r))

	r.RemoteAddr = ""
	assert.Equal(t, "unknown", clientIP(r))
}
