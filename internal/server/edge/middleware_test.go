package edge

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/dmitrijs2005/jablog/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	ok    bool
	calls int
}

func (s *stubReader) Read(r *http.Request) (auth.Claims, bool) {
	s.calls++
	return auth.Claims{}, s.ok
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []string
}

func (o *recordingObserver) GateDecision(class, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, class+":"+outcome)
}

func serve(t *testing.T, hasSession bool, path string) (*httptest.ResponseRecorder, bool, *recordingObserver) {
	t.Helper()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	obs := &recordingObserver{}
	h := Middleware(&stubReader{ok: hasSession}, logging.Nop(), obs)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec, reached, obs
}

// registered user with a session visiting /login
func TestMiddleware_SessionOnLoginRedirectsToSummary(t *testing.T) {
	rec, reached, obs := serve(t, true, "/login")

	assert.False(t, reached)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/summary", rec.Header().Get("Location"))
	assert.Equal(t, []string{"auth_only:redirect"}, obs.seen)
}

// no cookie, request to /jabs
func TestMiddleware_NoSessionOnProtectedRedirectsToLogin(t *testing.T) {
	rec, reached, _ := serve(t, false, "/jabs")

	assert.False(t, reached)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	loginPath, callback := callbackOf(t, rec.Header().Get("Location"))
	assert.Equal(t, "/login", loginPath)
	assert.Equal(t, "/jabs", callback)
}

// the API handler itself answers 401; the gate must not redirect
func TestMiddleware_APIPassesWithoutSession(t *testing.T) {
	rec, reached, obs := serve(t, false, "/api/push/subscribe")

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"api:pass"}, obs.seen)
}

func TestMiddleware_PassesPublic(t *testing.T) {
	_, reached, obs := serve(t, false, "/")
	assert.True(t, reached)
	assert.Equal(t, []string{"public:pass"}, obs.seen)
}

func TestMiddleware_ReadsCookieOncePerRequest(t *testing.T) {
	reader := &stubReader{}
	h := Middleware(reader, logging.Nop(), &recordingObserver{})(http.NotFoundHandler())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/summary", nil))
	require.Equal(t, 1, reader.calls)
}
