// Package session implements the two ways a request's session is checked.
//
// OptimisticSessionReader only decodes the cookie. It never touches the data
// store and is what the edge gate uses for routing decisions.
//
// AuthoritativeSessionVerifier additionally confirms the user (and
// optionally the profile) against the data store. It is the only check that
// may guard user-scoped data.
package session

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/jablog/internal/server/auth"
)

type OptimisticSessionReader interface {
	// Read reports the claims of a decodable, unexpired session token.
	Read(r *http.Request) (auth.Claims, bool)
}

type AuthoritativeSessionVerifier interface {
	VerifySession(ctx context.Context, r *http.Request) (Decision, error)
	VerifySessionWithProfile(ctx context.Context, r *http.Request) (Decision, error)
}

// TokenOpener is satisfied by *auth.Codec.
type TokenOpener interface {
	Open(token string) (*auth.Claims, error)
}

// CookieReader is the stateless OptimisticSessionReader.
type CookieReader struct {
	cookie Cookie
	tokens TokenOpener
}

func NewCookieReader(cookie Cookie, tokens TokenOpener) *CookieReader {
	return &CookieReader{cookie: cookie, tokens: tokens}
}

func (c *CookieReader) Read(r *http.Request) (auth.Claims, bool) {
	raw := c.cookie.Token(r)
	if raw == "" {
		return auth.Claims{}, false
	}
	claims, err := c.tokens.Open(raw)
	if err != nil {
		return auth.Claims{}, false
	}
	return *claims, true
}
