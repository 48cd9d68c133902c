package session

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/server/auth"
)

// Cookie describes the single session cookie.
type Cookie struct {
	Name   string
	Secure bool
}

func NewCookie(name string, secure bool) Cookie {
	if name == "" {
		name = common.SessionCookieName
	}
	return Cookie{Name: name, Secure: secure}
}

// Set writes token with a max age matching auth.SessionTTL.
func (c Cookie) Set(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     common.RootPath,
		Expires:  expires,
		MaxAge:   int(auth.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     common.RootPath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the raw cookie value, or "" when absent.
func (c Cookie) Token(r *http.Request) string {
	ck, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return ck.Value
}
