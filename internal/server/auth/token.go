// Package auth issues and opens the sealed session token. A session token
// is an HS256 JWT carrying the user id and email, encrypted so the claims
// are not readable by the browser.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the fixed lifetime of a session. Tokens are not refreshed.
const SessionTTL = 30 * 24 * time.Hour

// Identity is what a valid session asserts about its holder.
type Identity struct {
	UserID string
	Email  string
}

// Claims is the JWT payload. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func (c *Claims) Identity() Identity {
	return Identity{UserID: c.Subject, Email: c.Email}
}

// IssueToken returns a sealed token for id valid from now for SessionTTL.
func IssueToken(id Identity, keys Keys, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		Email: id.Email,
	})

	signed, err := token.SignedString(keys.signing)
	if err != nil {
		return "", err
	}
	return seal(keys.sealing, []byte(signed))
}

// OpenToken unseals and verifies token as of now. It returns
// common.ErrTokenExpired for an expired session and common.ErrInvalidToken
// for anything else that fails.
func OpenToken(token string, keys Keys, now time.Time) (*Claims, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}
	signed, err := unseal(keys.sealing, token)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(string(signed), claims, func(t *jwt.Token) (any, error) {
		return keys.signing, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !parsed.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// Codec binds the derived keys to a clock.
type Codec struct {
	keys Keys
	now  func() time.Time
}

func NewCodec(secret string) (*Codec, error) {
	keys, err := DeriveKeys([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &Codec{keys: keys, now: time.Now}, nil
}

// Issue returns a sealed token for id and the moment it expires.
func (c *Codec) Issue(id Identity) (string, time.Time, error) {
	now := c.now()
	token, err := IssueToken(id, c.keys, now)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, now.Add(SessionTTL), nil
}

func (c *Codec) Open(token string) (*Claims, error) {
	return OpenToken(token, c.keys, c.now())
}
