// Package token issues and verifies the signed bearer tokens returned
// by password login. Tokens are self-contained: validity is a function
// of the signature and expiry only, and there is no server-side
// revocation list. A compromised token therefore stays usable until it
// expires; deployments that need revocation have to layer a denylist
// or a short-lived/refresh scheme on top.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/user"
)

const TTL = time.Hour

var (
	ErrMissing      = errors.New("token missing")
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature invalid")
	ErrExpired      = errors.New("token expired")
)

// Claims is the verified identity a token carries.
type Claims struct {
	Username string
	Role     user.Role
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Codec signs and verifies tokens with a process-wide secret. The
// secret is fixed at startup; rotating it mid-run would invalidate
// every outstanding token at once.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret []byte) *Codec {
	return &Codec{
		secret: secret,
		now:    time.Now,
	}
}

// Issue signs a token for the given user, valid for TTL from now.
func (c *Codec) Issue(u user.User) (string, error) {
	now := c.now()

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
		Username: u.Username,
		Role:     string(u.Role),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks a raw token and returns its claims. Failures follow a
// fixed order: absent token, structurally invalid token, signature
// mismatch, then expiry.
func (c *Codec) Verify(raw string) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, ErrMissing
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(raw, &parsed,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	role, err := user.ParseRole(parsed.Role)
	if err != nil || parsed.Username == "" {
		return Claims{}, ErrMalformed
	}

	return Claims{Username: parsed.Username, Role: role}, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
