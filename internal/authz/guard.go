// Package authz gates request admission. The access guard resolves a
// bearer token or an active session into a Principal; the role guard
// composes over it, so a role-checked handler can only receive an
// identity the access guard produced. The ordering dependency is in
// the types, not in a runtime check.
package authz

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/token"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/session"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/user"
)

// Principal is the resolved identity of an admitted request.
// UserID is zero for token-authenticated requests; token claims carry
// username and role only.
type Principal struct {
	UserID   int64
	Username string
	Role     user.Role
}

// AuthenticatedHandler is a handler that requires a resolved identity.
type AuthenticatedHandler func(c *gin.Context, p Principal)

type Guard struct {
	tokens   *token.Codec
	sessions session.Store
	users    user.Store
}

func NewGuard(tokens *token.Codec, sessions session.Store, users user.Store) *Guard {
	return &Guard{
		tokens:   tokens,
		sessions: sessions,
		users:    users,
	}
}

// Require admits a request carrying a valid bearer token or an active
// session. A present-but-invalid token rejects immediately; it does
// not fall through to session resolution.
func (g *Guard) Require(h AuthenticatedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c.Request); ok {
			claims, err := g.tokens.Verify(raw)
			if err != nil {
				deny(c)
				return
			}
			h(c, Principal{Username: claims.Username, Role: claims.Role})
			return
		}

		p, ok := g.fromSession(c)
		if !ok {
			deny(c)
			return
		}
		h(c, p)
	}
}

// RequireRole admits only identities holding the given role.
func (g *Guard) RequireRole(role user.Role, h AuthenticatedHandler) gin.HandlerFunc {
	return g.Require(func(c *gin.Context, p Principal) {
		if p.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden",
			})
			return
		}
		h(c, p)
	})
}

// bearerToken extracts the token from "Authorization: <scheme> <token>".
// A bare token without a scheme is also accepted.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.Fields(header)
	switch len(parts) {
	case 1:
		return parts[0], true
	case 2:
		return parts[1], true
	}
	return "", true // present but unparseable; rejects as invalid
}

func (g *Guard) fromSession(c *gin.Context) (Principal, bool) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return Principal{}, false
	}

	sess, err := g.sessions.Get(c.Request.Context(), cookie.Value)
	if err != nil || sess == nil {
		return Principal{}, false
	}

	// A session pointing at a deleted user is invalid, not an error.
	u, err := g.users.FindByID(c.Request.Context(), sess.UserID)
	if err != nil {
		return Principal{}, false
	}

	return Principal{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}, true
}

func deny(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "access denied",
	})
}
