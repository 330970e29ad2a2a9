package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/logger"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/session"
)

func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		h.denyOAuth(c, "unknown provider", err)
		return
	}

	state, err := generateState(c)
	if err != nil {
		h.denyOAuth(c, "state generation failed", err)
		return
	}
	_, codeChallenge, err := generatePKCE(c)
	if err != nil {
		h.denyOAuth(c, "pkce generation failed", err)
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

// oauthCallback completes the authorization-code exchange. Every
// failure path redirects to the configured failure destination; the
// caller's browser never sees a server error from this flow.
func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		h.denyOAuth(c, "unknown provider", err)
		return
	}

	if !validateState(c) {
		h.denyOAuth(c, "state mismatch", nil)
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, h.failureRedirect)
		return
	}

	code := c.Query("code")
	if code == "" {
		h.denyOAuth(c, "missing authorization code", nil)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		h.denyOAuth(c, "missing pkce verifier", nil)
		return
	}

	// The exchange is the one outbound network call in the flow.
	exchangeCtx, cancel := context.WithTimeout(c.Request.Context(), exchangeTimeout)
	defer cancel()

	identity, err := p.ExchangeCode(exchangeCtx, code, codeVerifier)
	if err != nil {
		h.denyOAuth(c, "code exchange failed", err)
		return
	}

	u, err := h.resolver.Resolve(c.Request.Context(), identity)
	if err != nil {
		h.denyOAuth(c, "identity resolution failed", err)
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		h.denyOAuth(c, "session id generation failed", err)
		return
	}

	expiresAt := time.Now().Add(sessionTTL)
	err = h.sessions.Create(c.Request.Context(), session.Session{
		SessionID: sessionID,
		UserID:    u.ID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		h.denyOAuth(c, "session persistence failed", err)
		return
	}

	session.SetCookie(c.Writer, sessionID, expiresAt, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info("federated login succeeded", map[string]any{
		"provider": providerName,
		"user_id":  u.ID,
		"username": u.Username,
	})

	c.Redirect(http.StatusFound, h.successRedirect)
}

func (h *Handler) denyOAuth(c *gin.Context, reason string, err error) {
	fields := map[string]any{"reason": reason}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.Warn("oauth flow denied", fields)

	c.Redirect(http.StatusFound, h.failureRedirect)
}
