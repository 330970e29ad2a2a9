package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/logger"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/session"
)

// logout destroys the session before responding. Destroying an
// already-destroyed or unknown session is not an error.
func (h *Handler) logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(c.Request.Context(), cookie.Value); err != nil {
			logger.Warn("session delete failed", map[string]any{
				"error": err.Error(),
			})
		}
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
