package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/logger"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	u, err := h.verifier.Verify(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	raw, err := h.tokens.Issue(u)
	if err != nil {
		logger.Error("token issue failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	logger.Info("login succeeded", map[string]any{
		"username": u.Username,
		"role":     u.Role,
	})

	c.JSON(http.StatusOK, gin.H{"token": raw})
}
