package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/credentials"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/authz"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/logger"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/user"
)

// userSummary is the public projection of a user record.
// Secrets and federated identifiers are excluded.
type userSummary struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
}

func (h *Handler) listUsers(c *gin.Context, _ authz.Principal) {
	all, err := h.users.List(c.Request.Context())
	if err != nil {
		logger.Error("user list failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	out := make([]userSummary, 0, len(all))
	for _, u := range all {
		out = append(out, userSummary{
			ID:       u.ID,
			Username: u.Username,
			Role:     u.Role,
		})
	}

	c.JSON(http.StatusOK, out)
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin user"`
}

func (h *Handler) createUser(c *gin.Context, p authz.Principal) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	// The oneof binding already constrained the value.
	role, err := user.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{
			{Field: "role", Message: "must be one of: admin, user"},
		}})
		return
	}

	hash, err := credentials.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{
			{Field: "password", Message: err.Error()},
		}})
		return
	}

	created, err := h.users.Create(c.Request.Context(), user.User{
		Username:     req.Username,
		Role:         role,
		PasswordHash: hash,
	})
	if errors.Is(err, user.ErrUsernameTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{
			{Field: "username", Message: "already taken"},
		}})
		return
	}
	if err != nil {
		logger.Error("user create failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	logger.Info("user created", map[string]any{
		"id":         created.ID,
		"username":   created.Username,
		"role":       created.Role,
		"created_by": p.Username,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "user added successfully"})
}

// deleteUser is idempotent: unknown and non-numeric ids fall through
// to the same confirmation.
func (h *Handler) deleteUser(c *gin.Context, p authz.Principal) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		if err := h.users.Delete(c.Request.Context(), id); err != nil {
			logger.Error("user delete failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		logger.Info("user deleted", map[string]any{
			"id":         id,
			"deleted_by": p.Username,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
