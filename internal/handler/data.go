package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/authz"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/logger"
)

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// data echoes the posted object back with angle brackets stripped from
// every value.
func (h *Handler) data(c *gin.Context, p authz.Principal) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	sanitized := make(map[string]string, len(body))
	for key, value := range body {
		sanitized[key] = angleBrackets.Replace(fmt.Sprint(value))
	}

	logger.Info("data received", map[string]any{
		"username": p.Username,
		"fields":   len(sanitized),
	})

	c.JSON(http.StatusCreated, gin.H{
		"received_data": sanitized,
		"status":        "success",
	})
}
