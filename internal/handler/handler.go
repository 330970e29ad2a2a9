package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/credentials"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/provider"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/resolver"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/token"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/authz"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/session"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/user"
)

const (
	sessionTTL      = 24 * time.Hour
	exchangeTimeout = 10 * time.Second
)

type Handler struct {
	users     user.Store
	verifier  *credentials.Verifier
	tokens    *token.Codec
	sessions  session.Store
	providers *provider.Registry
	resolver  resolver.Resolver
	guard     *authz.Guard

	successRedirect string
	failureRedirect string
}

func New(
	users user.Store,
	verifier *credentials.Verifier,
	tokens *token.Codec,
	sessions session.Store,
	providers *provider.Registry,
	identityResolver resolver.Resolver,
	guard *authz.Guard,
	successRedirect string,
	failureRedirect string,
) *Handler {
	return &Handler{
		users:           users,
		verifier:        verifier,
		tokens:          tokens,
		sessions:        sessions,
		providers:       providers,
		resolver:        identityResolver,
		guard:           guard,
		successRedirect: successRedirect,
		failureRedirect: failureRedirect,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.welcome)

	r.POST("/login", h.login)
	r.GET("/auth/:provider", h.oauthLogin)
	r.GET("/auth/:provider/callback", h.oauthCallback)
	r.GET("/logout", h.logout)

	r.GET("/dashboard", h.guard.Require(h.dashboard))
	r.GET("/users", h.guard.Require(h.listUsers))
	r.POST("/users", h.guard.RequireRole(user.RoleAdmin, h.createUser))
	r.DELETE("/users/:id", h.guard.RequireRole(user.RoleAdmin, h.deleteUser))
	r.POST("/data", h.guard.Require(h.data))
}

func (h *Handler) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Secure Cyber Security Lab API",
	})
}

func (h *Handler) dashboard(c *gin.Context, p authz.Principal) {
	c.JSON(http.StatusOK, gin.H{
		"message": "welcome " + p.Username + ", you are logged in",
		"user": gin.H{
			"username": p.Username,
			"role":     p.Role,
		},
	})
}
