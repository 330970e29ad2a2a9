package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/credentials"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/provider"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/provider/google"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/resolver"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/auth/token"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/authz"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/config"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/handler"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/logger"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/middleware"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := seedUsers(ctx, infra, cfg); err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	verifier := credentials.NewVerifier(infra.Users)
	codec := token.NewCodec([]byte(cfg.JWTSecret))
	guard := authz.NewGuard(codec, infra.Sessions, infra.Users)

	var providers []provider.OAuthProvider
	if cfg.GoogleClientID != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, googleProvider)
	} else {
		logger.Warn("no oauth provider configured, federated login disabled", nil)
	}

	registry := provider.NewRegistry(providers...)
	if names := registry.Names(); len(names) > 0 {
		logger.Info("oauth providers registered", map[string]any{
			"providers": names,
		})
	}

	identityResolver := resolver.NewStoreResolver(infra.Users)

	authHandler := handler.New(
		infra.Users,
		verifier,
		codec,
		infra.Sessions,
		registry,
		identityResolver,
		guard,
		cfg.OAuthSuccessRedirect,
		cfg.OAuthFailureRedirect,
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		// Detail stays in the log; the client gets a generic body.
		logger.Error("handler panic", map[string]any{
			"panic": fmt.Sprint(recovered),
			"path":  c.Request.URL.Path,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "server error",
		})
	}))
	router.Use(middleware.RequestLog())
	router.Use(middleware.SecurityHeaders())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router, infra.Close, nil
}
