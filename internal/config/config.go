package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"5000"`

	// Signing secret for issued bearer tokens. Fixed for the process
	// lifetime; changing it invalidates every outstanding token.
	JWTSecret string `env:"SECRET_KEY,required"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	// Where the federated flow lands after success or failure.
	OAuthSuccessRedirect string `env:"OAUTH_SUCCESS_REDIRECT" envDefault:"/dashboard"`
	OAuthFailureRedirect string `env:"OAUTH_FAILURE_REDIRECT" envDefault:"/"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	// Seed passwords for the built-in admin/user1 accounts.
	// A seed account is only created when its password is set.
	AdminPassword string `env:"ADMIN_PASSWORD"`
	UserPassword  string `env:"USER_PASSWORD"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
