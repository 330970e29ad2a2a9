package app

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/config"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/db"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/logger"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/redis"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/session"
	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/user"
)

// Infra selects the backing stores. Postgres and Redis are used when
// configured; otherwise the in-memory implementations serve, which is
// what the lab setup and the tests run on.
type Infra struct {
	Users    user.Store
	Sessions session.Store

	cleanups []func() error
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.DatabaseDSN != "" {
		sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, sqlDB); err != nil {
			return nil, err
		}

		infra.Users = user.NewPostgresStore(sqlDB)
		infra.cleanups = append(infra.cleanups, sqlDB.Close)
		logger.Info("database ready", nil)
	} else {
		infra.Users = user.NewMemoryStore()
		logger.Info("using in-memory user store", nil)
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}

		infra.Sessions = session.NewRedisStore(redisClient.Client)
		infra.cleanups = append(infra.cleanups, redisClient.Close)
		logger.Info("redis ready", nil)
	} else {
		infra.Sessions = session.NewMemoryStore()
		logger.Info("using in-memory session store", nil)
	}

	return infra, nil
}

func (i *Infra) Close() error {
	var firstErr error
	for _, cleanup := range i.cleanups {
		if err := cleanup(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
