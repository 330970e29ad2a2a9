package app

import (
	"context"
	"net/http"

	"github.com/saanvidave/IA-2-CYBERSECURITY/internal/config"
)

type App struct {
	httpServer *http.Server
	tlsCert    string
	tlsKey     string
	cleanup    func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	router, cleanup, err := setupHTTP(ctx, cfg)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	return &App{
		httpServer: server,
		tlsCert:    cfg.TLSCertFile,
		tlsKey:     cfg.TLSKeyFile,
		cleanup:    cleanup,
	}, nil
}

func (a *App) Run() error {
	if a.tlsCert != "" && a.tlsKey != "" {
		return a.httpServer.ListenAndServeTLS(a.tlsCert, a.tlsKey)
	}
	return a.httpServer.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}
