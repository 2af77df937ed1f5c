package app

import (
	"context"
	"net/http"
	"time"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/config"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/logger"
)

// App owns the HTTP server and the infrastructure cleanup hook
// returned by setupHTTP.
type App struct {
	httpServer *http.Server
	cleanup    func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	router, cleanup, err := setupHTTP(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		httpServer: &http.Server{
			Addr:              ":" + cfg.AppPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		cleanup: cleanup,
	}, nil
}

// Run serves HTTP until Shutdown is called or the listener fails.
func (a *App) Run() error {
	return a.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, then releases the database and
// redis connections behind the cleanup hook.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("http server drained", nil)

	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}
