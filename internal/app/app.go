// Package app provides the main application struct for centralized dependency
// management and lifecycle control of the blog API server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"blogapi/config"
	"blogapi/internal/blog"
	"blogapi/internal/server"
	"blogapi/internal/storage"
)

// App represents the main application with all its dependencies.
// It provides centralized lifecycle management for all components.
type App struct {
	config  *config.Config
	storage *storage.Storage
	store   blog.Store
	server  *server.Server

	shutdownMu sync.Mutex
	shutdown   bool
}

// New creates a new App with all dependencies initialized.
// The caller must call Shutdown to release resources.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	store, err := storage.New(ctx, storage.Config{
		URL:      cfg.Storage.URL,
		Database: cfg.Storage.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	postStore, err := blog.NewMongoStore(store.Database())
	if err != nil {
		closeErr := store.Close(ctx)
		if closeErr != nil {
			return nil, fmt.Errorf("failed to initialize post store: %w (also: storage close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize post store: %w", err)
	}

	app := &App{
		config:  cfg,
		storage: store,
		store:   postStore,
	}

	app.logStartupInfo()

	serverCfg := &server.Config{
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsEndpoint: cfg.Metrics.Endpoint,
		BodySizeLimit:   cfg.Server.BodySizeLimit,
	}
	app.server = server.New(postStore, serverCfg)

	return app, nil
}

// Store returns the post store for direct access (used by tests to
// verify persisted state independently of the HTTP surface).
func (a *App) Store() blog.Store {
	return a.store
}

// ServeHTTP implements http.Handler, delegating to the underlying server.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.server.ServeHTTP(w, r)
}

// Start starts the HTTP server on the given address.
// This is a blocking call that returns when the server stops.
func (a *App) Start(addr string) error {
	if a.server == nil {
		return fmt.Errorf("server is not initialized")
	}
	slog.Info("starting server", "address", addr)
	if err := a.server.Start(addr); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			slog.Info("server stopped gracefully")
			return nil
		}
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown gracefully tears down app components in dependency order:
// the HTTP server first (stop accepting requests), then the database
// connection. Idempotent and safe for repeated calls.
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownMu.Lock()
	if a.shutdown {
		a.shutdownMu.Unlock()
		return nil
	}
	a.shutdown = true
	a.shutdownMu.Unlock()

	slog.Info("shutting down application...")

	var errs []error

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
	}

	if a.storage != nil {
		if err := a.storage.Close(ctx); err != nil {
			slog.Error("storage close error", "error", err)
			errs = append(errs, fmt.Errorf("storage close: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}

	slog.Info("application shutdown complete")
	return nil
}

// logStartupInfo logs the application configuration on startup.
func (a *App) logStartupInfo() {
	cfg := a.config

	slog.Info("storage configured", "database", cfg.Storage.Database)

	if cfg.Metrics.Enabled {
		slog.Info("prometheus metrics enabled", "endpoint", cfg.Metrics.Endpoint)
	} else {
		slog.Info("prometheus metrics disabled")
	}
}
