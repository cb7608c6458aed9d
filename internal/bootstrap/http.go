package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	httpx "github.com/rankedhq/ranked-api/internal/http"
)

// StartHTTPServer builds the router over the service container and starts
// listening. Returns the server instance for graceful shutdown.
func StartHTTPServer(addr string, services ServiceContainer, logger *slog.Logger) *http.Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Sessions:        services.Sessions,
		AuthContext:     services.AuthContext,
		OrgContext:      services.OrgContext,
		Auth:            services.Auth,
		Me:              services.Me,
		SessionTTL:      services.SessionTTL,
		Logger:          logger,
		Metrics:         services.Metrics,
		MetricsRegistry: services.MetricsRegistry,
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}
