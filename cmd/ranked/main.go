package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rankedhq/ranked-api/internal/bootstrap"
	"github.com/rankedhq/ranked-api/internal/devseed"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting ranked-api",
		"addr", cfg.HTTP.Addr,
		"db_host", cfg.Postgres.Host,
		"db_name", cfg.Postgres.Name,
		"dev", cfg.IsDev,
	)

	db, err := bootstrap.ConnectDB(cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	if err = bootstrap.RunMigrations(ctx, db, cfg.Postgres, logger); err != nil {
		return err
	}

	if cfg.IsDev && cfg.SeedOnStart {
		if err = devseed.Run(ctx, db, logger); err != nil {
			return fmt.Errorf("seed dev data: %w", err)
		}
	}

	services, err := bootstrap.BuildServices(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	server := bootstrap.StartHTTPServer(cfg.HTTP.Addr, services, logger)

	// Block until interrupted, then drain in-flight requests.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	return bootstrap.ShutdownHTTPServer(ctx, server, logger)
}
