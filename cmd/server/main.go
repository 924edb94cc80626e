// Package main implements the entry point for the Mnemos API server,
// which schedules vocabulary reviews and prioritizes practice sessions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/mnemos/mnemos-api/internal/config"
	"github.com/mnemos/mnemos-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"Run a database migration command (up, down, status, version) and exit",
	)
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd); err != nil {
			appLogger.Error("migration failed",
				slog.String("command", *migrateCmd),
				slog.String("error", err.Error()))
			log.Fatalf("Migration failed: %v", err)
		}
		appLogger.Info("migration completed", slog.String("command", *migrateCmd))
		return
	}

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))
	if cfg.Database.URL != "" {
		appLogger.Debug("database configuration", slog.Bool("url_present", true))
	}

	return cfg, appLogger, nil
}
