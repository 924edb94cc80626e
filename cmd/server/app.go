package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mnemos/mnemos-api/internal/config"
	"github.com/mnemos/mnemos-api/internal/domain/srs"
	"github.com/mnemos/mnemos-api/internal/platform/clock"
	"github.com/mnemos/mnemos-api/internal/platform/postgres"
	"github.com/mnemos/mnemos-api/internal/practice"
	"github.com/mnemos/mnemos-api/internal/service/auth"
	"github.com/mnemos/mnemos-api/internal/service/word_practice"
)

// application holds the assembled dependency graph for the server.
type application struct {
	config          *config.Config
	logger          *slog.Logger
	db              *sql.DB
	jwtService      auth.JWTService
	practiceService word_practice.Service
}

// newApplication wires the full dependency graph: database, stores, scheduler,
// selector, and services. Construction order follows the dependency direction;
// nothing here starts serving yet.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to set up JWT service: %w", err)
	}

	vocabStore := postgres.NewPostgresVocabularyStore(db, logger)
	scheduler := srs.NewService()
	selector := practice.NewSelector(practice.NewRandShuffler(time.Now().UnixNano()))

	practiceService := word_practice.NewService(
		db,
		vocabStore,
		scheduler,
		selector,
		clock.System{},
		word_practice.Config{MaxHistoryDays: cfg.Practice.MaxHistoryDays},
		logger,
	)

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		jwtService:      jwtService,
		practiceService: practiceService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
