// Package app wires the application together: configuration, logging, the
// database pool, and the use-case services built on top of it. The chat
// facade embeds an App and calls the services directly; the CLI tools under
// cmd/ wire narrower slices by hand.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres"
	boardrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/board"
	cardrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/card"
	commentrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/comment"
	eventrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/cardtrack-backend/internal/config"
	boardsvc "github.com/heartmarshall/cardtrack-backend/internal/service/board"
	cardsvc "github.com/heartmarshall/cardtrack-backend/internal/service/card"
)

// App holds the wired services and owns the database pool behind them.
type App struct {
	Cards  *cardsvc.Service
	Boards *boardsvc.Service

	pool *pgxpool.Pool
	log  *slog.Logger
}

// New connects to the database and wires repositories and services.
// The caller supplies an already-validated config so embedders and tests
// can construct one however they like; use config.Load for the usual
// file+env flow.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	txm := postgres.NewTxManager(pool)

	cards := cardrepo.New(pool)
	boards := boardrepo.New(pool)
	comments := commentrepo.New(pool)
	events := eventrepo.New(pool)

	logger.Info("application wired",
		slog.String("version", BuildVersion()),
		slog.String("env", cfg.App.Env),
		slog.String("log_level", cfg.Log.Level),
	)

	return &App{
		Cards:  cardsvc.NewService(logger, cards, boards, comments, events, txm),
		Boards: boardsvc.NewService(logger, boards),
		pool:   pool,
		log:    logger,
	}, nil
}

// Close releases the database pool. Safe to call once after New succeeds.
func (a *App) Close() {
	a.log.Info("closing application")
	a.pool.Close()
}
