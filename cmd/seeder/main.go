// Command seeder creates a demo workspace (account, users, boards, columns,
// cards with history) for local runs of the chat facade. It refuses to run
// against a production environment.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres"
	boardrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/board"
	cardrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/card"
	commentrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/comment"
	eventrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/cardtrack-backend/internal/app"
	"github.com/heartmarshall/cardtrack-backend/internal/app/seeder"
	"github.com/heartmarshall/cardtrack-backend/internal/config"
	cardsvc "github.com/heartmarshall/cardtrack-backend/internal/service/card"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.App.IsProduction() {
		logger.Error("refusing to seed a production environment",
			slog.String("env", cfg.App.Env),
		)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	cards := cardsvc.NewService(logger,
		cardrepo.New(pool),
		boardrepo.New(pool),
		commentrepo.New(pool),
		eventrepo.New(pool),
		postgres.NewTxManager(pool),
	)

	res, err := seeder.New(logger, pool, cards).Run(ctx)
	if err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("demo workspace ready",
		slog.String("account_id", res.AccountID.String()),
		slog.Int("cards", res.Cards),
	)
}
