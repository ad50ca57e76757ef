//go:build e2e

package e2e_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres"
	boardrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/board"
	cardrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/card"
	commentrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/comment"
	eventrepo "github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/cardtrack-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/cardtrack-backend/internal/domain"
	boardsvc "github.com/heartmarshall/cardtrack-backend/internal/service/board"
	cardsvc "github.com/heartmarshall/cardtrack-backend/internal/service/card"
)

// ---------------------------------------------------------------------------
// stack bundles the wired services over the shared test database.
// ---------------------------------------------------------------------------

type stack struct {
	Pool   *pgxpool.Pool
	Cards  *cardsvc.Service
	Boards *boardsvc.Service
	Events *eventrepo.Repo
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// setupStack wires the full service stack backed by a real PostgreSQL
// container (shared via testhelper).
func setupStack(t *testing.T) *stack {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	boards := boardrepo.New(pool)
	events := eventrepo.New(pool)
	cards := cardsvc.NewService(logger,
		cardrepo.New(pool), boards, commentrepo.New(pool), events, txm,
	)

	return &stack{
		Pool:   pool,
		Cards:  cards,
		Boards: boardsvc.NewService(logger, boards),
		Events: events,
	}
}

// ---------------------------------------------------------------------------
// Workspace fixtures. Every scenario gets a fresh account, so names never
// collide across tests sharing the container.
// ---------------------------------------------------------------------------

type workspace struct {
	AccountID domain.ID
	Alice     domain.User
	Bob       domain.User
	Board     domain.Board
	Backlog   domain.Column
	Doing     domain.Column
	Done      domain.Column
}

// seedWorkspace creates an account with two users and one all-access board
// carrying three columns.
func seedWorkspace(t *testing.T, ts *stack) *workspace {
	t.Helper()

	account := testhelper.SeedAccount(t, ts.Pool)
	alice := testhelper.SeedUser(t, ts.Pool, account)
	bob := testhelper.SeedUser(t, ts.Pool, account)

	board := testhelper.SeedBoard(t, ts.Pool, account, alice.ID, "Roadmap", true)
	backlog := testhelper.SeedColumn(t, ts.Pool, board, "Backlog", "gray", 1)
	doing := testhelper.SeedColumn(t, ts.Pool, board, "Doing", "amber", 2)
	done := testhelper.SeedColumn(t, ts.Pool, board, "Done", "green", 3)

	return &workspace{
		AccountID: account,
		Alice:     alice,
		Bob:       bob,
		Board:     board,
		Backlog:   backlog,
		Doing:     doing,
		Done:      done,
	}
}

// eventActions flattens the board's audit trail (newest first) to actions.
func eventActions(events []*domain.Event) []domain.EventAction {
	actions := make([]domain.EventAction, len(events))
	for i, e := range events {
		actions[i] = e.Action
	}
	return actions
}

func ptrString(s string) *string { return &s }

func ptrBool(b bool) *bool { return &b }
