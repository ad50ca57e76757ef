// Package card orchestrates the card use cases: creation, partial updates,
// column moves, close/reopen, comments and the assignment-centric listings.
// Every operation follows the same shape: validate input, resolve and
// authorize the touched entities, mutate through the stores, then emit a
// best-effort activity event.
package card

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
	"github.com/heartmarshall/cardtrack-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type cardRepo interface {
	FindByID(ctx context.Context, accountID, cardID domain.ID) (*domain.Card, error)
	FindByNumber(ctx context.Context, accountID domain.ID, number int64) (*domain.Card, error)
	List(ctx context.Context, accountID domain.ID, filter domain.CardFilter) ([]*domain.Card, error)
	Create(ctx context.Context, accountID domain.ID, params domain.CreateCardParams) (*domain.Card, error)
	Update(ctx context.Context, accountID, cardID domain.ID, params domain.UpdateCardParams) (*domain.Card, error)
	Close(ctx context.Context, accountID, cardID domain.ID) error
	Reopen(ctx context.Context, accountID, cardID domain.ID) error
	TouchActivity(ctx context.Context, accountID, cardID domain.ID, at time.Time) error
}

type boardRepo interface {
	FindByID(ctx context.Context, accountID, boardID domain.ID) (*domain.Board, error)
	FindByName(ctx context.Context, accountID domain.ID, name string) (*domain.Board, error)
	HasAccess(ctx context.Context, accountID, boardID, userID domain.ID) (bool, error)
	FindColumn(ctx context.Context, accountID, columnID domain.ID) (*domain.Column, error)
}

type commentRepo interface {
	Create(ctx context.Context, accountID, cardID, creatorID domain.ID, content string) (*domain.Comment, error)
	ListForCard(ctx context.Context, accountID, cardID domain.ID, limit int64) ([]*domain.Comment, error)
}

type eventRepo interface {
	Append(ctx context.Context, e domain.Event) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the card business logic.
type Service struct {
	log      *slog.Logger
	cards    cardRepo
	boards   boardRepo
	comments commentRepo
	events   eventRepo
	tx       txManager
}

// NewService creates a new Card service.
func NewService(
	logger *slog.Logger,
	cards cardRepo,
	boards boardRepo,
	comments commentRepo,
	events eventRepo,
	tx txManager,
) *Service {
	return &Service{
		log:      logger.With("service", "card"),
		cards:    cards,
		boards:   boards,
		comments: comments,
		events:   events,
		tx:       tx,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// resolveCard looks a card up by its account-scoped number.
func (s *Service) resolveCard(ctx context.Context, accountID domain.ID, number int64) (*domain.Card, error) {
	card, err := s.cards.FindByNumber(ctx, accountID, number)
	if err != nil {
		return nil, fmt.Errorf("find card: %w", err)
	}
	if card == nil {
		return nil, fmt.Errorf("%w: card #%d", domain.ErrNotFound, number)
	}
	return card, nil
}

// requireBoardAccess rejects actors that can see neither an all-access board
// nor hold an explicit grant.
func (s *Service) requireBoardAccess(ctx context.Context, accountID, boardID, actorID domain.ID) error {
	ok, err := s.boards.HasAccess(ctx, accountID, boardID, actorID)
	if err != nil {
		return fmt.Errorf("check board access: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: no access to this board", domain.ErrUnauthorized)
	}
	return nil
}

// columnOnBoard resolves a column and verifies it belongs to the given board.
// The stores cannot make this check themselves: column lookups are account
// scoped, so a valid column of a sibling board would otherwise slip through.
func (s *Service) columnOnBoard(ctx context.Context, accountID, columnID, boardID domain.ID) (*domain.Column, error) {
	col, err := s.boards.FindColumn(ctx, accountID, columnID)
	if err != nil {
		return nil, fmt.Errorf("find column: %w", err)
	}
	if col == nil || col.BoardID != boardID {
		return nil, domain.NewValidationError("column_id", "not a column of this board")
	}
	return col, nil
}

// emitEvent records an activity event after a successful mutation. Event
// writes are best effort: a failure is logged and dropped, never surfaced
// to the caller and never retried.
func (s *Service) emitEvent(ctx context.Context, e domain.Event) {
	if err := s.events.Append(ctx, e); err != nil {
		args := []any{
			"action", e.Action.String(),
			"eventable_id", e.EventableID.String(),
			"error", err,
		}
		if rid := ctxutil.RequestIDFromCtx(ctx); rid != "" {
			args = append(args, "request_id", rid)
		}
		s.log.WarnContext(ctx, "event write dropped", args...)
	}
}

// clampLimit ensures a page size is within [min, max], defaulting from 0 to defaultVal.
func clampLimit(limit, min, max, defaultVal int64) int64 {
	if limit <= 0 {
		return defaultVal
	}
	if limit < min {
		return min
	}
	if limit > max {
		return max
	}
	return limit
}
