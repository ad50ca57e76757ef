package card

import (
	"context"
	"fmt"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 8. ListMyCards
// ---------------------------------------------------------------------------

// ListMyCards returns the cards assigned to the actor, most recently active
// first. Without an explicit status filter, closed and postponed cards stay
// out.
func (s *Service) ListMyCards(ctx context.Context, input ListMyCardsInput) ([]*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.CardFilter{
		AssigneeID: &input.ActorID,
	}
	applyStatuses(&filter, input.Status)
	applyPaging(&filter, input.Limit, input.Offset)

	cards, err := s.cards.List(ctx, input.AccountID, filter)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return cards, nil
}

// ---------------------------------------------------------------------------
// 9. ListBoardCards
// ---------------------------------------------------------------------------

// ListBoardCards returns a board's cards, most recently active first. The
// board is addressed by name, case-insensitively, and the actor needs access
// to it. Without an explicit status filter, closed and postponed cards stay
// out.
func (s *Service) ListBoardCards(ctx context.Context, input ListBoardCardsInput) ([]*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	board, err := s.boards.FindByName(ctx, input.AccountID, domain.NormalizeText(input.BoardName))
	if err != nil {
		return nil, fmt.Errorf("find board: %w", err)
	}
	if board == nil {
		return nil, fmt.Errorf("%w: board %q", domain.ErrNotFound, input.BoardName)
	}

	if err := s.requireBoardAccess(ctx, input.AccountID, board.ID, input.ActorID); err != nil {
		return nil, err
	}

	filter := domain.CardFilter{
		BoardID:    &board.ID,
		AssigneeID: input.AssigneeID,
		IsGolden:   input.IsGolden,
	}
	applyStatuses(&filter, input.Status)
	applyPaging(&filter, input.Limit, input.Offset)

	cards, err := s.cards.List(ctx, input.AccountID, filter)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return cards, nil
}

// applyStatuses narrows a filter to the requested statuses, or excludes
// terminal ones when the caller asked for nothing in particular.
func applyStatuses(filter *domain.CardFilter, statuses []domain.CardStatus) {
	if len(statuses) > 0 {
		filter.Status = statuses
		return
	}
	filter.ExcludeStatus = domain.TerminalStatuses()
}

func applyPaging(filter *domain.CardFilter, limit, offset int64) {
	clamped := clampLimit(limit, 1, maxPageSize, defaultPageSize)
	filter.Limit = &clamped
	if offset > 0 {
		filter.Offset = &offset
	}
}
