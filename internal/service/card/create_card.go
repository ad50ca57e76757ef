package card

import (
	"context"
	"fmt"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 1. CreateCard
// ---------------------------------------------------------------------------

// CreateCard creates a card on a board the actor can access. New cards start
// published and unplaced; triage happens when someone moves the card into a
// column.
func (s *Service) CreateCard(ctx context.Context, input CreateCardInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	board, err := s.boards.FindByID(ctx, input.AccountID, input.BoardID)
	if err != nil {
		return nil, fmt.Errorf("find board: %w", err)
	}
	if board == nil {
		return nil, fmt.Errorf("%w: board %s", domain.ErrNotFound, input.BoardID)
	}

	if err := s.requireBoardAccess(ctx, input.AccountID, board.ID, input.ActorID); err != nil {
		return nil, err
	}

	created, err := s.cards.Create(ctx, input.AccountID, domain.CreateCardParams{
		BoardID:     input.BoardID,
		CreatorID:   input.ActorID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.CardStatusPublished,
	})
	if err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	s.emitEvent(ctx, domain.Event{
		AccountID:     input.AccountID,
		BoardID:       input.BoardID,
		EventableID:   created.ID,
		EventableType: domain.EventableCard,
		CreatorID:     input.ActorID,
		Action:        domain.EventCardCreated,
		Particulars: map[string]any{
			"number": created.Number,
			"title":  created.Title,
		},
	})

	return created, nil
}
