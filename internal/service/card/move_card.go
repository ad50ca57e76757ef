package card

import (
	"context"
	"fmt"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 3. MoveCard
// ---------------------------------------------------------------------------

// MoveCard places a card into a column of its own board. Placing a card is
// what triages it, so the status moves to triaged in the same statement.
func (s *Service) MoveCard(ctx context.Context, input MoveCardInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.resolveCard(ctx, input.AccountID, input.Number)
	if err != nil {
		return nil, err
	}

	col, err := s.columnOnBoard(ctx, input.AccountID, input.ColumnID, card.BoardID)
	if err != nil {
		return nil, err
	}

	status := domain.CardStatusTriaged
	updated, err := s.cards.Update(ctx, input.AccountID, card.ID, domain.UpdateCardParams{
		ColumnID: &input.ColumnID,
		Status:   &status,
	})
	if err != nil {
		return nil, fmt.Errorf("move card: %w", err)
	}

	s.emitEvent(ctx, domain.Event{
		AccountID:     input.AccountID,
		BoardID:       card.BoardID,
		EventableID:   card.ID,
		EventableType: domain.EventableCard,
		CreatorID:     input.ActorID,
		Action:        domain.EventCardColumnChanged,
		Particulars: map[string]any{
			"number": card.Number,
			"column": col.Name,
		},
	})

	return updated, nil
}
