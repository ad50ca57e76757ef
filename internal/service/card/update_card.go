package card

import (
	"context"
	"fmt"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 2. UpdateCard
// ---------------------------------------------------------------------------

// UpdateCard applies a partial update to a card addressed by number. A
// column change is checked against the card's board first; everything else
// goes straight through. Concurrent updates race at last-write-wins
// granularity, there is no version column.
func (s *Service) UpdateCard(ctx context.Context, input UpdateCardInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.resolveCard(ctx, input.AccountID, input.Number)
	if err != nil {
		return nil, err
	}

	particulars := map[string]any{"number": card.Number}

	if input.ColumnID != nil {
		col, colErr := s.columnOnBoard(ctx, input.AccountID, *input.ColumnID, card.BoardID)
		if colErr != nil {
			return nil, colErr
		}
		particulars["column"] = col.Name
	}
	if input.Title != nil {
		particulars["title"] = *input.Title
	}
	if input.Status != nil {
		particulars["status"] = input.Status.String()
	}

	updated, err := s.cards.Update(ctx, input.AccountID, card.ID, domain.UpdateCardParams{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		ColumnID:    input.ColumnID,
		DueOn:       input.DueOn,
	})
	if err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}

	s.emitEvent(ctx, domain.Event{
		AccountID:     input.AccountID,
		BoardID:       card.BoardID,
		EventableID:   card.ID,
		EventableType: domain.EventableCard,
		CreatorID:     input.ActorID,
		Action:        domain.EventCardUpdated,
		Particulars:   particulars,
	})

	return updated, nil
}
