package card

import (
	"context"
	"fmt"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 4. CloseCard
// ---------------------------------------------------------------------------

// CloseCard resolves a card as done. The column assignment is kept so a
// later reopen lands back where the work was.
func (s *Service) CloseCard(ctx context.Context, input CloseCardInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.resolveCard(ctx, input.AccountID, input.Number)
	if err != nil {
		return nil, err
	}

	if err := s.cards.Close(ctx, input.AccountID, card.ID); err != nil {
		return nil, fmt.Errorf("close card: %w", err)
	}

	closed, err := s.cards.FindByID(ctx, input.AccountID, card.ID)
	if err != nil {
		return nil, fmt.Errorf("reload card: %w", err)
	}
	if closed == nil {
		return nil, fmt.Errorf("%w: card #%d", domain.ErrNotFound, input.Number)
	}

	s.emitEvent(ctx, domain.Event{
		AccountID:     input.AccountID,
		BoardID:       card.BoardID,
		EventableID:   card.ID,
		EventableType: domain.EventableCard,
		CreatorID:     input.ActorID,
		Action:        domain.EventCardClosed,
		Particulars: map[string]any{
			"number": card.Number,
			"title":  card.Title,
		},
	})

	return closed, nil
}

// ---------------------------------------------------------------------------
// 5. ReopenCard
// ---------------------------------------------------------------------------

// ReopenCard brings a closed or postponed card back into play. The card
// always lands in triaged; the pre-close status is not restored.
func (s *Service) ReopenCard(ctx context.Context, input ReopenCardInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.resolveCard(ctx, input.AccountID, input.Number)
	if err != nil {
		return nil, err
	}

	if err := s.cards.Reopen(ctx, input.AccountID, card.ID); err != nil {
		return nil, fmt.Errorf("reopen card: %w", err)
	}

	reopened, err := s.cards.FindByID(ctx, input.AccountID, card.ID)
	if err != nil {
		return nil, fmt.Errorf("reload card: %w", err)
	}
	if reopened == nil {
		return nil, fmt.Errorf("%w: card #%d", domain.ErrNotFound, input.Number)
	}

	s.emitEvent(ctx, domain.Event{
		AccountID:     input.AccountID,
		BoardID:       card.BoardID,
		EventableID:   card.ID,
		EventableType: domain.EventableCard,
		CreatorID:     input.ActorID,
		Action:        domain.EventCardReopened,
		Particulars: map[string]any{
			"number": card.Number,
			"title":  card.Title,
		},
	})

	return reopened, nil
}
