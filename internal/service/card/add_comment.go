package card

import (
	"context"
	"fmt"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 6. AddComment
// ---------------------------------------------------------------------------

// AddComment attaches a comment to a card addressed by number. The comment
// row, its rich-text body and the card's activity bump land in one
// transaction: either the card shows the comment and sorts to the top of
// activity listings, or nothing changed.
func (s *Service) AddComment(ctx context.Context, input AddCommentInput) (*domain.Comment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.resolveCard(ctx, input.AccountID, input.Number)
	if err != nil {
		return nil, err
	}

	var created *domain.Comment
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.comments.Create(txCtx, input.AccountID, card.ID, input.ActorID, input.Content)
		if createErr != nil {
			return fmt.Errorf("create comment: %w", createErr)
		}

		if touchErr := s.cards.TouchActivity(txCtx, input.AccountID, card.ID, created.CreatedAt); touchErr != nil {
			return fmt.Errorf("touch card activity: %w", touchErr)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.emitEvent(ctx, domain.Event{
		AccountID:     input.AccountID,
		BoardID:       card.BoardID,
		EventableID:   created.ID,
		EventableType: domain.EventableComment,
		CreatorID:     input.ActorID,
		Action:        domain.EventCommentCreated,
		Particulars: map[string]any{
			"card_id":     card.ID.String(),
			"card_number": card.Number,
		},
	})

	return created, nil
}
