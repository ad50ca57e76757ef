package card

import (
	"context"
	"fmt"
)

// ---------------------------------------------------------------------------
// 7. GetCardDetails
// ---------------------------------------------------------------------------

// GetCardDetails returns one card with its most recent comments, newest
// first.
func (s *Service) GetCardDetails(ctx context.Context, input GetCardInput) (*CardDetails, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.resolveCard(ctx, input.AccountID, input.Number)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListForCard(ctx, input.AccountID, card.ID, input.CommentLimit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return &CardDetails{
		Card:     card,
		Comments: comments,
	}, nil
}
