package board

import (
	"context"
	"fmt"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// ListBoards returns the boards the actor can see, ordered by name. Each
// board carries its open-card count.
func (s *Service) ListBoards(ctx context.Context, input ListBoardsInput) ([]*domain.Board, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	boards, err := s.boards.ListAccessible(ctx, input.AccountID, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	return boards, nil
}
