package board

import (
	"context"
	"fmt"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// ListColumns returns a board's columns in position order. The board is
// addressed by name, case-insensitively.
func (s *Service) ListColumns(ctx context.Context, input ListColumnsInput) ([]*domain.Column, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	board, err := s.resolveBoard(ctx, input.AccountID, input.BoardName, input.ActorID)
	if err != nil {
		return nil, err
	}

	columns, err := s.boards.Columns(ctx, input.AccountID, board.ID)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}

	return columns, nil
}
