// Package board serves the board-directory use cases: which boards an actor
// may see and how a board's columns are laid out.
package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

type boardRepo interface {
	FindByName(ctx context.Context, accountID domain.ID, name string) (*domain.Board, error)
	ListAccessible(ctx context.Context, accountID, userID domain.ID) ([]*domain.Board, error)
	HasAccess(ctx context.Context, accountID, boardID, userID domain.ID) (bool, error)
	Columns(ctx context.Context, accountID, boardID domain.ID) ([]*domain.Column, error)
}

// Service provides board directory operations.
type Service struct {
	boards boardRepo
	log    *slog.Logger
}

// NewService creates a new Board service.
func NewService(
	log *slog.Logger,
	boards boardRepo,
) *Service {
	return &Service{
		boards: boards,
		log:    log.With("service", "board"),
	}
}

// resolveBoard looks a board up by name and checks the actor can see it.
func (s *Service) resolveBoard(ctx context.Context, accountID domain.ID, name string, actorID domain.ID) (*domain.Board, error) {
	board, err := s.boards.FindByName(ctx, accountID, domain.NormalizeText(name))
	if err != nil {
		return nil, fmt.Errorf("find board: %w", err)
	}
	if board == nil {
		return nil, fmt.Errorf("%w: board %q", domain.ErrNotFound, name)
	}

	ok, err := s.boards.HasAccess(ctx, accountID, board.ID, actorID)
	if err != nil {
		return nil, fmt.Errorf("check board access: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no access to this board", domain.ErrUnauthorized)
	}

	return board, nil
}
