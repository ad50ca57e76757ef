package card

import "github.com/heartmarshall/cardtrack-backend/internal/domain"

// CardDetails bundles a card with its most recent comments.
type CardDetails struct {
	Card     *domain.Card
	Comments []*domain.Comment
}
