package domain

import "time"

// Board is a named collection of cards. When AllAccess is set every user in
// the account may read and write its cards; otherwise access is gated by
// per-user grants.
type Board struct {
	ID        ID
	AccountID ID
	CreatorID ID
	Name      string
	AllAccess bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// CardCount is the number of open cards, filled at read time.
	CardCount *int64
}

// IsPublic reports whether every account user can access the board.
func (b *Board) IsPublic() bool {
	return b.AllAccess
}

// Column is an ordered lane within a board.
type Column struct {
	ID        ID
	AccountID ID
	BoardID   ID
	Name      string
	Color     string
	Position  int32
}
