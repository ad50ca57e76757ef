package domain

import (
	"fmt"
	"time"
)

// Card is the primary work item. Display fields below the timestamp block
// are denormalized at read time from joins and secondary lookups; the write
// path never persists them.
type Card struct {
	ID           ID
	AccountID    ID
	BoardID      ID
	ColumnID     *ID
	CreatorID    ID
	Number       int64
	Title        string
	Description  *string
	Status       CardStatus
	DueOn        *time.Time
	LastActiveAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	BoardName     *string
	ColumnName    *string
	ColumnColor   *string
	CreatorName   *string
	AssigneeNames []string
	TagTitles     []string
	IsGolden      bool
}

// FormattedNumber returns the display form of the account-scoped number.
func (c *Card) FormattedNumber() string {
	return fmt.Sprintf("#%d", c.Number)
}

// IsActive reports whether the card counts as open work.
func (c *Card) IsActive() bool {
	return c.Status.IsActive()
}

// CreateCardParams carries the caller-supplied fields for a new card.
// The store allocates the ID, the account-scoped number, and the
// activity/creation timestamps.
type CreateCardParams struct {
	BoardID     ID
	CreatorID   ID
	Title       string
	Description *string
	Status      CardStatus
	ColumnID    *ID
}

// UpdateCardParams is a partial update: nil fields keep their stored value.
type UpdateCardParams struct {
	Title       *string
	Description *string
	Status      *CardStatus
	ColumnID    *ID
	DueOn       *time.Time
}

// IsEmpty reports whether the update would change nothing.
func (p UpdateCardParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.ColumnID == nil && p.DueOn == nil
}
