package domain

import "time"

// Comment is a note on a card. The content lives in a separate rich-text
// body table mirroring the external schema; Content here is the plain text
// of that body.
type Comment struct {
	ID        ID
	AccountID ID
	CardID    ID
	CreatorID ID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	CreatorName *string
}
