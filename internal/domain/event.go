package domain

import "time"

// Event is an immutable audit record of a mutation, written best-effort for
// activity-timeline purposes. Particulars carries contextual details as a
// flat JSON object (card number, title, column name and so on).
type Event struct {
	ID            ID
	AccountID     ID
	BoardID       ID
	EventableID   ID
	EventableType EventableType
	CreatorID     ID
	Action        EventAction
	Particulars   map[string]any
	CreatedAt     time.Time
}
