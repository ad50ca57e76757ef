package domain

// CardStatus represents the lifecycle state of a card. The stored strings
// match the external schema's status column values.
type CardStatus string

const (
	// CardStatusDrafted is a card that was captured but not yet made
	// visible on a board.
	CardStatusDrafted CardStatus = "drafted"
	// CardStatusPublished is a freshly created card, visible on its board
	// but not yet placed into a column.
	CardStatusPublished CardStatus = "published"
	// CardStatusTriaged is a card placed into a column.
	CardStatusTriaged CardStatus = "triaged"
	// CardStatusClosed is a resolved card. Terminal.
	CardStatusClosed CardStatus = "closed"
	// CardStatusNotNow is a postponed card. Terminal until reopened.
	CardStatusNotNow CardStatus = "not_now"
)

func (s CardStatus) String() string { return string(s) }

func (s CardStatus) IsValid() bool {
	switch s {
	case CardStatusDrafted, CardStatusPublished, CardStatusTriaged, CardStatusClosed, CardStatusNotNow:
		return true
	}
	return false
}

// IsActive reports whether the card counts as open work. Closed and
// postponed cards are excluded from default listings and board counts.
func (s CardStatus) IsActive() bool {
	switch s {
	case CardStatusDrafted, CardStatusPublished, CardStatusTriaged:
		return true
	}
	return false
}

// TerminalStatuses are the statuses excluded from listings by default.
func TerminalStatuses() []CardStatus {
	return []CardStatus{CardStatusClosed, CardStatusNotNow}
}

// EventAction names the kind of mutation an event records.
type EventAction string

const (
	EventCardCreated       EventAction = "card_created"
	EventCardUpdated       EventAction = "card_updated"
	EventCardClosed        EventAction = "card_closed"
	EventCardReopened      EventAction = "card_reopened"
	EventCardColumnChanged EventAction = "card_column_changed"
	EventCardBoardChanged  EventAction = "card_board_changed"
	EventCommentCreated    EventAction = "comment_created"
)

func (a EventAction) String() string { return string(a) }

// EventableType identifies which entity kind an event refers to.
type EventableType string

const (
	EventableCard    EventableType = "Card"
	EventableComment EventableType = "Comment"
)

func (t EventableType) String() string { return string(t) }

// UserRole represents the authorization level of a user within an account.
type UserRole string

const (
	UserRoleOwner  UserRole = "owner"
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
	UserRoleSystem UserRole = "system"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleOwner, UserRoleAdmin, UserRoleMember, UserRoleSystem:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleOwner || r == UserRoleAdmin
}
