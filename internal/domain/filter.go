package domain

// CardFilter contains the optional predicates for card listings. Every set
// field narrows the result; unset fields are ignored. Status and
// ExcludeStatus may both be supplied and both apply.
//
// Ordering is not part of the filter: listings always come back most
// recently active first.
type CardFilter struct {
	AssigneeID    *ID
	CreatorID     *ID
	BoardID       *ID
	ColumnID      *ID
	Status        []CardStatus
	ExcludeStatus []CardStatus
	IsGolden      *bool
	Limit         *int64
	Offset        *int64
}
