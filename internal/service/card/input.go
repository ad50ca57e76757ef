package card

import (
	"strings"
	"time"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	maxTitleLen       = 255
	maxDescriptionLen = 10000
	maxContentLen     = 10000
)

// CreateCardInput holds the parameters for creating a card.
type CreateCardInput struct {
	AccountID   domain.ID
	ActorID     domain.ID
	BoardID     domain.ID
	Title       string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i *CreateCardInput) Validate() error {
	var errs []domain.FieldError

	if i.AccountID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}
	if i.ActorID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if i.BoardID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "board_id", Message: "required"})
	}
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long (max 255)"})
	}
	if i.Description != nil && len(*i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 10000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateCardInput holds the parameters for a partial card update. Nil fields
// keep their stored value.
type UpdateCardInput struct {
	AccountID   domain.ID
	ActorID     domain.ID
	Number      int64
	Title       *string
	Description *string
	Status      *domain.CardStatus
	ColumnID    *domain.ID
	DueOn       *time.Time
}

// Validate checks all fields and collects all errors.
func (i *UpdateCardInput) Validate() error {
	errs := requireRef(i.AccountID, i.ActorID, i.Number)

	if i.Title != nil {
		if strings.TrimSpace(*i.Title) == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		} else if len(*i.Title) > maxTitleLen {
			errs = append(errs, domain.FieldError{Field: "title", Message: "too long (max 255)"})
		}
	}
	if i.Description != nil && len(*i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 10000)"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}
	if i.ColumnID != nil && i.ColumnID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "column_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// MoveCardInput holds the parameters for moving a card into a column.
type MoveCardInput struct {
	AccountID domain.ID
	ActorID   domain.ID
	Number    int64
	ColumnID  domain.ID
}

// Validate checks all fields and collects all errors.
func (i *MoveCardInput) Validate() error {
	errs := requireRef(i.AccountID, i.ActorID, i.Number)

	if i.ColumnID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "column_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CloseCardInput identifies the card to close.
type CloseCardInput struct {
	AccountID domain.ID
	ActorID   domain.ID
	Number    int64
}

// Validate checks all fields and collects all errors.
func (i *CloseCardInput) Validate() error {
	if errs := requireRef(i.AccountID, i.ActorID, i.Number); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReopenCardInput identifies the card to reopen.
type ReopenCardInput struct {
	AccountID domain.ID
	ActorID   domain.ID
	Number    int64
}

// Validate checks all fields and collects all errors.
func (i *ReopenCardInput) Validate() error {
	if errs := requireRef(i.AccountID, i.ActorID, i.Number); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddCommentInput holds the parameters for commenting on a card.
type AddCommentInput struct {
	AccountID domain.ID
	ActorID   domain.ID
	Number    int64
	Content   string
}

// Validate checks all fields and collects all errors. Whitespace-only
// content is rejected here, before the card is even resolved.
func (i *AddCommentInput) Validate() error {
	errs := requireRef(i.AccountID, i.ActorID, i.Number)

	if strings.TrimSpace(i.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if len(i.Content) > maxContentLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long (max 10000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GetCardInput identifies the card to fetch. CommentLimit 0 means the
// store default.
type GetCardInput struct {
	AccountID    domain.ID
	ActorID      domain.ID
	Number       int64
	CommentLimit int64
}

// Validate checks all fields and collects all errors.
func (i *GetCardInput) Validate() error {
	if errs := requireRef(i.AccountID, i.ActorID, i.Number); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListMyCardsInput holds the parameters for listing the actor's assigned
// cards. An empty Status list means open work only.
type ListMyCardsInput struct {
	AccountID domain.ID
	ActorID   domain.ID
	Status    []domain.CardStatus
	Limit     int64
	Offset    int64
}

// Validate checks all fields and collects all errors.
func (i *ListMyCardsInput) Validate() error {
	errs := requireActor(i.AccountID, i.ActorID)
	errs = append(errs, validateStatuses(i.Status)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListBoardCardsInput holds the parameters for listing a board's cards.
// The board is addressed by name, case-insensitively. An empty Status list
// means open work only.
type ListBoardCardsInput struct {
	AccountID  domain.ID
	ActorID    domain.ID
	BoardName  string
	Status     []domain.CardStatus
	AssigneeID *domain.ID
	IsGolden   *bool
	Limit      int64
	Offset     int64
}

// Validate checks all fields and collects all errors.
func (i *ListBoardCardsInput) Validate() error {
	errs := requireActor(i.AccountID, i.ActorID)

	if strings.TrimSpace(i.BoardName) == "" {
		errs = append(errs, domain.FieldError{Field: "board_name", Message: "required"})
	}
	errs = append(errs, validateStatuses(i.Status)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// requireActor validates the account/actor pair every input carries.
func requireActor(accountID, actorID domain.ID) []domain.FieldError {
	var errs []domain.FieldError
	if accountID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}
	if actorID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	return errs
}

// requireRef validates the account/actor pair plus a card number reference.
func requireRef(accountID, actorID domain.ID, number int64) []domain.FieldError {
	errs := requireActor(accountID, actorID)
	if number <= 0 {
		errs = append(errs, domain.FieldError{Field: "number", Message: "must be positive"})
	}
	return errs
}

func validateStatuses(statuses []domain.CardStatus) []domain.FieldError {
	var errs []domain.FieldError
	for _, st := range statuses {
		if !st.IsValid() {
			errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value: " + st.String()})
		}
	}
	return errs
}
