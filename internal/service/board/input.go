package board

import (
	"strings"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// ListBoardsInput identifies whose board directory to list.
type ListBoardsInput struct {
	AccountID domain.ID
	ActorID   domain.ID
}

// Validate checks all fields and collects all errors.
func (i ListBoardsInput) Validate() error {
	var errs []domain.FieldError
	if i.AccountID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}
	if i.ActorID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListColumnsInput names the board whose columns to list.
type ListColumnsInput struct {
	AccountID domain.ID
	ActorID   domain.ID
	BoardName string
}

// Validate checks all fields and collects all errors.
func (i ListColumnsInput) Validate() error {
	var errs []domain.FieldError
	if i.AccountID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "required"})
	}
	if i.ActorID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if strings.TrimSpace(i.BoardName) == "" {
		errs = append(errs, domain.FieldError{Field: "board_name", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
