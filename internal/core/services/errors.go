package services

import (
	"errors"
	"fmt"

	"github.com/SscSPs/scaffold_erp/internal/apperrors"
	"github.com/SscSPs/scaffold_erp/internal/utils/accounting"
)

var (
	ErrJournalUnbalanced    = fmt.Errorf("%w: total debits must equal total credits", apperrors.ErrValidation)
	ErrJournalMinEntries    = fmt.Errorf("%w: journal needs at least two lines on two accounts", apperrors.ErrValidation)
	ErrJournalAmount        = fmt.Errorf("%w: every line amount must be positive", apperrors.ErrValidation)
	ErrJournalNotEditable   = fmt.Errorf("%w: only draft journals can be changed", apperrors.ErrConflict)
	ErrJournalNotPostable   = fmt.Errorf("%w: only draft journals can be posted", apperrors.ErrConflict)
	ErrJournalNotReversible = fmt.Errorf("%w: only posted journals that are not reversals can be reversed", apperrors.ErrConflict)
	ErrInactiveAccount      = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrInsufficientStock    = fmt.Errorf("%w: insufficient stock", apperrors.ErrConflict)
	ErrInvalidTransition    = fmt.Errorf("%w: invalid status transition", apperrors.ErrConflict)
)

// journalValidationError maps the accounting package errors onto validation errors.
func journalValidationError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, accounting.ErrUnbalanced):
		return fmt.Errorf("%w: %s", ErrJournalUnbalanced, err.Error())
	case errors.Is(err, accounting.ErrTooFewLines), errors.Is(err, accounting.ErrSingleAccount):
		return ErrJournalMinEntries
	case errors.Is(err, accounting.ErrNonPositive):
		return fmt.Errorf("%w: %s", ErrJournalAmount, err.Error())
	default:
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
}

// transitionError reports an action attempted from the wrong status.
func transitionError(entity, action string, status any) error {
	return fmt.Errorf("%w: cannot %s %s in status %v", ErrInvalidTransition, action, entity, status)
}
