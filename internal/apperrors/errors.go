// Package apperrors defines the error taxonomy shared by the stores and the
// borrowing engine. Handlers discriminate on these types with errors.As and
// map each kind to an HTTP status; message text is never inspected.
package apperrors

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError reports an identifier that does not resolve to an entity.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// QuotaExceededError reports a borrow that would push a member past the
// active-loan limit. Current and Requested are kept for diagnostics.
type QuotaExceededError struct {
	Limit     int
	Current   int64
	Requested int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("member cannot borrow more than %d books (current: %d, requesting: %d)",
		e.Limit, e.Current, e.Requested)
}

// StockUnavailableError names every requested book that has no copies left.
type StockUnavailableError struct {
	Titles []string
}

func (e *StockUnavailableError) Error() string {
	return "books not available (out of stock): " + strings.Join(e.Titles, ", ")
}

// InvalidStateError reports an operation that is not legal in the entity's
// current state, e.g. returning an already-returned borrowing.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

func NewInvalidState(message string) *InvalidStateError {
	return &InvalidStateError{Message: message}
}

// ConflictError reports a uniqueness violation, e.g. a duplicate member email.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}
