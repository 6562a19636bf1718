package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNotFound indicates that a referenced entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that a client-supplied value is outside the
	// accepted domain (bad enum, non-integer, missing field, wrong type).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternalError indicates an internal server error.
	ErrInternalError = errors.New("internal error")
)

// ValidationError describes a rejected input value. The field and message are
// for logs; clients only ever see the generic "Bad Request" wording.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError carries the exact client-facing wording for a missing entity.
// The wording differs by entity: several distinct strings grew organically in
// the original API contract and are preserved verbatim for compatibility.
type NotFoundError struct {
	Message string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.Message
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewTopicNotFound reports a missing topic slug, naming the slug.
func NewTopicNotFound(slug string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("%s not found", slug)}
}

// NewArticleNotFound reports a missing article, naming the id.
func NewArticleNotFound(id int) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Article %d Is Not In The Database", id)}
}

// NewCommentNotFound reports a missing comment, naming the id.
func NewCommentNotFound(id int) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("%d Not Found In The Database", id)}
}

// NewUsernameNotFound reports a missing user.
func NewUsernameNotFound() *NotFoundError {
	return &NotFoundError{Message: "Username Not Found"}
}

// NewGenericNotFound reports a missing entity with the generic wording used by
// single-resource lookups.
func NewGenericNotFound() *NotFoundError {
	return &NotFoundError{Message: "Not Found In The Database"}
}
