package apperrors

import (
	"fmt"
	"strings"
)

// ValidationError carries every rule violation found in a payload so the
// client can display all of them at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// NotFoundError means the target item_id matched no stored record.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError means a unique identifier is already taken.
type ConflictError struct {
	message string
}

func (e *ConflictError) Error() string {
	return e.message
}

// ForbiddenError means the session role is insufficient for the operation.
// Its message never reveals whether the target record exists.
type ForbiddenError struct {
	Operation string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("insufficient permissions for %s", e.Operation)
}

func NewConflict(message string) *ConflictError {
	return &ConflictError{message: message}
}
