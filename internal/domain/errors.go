package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel domain errors (no external dependencies).
var (
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrNotFound           = errors.New("resource not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
)

// NotFoundError marks a missing entity by name so the transport layer can
// render "<Entity> not found".
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound builds a NotFoundError for the given entity display name.
func NewNotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// ValidationError aggregates every failed constraint of one request so the
// caller can surface all missing-field messages at once.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidation builds a ValidationError from one or more messages.
func NewValidation(messages ...string) error {
	return &ValidationError{Messages: messages}
}

// AsValidation extracts a ValidationError when err carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// ConflictError refuses a delete blocked by dependent children.
type ConflictError struct {
	Entity   string
	Children string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Cannot delete %s with existing %s", e.Entity, e.Children)
}

// NewConflict builds a ConflictError for entity/children display names.
func NewConflict(entity, children string) error {
	return &ConflictError{Entity: entity, Children: children}
}
