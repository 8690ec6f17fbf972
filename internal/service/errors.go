package service

import (
	"errors"
	"fmt"

	"github.com/PierrickDossin/AymanProject/internal/repository"
)

// Error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound     = repository.ErrNotFound
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)

// kindError carries a client-facing message and unwraps to its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func notFound(entity string) error {
	return &kindError{kind: ErrNotFound, msg: entity + " not found"}
}

func conflict(format string, args ...any) error {
	return &kindError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func unauthorized(msg string) error {
	return &kindError{kind: ErrUnauthorized, msg: msg}
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []FieldError
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrValidation.Error()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, rule, message string) error {
	return &ValidationError{
		Message: message,
		Details: []FieldError{{Field: field, Rule: rule, Message: message}},
	}
}

// lookup turns a repository miss into a NotFound for entity and passes
// anything else through wrapped.
func lookup(err error, entity string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(entity)
	}
	return fmt.Errorf("load %s: %w", entity, err)
}
