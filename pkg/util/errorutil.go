package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Store-level errors are
// translated: missing rows become NotFound, unique and foreign-key constraint
// violations become Conflict.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if de, ok := NewConflict("duplicate value violates a uniqueness constraint", map[string]any{"constraint": pgErr.ConstraintName}).(*DomainError); ok {
				de.Err = err
				return de
			}
		case pgerrcode.ForeignKeyViolation:
			if de, ok := NewConflict("operation violates a referential constraint", map[string]any{"constraint": pgErr.ConstraintName}).(*DomainError); ok {
				de.Err = err
				return de
			}
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

// ErrorMapper renders domain errors to HTTP statuses. In legacy mode, failures
// on routes marked as legacy collapse to 500 with the error message, matching
// the behavior of the system this one replaces.
type ErrorMapper struct {
	legacy bool
}

// NewErrorMapper returns a mapper; legacy enables the over-broad 500 mapping.
func NewErrorMapper(legacy bool) *ErrorMapper {
	return &ErrorMapper{legacy: legacy}
}

// Legacy reports whether legacy mapping is in effect.
func (m *ErrorMapper) Legacy() bool {
	return m != nil && m.legacy
}

// Map resolves an error to a DomainError, collapsing it to Internal when the
// route opted into legacy mapping.
func (m *ErrorMapper) Map(err error, legacyRoute bool) *DomainError {
	de := ToDomainError(err)
	if de == nil {
		return nil
	}
	if m.Legacy() && legacyRoute && de.HTTPStatus != http.StatusInternalServerError {
		return &DomainError{
			Code:       "INTERNAL_ERROR",
			Message:    de.Message,
			HTTPStatus: http.StatusInternalServerError,
			Err:        de,
		}
	}
	return de
}
