package models

import (
	"errors"
	"strings"
)

var (
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrTenantSuspended    = errors.New("tenant suspended")
	ErrInvalidSignature   = errors.New("preview token signature invalid")
	ErrExpired            = errors.New("preview token expired")
	ErrIdentifierMismatch = errors.New("preview token bound to a different tenant")
	ErrGatewayTimeout     = errors.New("tenant gateway timeout")
	ErrValidation         = errors.New("validation failed")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every failing field, not just the first.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// OrNil returns nil when no field failed so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsPreviewError reports whether err should be shown to the visitor as an
// invalid or expired preview link.
func IsPreviewError(err error) bool {
	return errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrIdentifierMismatch) ||
		errors.Is(err, ErrValidation)
}
