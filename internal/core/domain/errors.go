package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error. The HTTP layer maps each kind to one status
// code and one message type; nothing else inspects error text.
type Kind uint8

const (
	KindInfrastructure Kind = iota
	KindBusiness
	KindNotFound
	KindValidation
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindBusiness:
		return "business"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "infrastructure"
	}
}

// Sentinels allow errors.Is(err, domain.ErrNotFound) regardless of message.
var (
	ErrBusiness           = &Error{Kind: KindBusiness, Message: "business rule violated"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrValidation         = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "access forbidden"}
)

// Error is the single error type returned by services and repositories for
// conditions a caller is expected to handle.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for KindValidation.
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so sentinels compare by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewBusinessError reports a user-correctable rule violation.
func NewBusinessError(format string, args ...any) *Error {
	return &Error{Kind: KindBusiness, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports a missing entity by name and identity.
func NewNotFoundError(entity string, id any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with id %v not found", entity, id)}
}

// NewValidationError collects field-level failures.
func NewValidationError(fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInfrastructure when there is none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInfrastructure
}
