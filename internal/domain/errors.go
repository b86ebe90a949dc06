package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindNotFound       ErrorKind = "not_found"
	KindConflict       ErrorKind = "conflict"
	KindUnauthorized   ErrorKind = "unauthorized"
	KindForbidden      ErrorKind = "forbidden"
	KindInfrastructure ErrorKind = "infrastructure"
)

// Error is the single error type returned by entities, repositories and use cases.
// Only the API boundary turns it into a transport response.
type Error struct {
	Kind    ErrorKind
	Message string
	// Fields holds per-field validation messages keyed by json field name.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(parts, "; "))
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// FieldError is a validation error for one field.
func FieldError(field, message string) *Error {
	return NewValidationError("validation failed", map[string]string{field: message})
}

func NewNotFoundError(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func NewConflictError(message string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: cause}
}

func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewInfrastructureError(op string, cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: op + " failed", Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInfrastructure for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInfrastructure
}

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}

// Problems accumulates field messages so entity constructors can report every
// broken rule at once.
type Problems map[string]string

func (p Problems) Add(field, message string) {
	if _, exists := p[field]; !exists {
		p[field] = message
	}
}

func (p Problems) Check(ok bool, field, message string) {
	if !ok {
		p.Add(field, message)
	}
}

func (p Problems) Err() error {
	if len(p) == 0 {
		return nil
	}
	return NewValidationError("validation failed", map[string]string(p))
}
