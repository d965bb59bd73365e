package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a domain error. Callers branch on the kind, never on the
// message text.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindInvalidTransition Kind = "invalid_transition"
	KindDuplicate         Kind = "duplicate_application"
	KindNotAccepting      Kind = "campaign_not_accepting_applications"
	KindCapacityExceeded  Kind = "capacity_exceeded"
	KindNotFound          Kind = "not_found"
	KindProvisioning      Kind = "provisioning_failed"
	KindForbidden         Kind = "forbidden"
)

// Sentinels for errors.Is. Any *Error with the same Kind matches.
var (
	ErrValidation        = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition, Message: "invalid status transition"}
	ErrDuplicate         = &Error{Kind: KindDuplicate, Message: "application already exists"}
	ErrNotAccepting      = &Error{Kind: KindNotAccepting, Message: "campaign is not accepting applications"}
	ErrCapacityExceeded  = &Error{Kind: KindCapacityExceeded, Message: "campaign capacity reached"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrProvisioning      = &Error{Kind: KindProvisioning, Message: "membership provisioning failed"}
	ErrForbidden         = &Error{Kind: KindForbidden, Message: "forbidden"}
)

// Error is the error type returned across the workflow boundary.
type Error struct {
	Kind    Kind
	Message string
	// Fields lists offending inputs, e.g. the ids of unanswered required
	// questions.
	Fields []string
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Fields, ", "))
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a domain error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Kind == t.Kind
}

// NewError creates a domain error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates a domain error carrying cause.
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ValidationError reports invalid input, naming the offending fields.
func ValidationError(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NotFound reports a missing entity.
func NotFound(entity, id string) *Error {
	return NewError(KindNotFound, "%s %s not found", entity, id)
}

// KindOf returns the kind of err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
