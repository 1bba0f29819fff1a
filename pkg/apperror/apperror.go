// Package apperror defines the error taxonomy shared by the ledger core and its transports.
package apperror

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure so transports can map it and callers can decide on retries.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindUnavailable
	KindAlreadyExists
	KindFailedPrecondition
	KindPermissionDenied
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindValidation:
		return "VALIDATION_FAILED"
	case KindUnavailable:
		return "UNAVAILABLE"
	case KindAlreadyExists:
		return "ALREADY_EXISTS"
	case KindFailedPrecondition:
		return "FAILED_PRECONDITION"
	case KindPermissionDenied:
		return "PERMISSION_DENIED"
	default:
		return "INTERNAL"
	}
}

// Error carries the kind of failure and the entity it refers to.
type Error struct {
	Kind    Kind
	Entity  string
	ID      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		switch {
		case e.Entity != "" && e.ID != "":
			msg = fmt.Sprintf("%s %s: %s", e.Entity, e.ID, kindPhrase(e.Kind))
		case e.Entity != "":
			msg = fmt.Sprintf("%s: %s", e.Entity, kindPhrase(e.Kind))
		default:
			msg = kindPhrase(e.Kind)
		}
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperror.ErrNotFound) works on
// errors that name a specific entity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Entity == "" && t.ID == "" && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrValidation         = &Error{Kind: KindValidation}
	ErrUnavailable        = &Error{Kind: KindUnavailable}
	ErrAlreadyExists      = &Error{Kind: KindAlreadyExists}
	ErrFailedPrecondition = &Error{Kind: KindFailedPrecondition}
	ErrPermissionDenied   = &Error{Kind: KindPermissionDenied}
)

func kindPhrase(k Kind) string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "concurrent update conflict"
	case KindValidation:
		return "validation failed"
	case KindUnavailable:
		return "storage unavailable"
	case KindAlreadyExists:
		return "already exists"
	case KindFailedPrecondition:
		return "failed precondition"
	case KindPermissionDenied:
		return "access denied"
	default:
		return "internal error"
	}
}

func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

func Conflict(entity, id string, err error) *Error {
	return &Error{Kind: KindConflict, Entity: entity, ID: id, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Err: err}
}

func AlreadyExists(entity, message string) *Error {
	return &Error{Kind: KindAlreadyExists, Entity: entity, Message: message}
}

func FailedPrecondition(entity, id, format string, args ...interface{}) *Error {
	return &Error{Kind: KindFailedPrecondition, Entity: entity, ID: id, Message: fmt.Sprintf(format, args...)}
}

func PermissionDenied(entity, id string) *Error {
	return &Error{Kind: KindPermissionDenied, Entity: entity, ID: id}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsRetryable reports whether the whole operation may be retried by the caller.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindConflict, KindUnavailable:
		return true
	}
	return false
}
