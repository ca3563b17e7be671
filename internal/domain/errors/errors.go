package errors

import "errors"

// Kind is a machine-readable failure category exposed to API clients.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindDuplicateEmail    Kind = "duplicate_email"
	KindUserNotFound      Kind = "user_not_found"
	KindIncorrectPassword Kind = "incorrect_password"
	KindTokenMissing      Kind = "token_missing"
	KindTokenInvalid      Kind = "token_invalid"
	KindInternal          Kind = "internal"
)

// Error is a domain failure tagged with its Kind.
type Error struct {
	kind Kind
	msg  string
}

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

// Kind returns the failure category.
func (e *Error) Kind() Kind {
	return e.kind
}

var (
	ErrInvalidInput      = newError(KindInvalidInput, "invalid input")
	ErrAlreadyExists     = newError(KindDuplicateEmail, "email already registered")
	ErrNotFound          = newError(KindUserNotFound, "user not found")
	ErrIncorrectPassword = newError(KindIncorrectPassword, "incorrect password")
	ErrTokenMissing      = newError(KindTokenMissing, "token required")
	ErrTokenInvalid      = newError(KindTokenInvalid, "invalid token")
)

// KindOf reports the Kind carried by err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.kind
	}
	return KindInternal
}
