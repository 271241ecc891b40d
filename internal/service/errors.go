package service

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error carries a user-facing message together with its kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func notFound(format string, args ...interface{}) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &Error{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...interface{}) error {
	return &Error{kind: ErrInvalidState, msg: fmt.Sprintf(format, args...)}
}

func invalidInput(format string, args ...interface{}) error {
	return &Error{kind: ErrInvalidInput, msg: fmt.Sprintf(format, args...)}
}

func unauthorized(format string, args ...interface{}) error {
	return &Error{kind: ErrUnauthorized, msg: fmt.Sprintf(format, args...)}
}
