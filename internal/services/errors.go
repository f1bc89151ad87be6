package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service unwraps to exactly one of these.
var (
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Error is a domain error with a message that is safe to show to clients.
// Code optionally narrows the kind to one of the models API error codes.
type Error struct {
	Kind    error
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) withCode(code string) *Error {
	e.Code = code
	return e
}

func (e *Error) withDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

// Message returns the client-facing message of err. Errors that are not
// domain errors get a generic message so internal details never leak.
func Message(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "Internal server error"
}
