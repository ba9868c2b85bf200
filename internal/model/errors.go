package model

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrParse         = errors.New("parse error")
	ErrMalformedURL  = errors.New("malformed url")
	ErrIO            = errors.New("io error")
	ErrInvalid       = errors.New("invalid bookmark")
)

// Error is a user-facing failure. Error() returns only the message; the kind
// and the underlying cause are reachable through errors.Is and errors.As.
type Error struct {
	Kind    error
	Message string
	Err     error
}

// Errorf builds an Error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
