package common

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNoFields       = errors.New("no updatable fields provided")
	ErrUnauthorized   = errors.New("unauthorized access")
)

// StatusError is an error that declares the HTTP status and the message the caller should see.
// The wrapped error is kept for logging.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func NewStatusError(status int, message string, err error) *StatusError {
	return &StatusError{Status: status, Message: message, Err: err}
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
