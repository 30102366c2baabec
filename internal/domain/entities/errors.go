package entities

import "errors"

// Error kinds. Every domain error unwraps to exactly one of these.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrEmptyResult = errors.New("empty result")
)

// Common errors
var (
	ErrUserNotFound       = NewNotFoundError("user not found")
	ErrCourseNotFound     = NewNotFoundError("course not found")
	ErrInstructorNotFound = NewValidationError("instructor not found")
	ErrNoProgress         = NewEmptyResultError("no progress found for course")
	ErrNoRatings          = NewEmptyResultError("no ratings found for course")
)

type kindError struct {
	kind error
	msg  string
}

func (e kindError) Error() string { return e.msg }

func (e kindError) Unwrap() error { return e.kind }

// NewNotFoundError returns an error that matches ErrNotFound.
func NewNotFoundError(msg string) error {
	return kindError{kind: ErrNotFound, msg: msg}
}

// NewValidationError returns an error that matches ErrValidation.
func NewValidationError(msg string) error {
	return kindError{kind: ErrValidation, msg: msg}
}

// NewEmptyResultError returns an error that matches ErrEmptyResult.
func NewEmptyResultError(msg string) error {
	return kindError{kind: ErrEmptyResult, msg: msg}
}
