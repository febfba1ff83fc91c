package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	// ErrEmptyResponse is returned when the backend answers without a payload.
	ErrEmptyResponse = errors.New("the response is empty")
	// ErrDegeneratePage is returned when a page has no usable logical dimensions.
	ErrDegeneratePage = errors.New("page dimensions must be positive")
	// ErrStaleRequest is returned when a newer request for the same document has
	// started before this one completed.
	ErrStaleRequest = errors.New("superseded by a newer request")
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func (e *BadRequestError) Unwrap() error {
	return ErrBadRequest
}

func NewBadRequestError(message string) error {
	return &BadRequestError{Message: message}
}
