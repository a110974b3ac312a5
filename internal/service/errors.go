package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-lists-api/internal/repository"
)

const (
	MsgValidationFailed = "Validation failed"
	MsgTitleRequired    = "Title is required and must be a string"
	MsgListNameRequired = "List name is required and must be a string"
	MsgInvalidListID    = "Invalid List ID"
	MsgInvalidPage      = "page must be a positive integer no greater than 21474836"
	MsgInvalidLimit     = "limit must be an integer between 1 and 100"
)

const (
	ResourceTodo = "Todo"
	ResourceList = "List"
)

// ValidationError means the client sent malformed, missing or
// referentially invalid input. Details is set for rejected body fields.
type ValidationError struct {
	Message string
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

// NewFieldError reports a required body field that is missing or invalid.
func NewFieldError(details string) *ValidationError {
	return &ValidationError{Message: MsgValidationFailed, Details: details}
}

// NotFoundError means the addressed row does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// DatabaseError wraps a failed query.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// classify turns a repository error into one of the service error types.
func classify(op, resource string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{Resource: resource}
	case errors.Is(err, repository.ErrInvalidListReference):
		return &ValidationError{Message: MsgInvalidListID}
	default:
		return &DatabaseError{Op: op, Err: err}
	}
}
