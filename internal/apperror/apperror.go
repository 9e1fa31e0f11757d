// Package apperror defines the error kinds the API distinguishes.
//
// Every failure a client can act on is one of three kinds:
//
//	ErrValidation → the request data breaks a rule          (HTTP 400)
//	ErrNotFound   → a referenced user or article is absent  (HTTP 404)
//	ErrConflict   → a uniqueness rule would be broken       (HTTP 409)
//
// Anything that is not an *AppError is treated as an internal failure (HTTP 500).
// Handlers check the kind with errors.Is and read the message with errors.As.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
)

// FieldError is one field-level validation failure, e.g.
//
//	{"field": "content", "error": "must be at least 10 characters"}
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type AppError struct {
	Err     error        // sentinel kind
	Message string       // client-facing message
	Fields  []FieldError // optional: several field errors at once
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound builds the "<Resource> not found" error, e.g. NotFound("User").
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// ValidationFailed reports a single broken rule, e.g. "Name cannot be empty".
func ValidationFailed(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
	}
}

// Invalid groups several field errors into one validation error.
func Invalid(fields []FieldError) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "Validation failed",
		Fields:  fields,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}
