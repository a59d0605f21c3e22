// Package apperr defines the error taxonomy shared by validation, repositories
// and handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation Code = "VALIDATION_FAILED"
	CodeNotFound   Code = "NOT_FOUND"
	CodeForbidden  Code = "AUTHORIZATION_DENIED"
	CodeDomain     Code = "DOMAIN_INVARIANT"
	CodeStorage    Code = "STORAGE_FAILURE"
)

// Error is a structured application error. Fields is populated only for
// validation failures and uses dot paths for nested keys (e.g. "data.email").
type Error struct {
	Code    Code                `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
	Err     error               `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to its transport status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeDomain:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validation wraps field-level messages produced by the rule builder.
func Validation(fields map[string][]string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "The given data was invalid.",
		Fields:  fields,
	}
}

func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

// Forbidden deliberately carries no detail about why the gate denied.
func Forbidden() *Error {
	return &Error{Code: CodeForbidden, Message: "This action is unauthorized."}
}

func Domain(message string) *Error {
	return &Error{Code: CodeDomain, Message: message}
}

func Storage(err error) *Error {
	return &Error{Code: CodeStorage, Message: "storage operation failed", Err: err}
}

// As unwraps err into an *Error if possible.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
