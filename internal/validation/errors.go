// Package validation builds and applies per-field constraint sets. Static
// request shapes are covered by binding tags; the functions here cover rules
// that are computed at request time (schema-derived fields, calendar rules,
// cross-record invariants).
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field path (dot notation for nested keys) to its ordered
// messages. An empty map means valid.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Merge(other Errors) {
	for field, messages := range other {
		e[field] = append(e[field], messages...)
	}
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

// FromBindingError converts a gin binding failure into field messages.
func FromBindingError(err error) Errors {
	out := Errors{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				out.Add(field, fmt.Sprintf("The %s field is required.", field))
			case "oneof":
				out.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
			case "email":
				out.Add(field, fmt.Sprintf("The %s must be a valid email address.", field))
			case "url":
				out.Add(field, fmt.Sprintf("The %s must be a valid URL.", field))
			case "min":
				out.Add(field, fmt.Sprintf("The %s must be at least %s.", field, fe.Param()))
			case "max":
				out.Add(field, fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param()))
			case "gtfield":
				out.Add(field, fmt.Sprintf("The %s must be after %s.", field, strings.ToLower(fe.Param())))
			default:
				out.Add(field, fmt.Sprintf("The %s field is invalid.", field))
			}
		}
		return out
	}
	out.Add("request", "The request body is malformed.")
	return out
}
