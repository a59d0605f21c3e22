package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"taskhive/internal/model"
)

// Operation selects the rule set variant. Update relaxes required fields to
// optional unless the referenced schema field is itself required.
type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
)

var leafValidate = validator.New()

// ValidateFormData checks a response data map against the parent form's field
// list. The caller is responsible for having loaded the form (NotFound when
// the schema record is absent happens before rule expansion).
func ValidateFormData(form *model.Form, data map[string]interface{}, op Operation) Errors {
	errs := Errors{}
	for _, field := range form.Fields {
		value, present := data[field.Name]
		path := "data." + field.Name

		if !present || isEmpty(value) {
			if field.Required && (op == OpCreate || present) {
				errs.Add(path, fmt.Sprintf("The %s field is required.", field.Label))
			}
			continue
		}
		for _, msg := range checkValue(field.Type, field.Options, value) {
			errs.Add(path, msg)
		}
	}
	return errs
}

// ValidateCustomFieldValue checks one value against its CustomField schema.
func ValidateCustomFieldValue(field *model.CustomField, value interface{}, op Operation) Errors {
	errs := Errors{}
	if isEmpty(value) {
		if field.Required && op == OpCreate {
			errs.Add("value", fmt.Sprintf("The %s field is required.", field.Label))
		}
		return errs
	}
	for _, msg := range checkValue(field.Type, field.Options, value) {
		errs.Add("value", msg)
	}
	return errs
}

// checkValue expands one schema field type into its leaf checks. The expansion
// is a pure function of (type, options, value) so create and update share it.
func checkValue(ft model.FieldType, options model.StringSlice, value interface{}) []string {
	switch ft {
	case model.FieldText, model.FieldTextarea:
		if _, ok := value.(string); !ok {
			return []string{"The value must be a string."}
		}
	case model.FieldNumber:
		if !isNumeric(value) {
			return []string{"The value must be a number."}
		}
	case model.FieldDate:
		s, ok := value.(string)
		if !ok || !isDate(s) {
			return []string{"The value must be a valid date."}
		}
	case model.FieldEmail:
		s, ok := value.(string)
		if !ok || leafValidate.Var(s, "email") != nil {
			return []string{"The value must be a valid email address."}
		}
	case model.FieldURL:
		s, ok := value.(string)
		if !ok || leafValidate.Var(s, "url") != nil {
			return []string{"The value must be a valid URL."}
		}
	case model.FieldCheckbox:
		if _, ok := Truthy(value); !ok {
			return []string{"The value must be true or false."}
		}
	case model.FieldSelect:
		s, ok := value.(string)
		if !ok || !options.Contains(s) {
			return []string{"The selected value is invalid."}
		}
	case model.FieldMultiselect:
		selected, err := DecodeMultiselect(value)
		if err != nil {
			return []string{"The value must be a list."}
		}
		for _, s := range selected {
			if !options.Contains(s) {
				return []string{"The selected value is invalid."}
			}
		}
	}
	return nil
}

// DecodeMultiselect accepts either a native list or a JSON-encoded string
// holding one; both decode to the same option slice.
func DecodeMultiselect(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("multiselect items must be strings")
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		var out []string
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil, fmt.Errorf("multiselect string must be a JSON array: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported multiselect value of type %T", value)
	}
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

func isNumeric(value interface{}) bool {
	switch v := value.(type) {
	case float64, float32, int, int64:
		return true
	case string:
		_, err := strconv.ParseFloat(v, 64)
		return err == nil
	default:
		return false
	}
}

func isDate(s string) bool {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
