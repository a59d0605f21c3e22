package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskhive/internal/model"
	"taskhive/internal/validation"
)

func priorityForm() *model.Form {
	return &model.Form{
		ID:          1,
		WorkspaceID: 1,
		Title:       "Intake",
		Fields: []model.FormField{
			{FormID: 1, Name: "priority", Label: "Priority", Type: model.FieldSelect,
				Required: true, Options: model.StringSlice{"Low", "High"}},
			{FormID: 1, Name: "notes", Label: "Notes", Type: model.FieldText},
		},
	}
}

func TestValidateFormData_SelectOption(t *testing.T) {
	form := priorityForm()

	// An option outside the schema list fails.
	errs := validation.ValidateFormData(form, map[string]interface{}{"priority": "Medium"}, validation.OpCreate)
	assert.False(t, errs.Empty())
	assert.Contains(t, errs, "data.priority")

	// A listed option passes.
	errs = validation.ValidateFormData(form, map[string]interface{}{"priority": "High"}, validation.OpCreate)
	assert.True(t, errs.Empty())
}

func TestValidateFormData_RequiredOnCreate(t *testing.T) {
	form := priorityForm()

	errs := validation.ValidateFormData(form, map[string]interface{}{"notes": "hello"}, validation.OpCreate)
	assert.Contains(t, errs, "data.priority")
	assert.Equal(t, []string{"The Priority field is required."}, errs["data.priority"])
}

func TestValidateFormData_UpdateRelaxesAbsentFields(t *testing.T) {
	form := priorityForm()

	// Absent on update: no error even though the field is required.
	errs := validation.ValidateFormData(form, map[string]interface{}{"notes": "edited"}, validation.OpUpdate)
	assert.True(t, errs.Empty())

	// Present but empty on update: still rejected for a required field.
	errs = validation.ValidateFormData(form, map[string]interface{}{"priority": ""}, validation.OpUpdate)
	assert.Contains(t, errs, "data.priority")
}

func TestValidateFormData_TypeChecks(t *testing.T) {
	form := &model.Form{
		Fields: []model.FormField{
			{Name: "count", Label: "Count", Type: model.FieldNumber},
			{Name: "when", Label: "When", Type: model.FieldDate},
			{Name: "contact", Label: "Contact", Type: model.FieldEmail},
			{Name: "site", Label: "Site", Type: model.FieldURL},
			{Name: "agreed", Label: "Agreed", Type: model.FieldCheckbox},
		},
	}

	ok := map[string]interface{}{
		"count":   float64(3),
		"when":    "2026-02-14",
		"contact": "dev@example.com",
		"site":    "https://example.com",
		"agreed":  "1",
	}
	assert.True(t, validation.ValidateFormData(form, ok, validation.OpCreate).Empty())

	bad := map[string]interface{}{
		"count":   "three",
		"when":    "next tuesday",
		"contact": "not-an-email",
		"site":    "nope",
		"agreed":  "maybe",
	}
	errs := validation.ValidateFormData(form, bad, validation.OpCreate)
	for _, field := range []string{"data.count", "data.when", "data.contact", "data.site", "data.agreed"} {
		assert.Contains(t, errs, field)
	}
}

func TestValidateCustomFieldValue_Multiselect(t *testing.T) {
	field := &model.CustomField{
		Label:   "Tags",
		Type:    model.FieldMultiselect,
		Options: model.StringSlice{"red", "green", "blue"},
	}

	// Native list.
	errs := validation.ValidateCustomFieldValue(field, []interface{}{"red", "blue"}, validation.OpCreate)
	assert.True(t, errs.Empty())

	// JSON-encoded string form decodes to the same selection.
	errs = validation.ValidateCustomFieldValue(field, `["red","green"]`, validation.OpCreate)
	assert.True(t, errs.Empty())

	// Unknown option rejected in either form.
	errs = validation.ValidateCustomFieldValue(field, `["red","purple"]`, validation.OpCreate)
	assert.Contains(t, errs, "value")

	// Not a list at all.
	errs = validation.ValidateCustomFieldValue(field, float64(7), validation.OpCreate)
	assert.Contains(t, errs, "value")
}

func TestValidateCustomFieldValue_Required(t *testing.T) {
	field := &model.CustomField{Label: "Severity", Type: model.FieldText, Required: true}

	errs := validation.ValidateCustomFieldValue(field, nil, validation.OpCreate)
	assert.Contains(t, errs, "value")

	// Empty values are tolerated on update.
	errs = validation.ValidateCustomFieldValue(field, "", validation.OpUpdate)
	assert.True(t, errs.Empty())
}

func TestDecodeMultiselect(t *testing.T) {
	got, err := validation.DecodeMultiselect([]string{"a", "b"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = validation.DecodeMultiselect(`["a","b"]`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = validation.DecodeMultiselect("not json")
	assert.Error(t, err)

	_, err = validation.DecodeMultiselect([]interface{}{"a", 2})
	assert.Error(t, err)
}
