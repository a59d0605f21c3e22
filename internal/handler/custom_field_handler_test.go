package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stretchr/testify/assert"

	"taskhive/internal/authz"
	"taskhive/internal/handler"
	"taskhive/internal/repository"
)

func setupFieldRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	gormDB, mock := setupHandlerDB(t)

	fieldHandler := handler.NewCustomFieldHandler(repository.NewCustomFieldRepository(gormDB), authz.AllowAll{})

	r := gin.New()
	r.POST("/custom-field-values", fieldHandler.SetValue)
	return r, mock
}

func selectFieldRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "workspace_id", "key", "applies_to", "label", "type", "required", "options"}).
		AddRow(3, 1, "severity", "tasks", "Severity", "select", true, []byte(`["Low","High"]`))
}

func TestSetValue_OptionOutsideSchemaRejected(t *testing.T) {
	// Arrange
	router, mock := setupFieldRouter(t)

	mock.ExpectQuery(`SELECT .* FROM "custom_fields" WHERE id = .*`).
		WillReturnRows(selectFieldRows())

	// Act: "Medium" is not one of the stored options
	resp := postJSON(router, "/custom-field-values", handler.FieldValueRequest{
		CustomFieldID: 3,
		EntityType:    "tasks",
		EntityID:      9,
		Value:         "Medium",
	})

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var response struct {
		Errors map[string][]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Contains(t, response.Errors, "value")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetValue_ListedOptionAccepted(t *testing.T) {
	// Arrange
	router, mock := setupFieldRouter(t)

	mock.ExpectQuery(`SELECT .* FROM "custom_fields" WHERE id = .*`).
		WillReturnRows(selectFieldRows())

	// Upsert: no existing value row, so a new one is inserted.
	mock.ExpectQuery(`SELECT .* FROM "custom_field_values" WHERE custom_field_id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "custom_field_values"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	// Act
	resp := postJSON(router, "/custom-field-values", handler.FieldValueRequest{
		CustomFieldID: 3,
		EntityType:    "tasks",
		EntityID:      9,
		Value:         "High",
	})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetValue_EntityTypeMustMatchAppliesTo(t *testing.T) {
	// Arrange
	router, mock := setupFieldRouter(t)

	mock.ExpectQuery(`SELECT .* FROM "custom_fields" WHERE id = .*`).
		WillReturnRows(selectFieldRows())

	// Act: the field is declared for tasks
	resp := postJSON(router, "/custom-field-values", handler.FieldValueRequest{
		CustomFieldID: 3,
		EntityType:    "projects",
		EntityID:      9,
		Value:         "High",
	})

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var response struct {
		Errors map[string][]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Contains(t, response.Errors, "entity_type")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetValue_MissingSchemaIsNotFound(t *testing.T) {
	// Arrange
	router, mock := setupFieldRouter(t)

	mock.ExpectQuery(`SELECT .* FROM "custom_fields" WHERE id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act: no schema record means rules cannot be built at all
	resp := postJSON(router, "/custom-field-values", handler.FieldValueRequest{
		CustomFieldID: 99,
		EntityType:    "tasks",
		EntityID:      9,
		Value:         "High",
	})

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
