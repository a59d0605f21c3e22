package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"taskhive/internal/handler"
	"taskhive/internal/middleware"
	"taskhive/internal/repository"
	"taskhive/internal/service/wikirev"
)

func setupWikiRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	gormDB, mock := setupHandlerDB(t)

	wikiHandler := handler.NewWikiHandler(repository.NewWikiRepository(gormDB, wikirev.NewService()))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uint(42))
	})
	r.POST("/wikis", wikiHandler.Create)
	return r, mock
}

func uintPtr(v uint) *uint { return &v }

func TestWikiCreate_MissingParentRejected(t *testing.T) {
	// Arrange
	router, mock := setupWikiRouter(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "wikis" WHERE workspace_id = .* AND slug = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .* FROM "wikis" WHERE id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act: the referenced parent page does not exist
	resp := postJSON(router, "/wikis", handler.WikiCreateRequest{
		WorkspaceID: 1,
		Title:       "Onboarding",
		Slug:        "onboarding",
		ParentID:    uintPtr(99),
	})

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var response struct {
		Errors map[string][]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Contains(t, response.Errors, "parent_id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWikiCreate_ParentInOtherWorkspaceRejected(t *testing.T) {
	// Arrange
	router, mock := setupWikiRouter(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "wikis" WHERE workspace_id = .* AND slug = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .* FROM "wikis" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "title", "slug"}).
			AddRow(5, 2, "Guide", "guide"))

	// Act
	resp := postJSON(router, "/wikis", handler.WikiCreateRequest{
		WorkspaceID: 1,
		Title:       "Onboarding",
		Slug:        "onboarding",
		ParentID:    uintPtr(5),
	})

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var response struct {
		Errors map[string][]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Contains(t, response.Errors, "parent_id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWikiCreate_WithValidParent(t *testing.T) {
	// Arrange
	router, mock := setupWikiRouter(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "wikis" WHERE workspace_id = .* AND slug = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .* FROM "wikis" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "title", "slug"}).
			AddRow(5, 1, "Guide", "guide"))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "wikis"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`INSERT INTO "wiki_revisions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	// Act
	resp := postJSON(router, "/wikis", handler.WikiCreateRequest{
		WorkspaceID: 1,
		Title:       "Onboarding",
		Slug:        "onboarding",
		Content:     "Welcome aboard.",
		ParentID:    uintPtr(5),
	})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
