package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskhive/internal/apperr"
	"taskhive/internal/middleware"
	"taskhive/internal/validation"
)

// currentUserID pulls the authenticated user id set by the JWT middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return 0, false
	}
	return id, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// queryParams flattens the request query into the filter parameter map.
func queryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// respondError translates taxonomy errors into their HTTP shape; anything
// unrecognized is a storage-level failure for this request.
func respondError(c *gin.Context, err error) {
	if e, ok := apperr.As(err); ok {
		body := gin.H{"error": e.Message}
		if len(e.Fields) > 0 {
			body["errors"] = e.Fields
		}
		c.JSON(e.HTTPStatus(), body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func respondValidation(c *gin.Context, errs validation.Errors) {
	e := apperr.Validation(errs)
	c.JSON(e.HTTPStatus(), gin.H{"error": e.Message, "errors": e.Fields})
}

func respondBinding(c *gin.Context, err error) {
	respondValidation(c, validation.FromBindingError(err))
}
