package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/src/core/domain"
)

func TestFromDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		field  string
	}{
		{"not found", domain.NewNotFoundError("owner", "acme"), http.StatusNotFound, "NOT_FOUND", ""},
		{"validation", domain.NewValidationError("key", "bad"), http.StatusBadRequest, "VALIDATION_ERROR", "key"},
		{"wrapped validation", fmt.Errorf("create: %w", domain.NewValidationError("name", "empty")), http.StatusBadRequest, "VALIDATION_ERROR", "name"},
		{"exists", domain.NewAlreadyExistsError("owner", "acme"), http.StatusConflict, "CONFLICT", ""},
		{"conflict", domain.NewConflictError("busy"), http.StatusConflict, "CONFLICT", ""},
		{"forbidden", domain.NewForbiddenError("no"), http.StatusForbidden, "FORBIDDEN", ""},
		{"unauthorized", domain.NewUnauthorizedError("who"), http.StatusUnauthorized, "UNAUTHORIZED", ""},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromDomainError(c, tt.err, "req-1")

			assert.Equal(t, tt.status, w.Code)
			var body Error
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.field, body.Error.Field)
			assert.Equal(t, "req-1", body.Error.RequestID)
		})
	}
}

func TestPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Page(c, []int{4, 5, 6}, 25, 2, 10)

	var body Paginated
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(25), body.Total)
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, 2, body.Page)
}
