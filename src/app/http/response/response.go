// Package response writes the API envelopes: {"data": ...} on success and
// {"error": {...}} on failure.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"candlepin/src/core/domain"
)

// Error codes carried in ErrorDetail.Code.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// Success wraps a payload.
type Success struct {
	Data any `json:"data"`
}

// Error wraps an ErrorDetail.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Paginated is the envelope of a list request that asked for a page.
type Paginated struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Success{Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Success{Data: data})
}

// Page sends one page of total items.
func Page(c *gin.Context, data any, total, page, perPage int) {
	pages := 1
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	c.JSON(http.StatusOK, Paginated{
		Data:       data,
		Total:      int64(total),
		Page:       page,
		PerPage:    perPage,
		TotalPages: pages,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, status int, detail ErrorDetail) {
	c.JSON(status, Error{Error: detail})
}

func BadRequest(c *gin.Context, message, requestID string) {
	writeError(c, http.StatusBadRequest, ErrorDetail{Code: CodeBadRequest, Message: message, RequestID: requestID})
}

func ValidationError(c *gin.Context, field, message, requestID string) {
	writeError(c, http.StatusBadRequest, ErrorDetail{Code: CodeValidation, Message: message, Field: field, RequestID: requestID})
}

func NotFound(c *gin.Context, message, requestID string) {
	writeError(c, http.StatusNotFound, ErrorDetail{Code: CodeNotFound, Message: message, RequestID: requestID})
}

func Conflict(c *gin.Context, message, requestID string) {
	writeError(c, http.StatusConflict, ErrorDetail{Code: CodeConflict, Message: message, RequestID: requestID})
}

func Forbidden(c *gin.Context, message, requestID string) {
	writeError(c, http.StatusForbidden, ErrorDetail{Code: CodeForbidden, Message: message, RequestID: requestID})
}

func Unauthorized(c *gin.Context, message, requestID string) {
	writeError(c, http.StatusUnauthorized, ErrorDetail{Code: CodeUnauthorized, Message: message, RequestID: requestID})
}

func TooManyRequests(c *gin.Context, requestID string) {
	writeError(c, http.StatusTooManyRequests, ErrorDetail{Code: CodeRateLimited, Message: "Too many requests", RequestID: requestID})
}

// InternalError hides the cause from the client.
func InternalError(c *gin.Context, requestID string) {
	writeError(c, http.StatusInternalServerError, ErrorDetail{Code: CodeInternal, Message: "An unexpected error occurred", RequestID: requestID})
}

// errorMapping pairs a domain error class with its HTTP status and code.
var errorMapping = []struct {
	match  func(error) bool
	status int
	code   string
}{
	{domain.IsNotFound, http.StatusNotFound, CodeNotFound},
	{domain.IsConflict, http.StatusConflict, CodeConflict},
	{domain.IsAlreadyExists, http.StatusConflict, CodeConflict},
	{domain.IsForbidden, http.StatusForbidden, CodeForbidden},
	{domain.IsUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
}

// FromDomainError maps err onto the matching status. Anything that is not a
// domain error becomes a 500.
func FromDomainError(c *gin.Context, err error, requestID string) {
	if domain.IsValidationError(err) {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			ValidationError(c, domainErr.Field, domainErr.Message, requestID)
		} else {
			BadRequest(c, err.Error(), requestID)
		}
		return
	}
	for _, m := range errorMapping {
		if m.match(err) {
			writeError(c, m.status, ErrorDetail{Code: m.code, Message: err.Error(), RequestID: requestID})
			return
		}
	}
	InternalError(c, requestID)
}
