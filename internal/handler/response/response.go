// Package response writes the service's JSON envelopes.
package response

import (
	"errors"
	"net/http"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/authz"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/gin-gonic/gin"
)

// Envelope is the body of every response.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Success writes 200 with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes 201 with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// NoContent writes 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes 200 with one page of items.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	c.JSON(http.StatusOK, Envelope{
		Success:    true,
		Data:       items,
		Pagination: &Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages},
	})
}

// BadRequest writes 400 for malformed input.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// Unauthorized writes 401.
func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Error maps err to its status code. Errors without a domain kind are
// reported as 500 without their message.
func Error(c *gin.Context, err error) {
	status, code := Classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal server error"
	}
	abort(c, status, code, message)
}

// Classify returns the HTTP status and error code for err.
func Classify(err error) (int, string) {
	if errors.Is(err, authz.ErrInvalidCredential) {
		return http.StatusUnauthorized, "UNAUTHORIZED"
	}
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case domain.KindConflict:
		return http.StatusConflict, "CONFLICT"
	case domain.KindInvalidState:
		return http.StatusUnprocessableEntity, "INVALID_STATE"
	case domain.KindInvalidInput:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case domain.KindAccessDenied:
		return http.StatusForbidden, "FORBIDDEN"
	case domain.KindUpstreamUnavailable:
		return http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: &ErrorBody{Code: code, Message: message}})
}
