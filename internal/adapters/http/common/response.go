// Package common holds shared types for the HTTP layer.
//
// A separate package avoids import cycles between handlers and the main
// http package.
package common

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/mzurek/tripdesk/internal/domain/errors"
)

// ============================================
// Standard API Response Format
// ============================================

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError is the error payload.
type APIError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Fields     []FieldError           `json:"fields,omitempty"`
	RetryAfter int                    `json:"retry_after,omitempty"`
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ============================================
// Error Codes
// ============================================

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeBusinessRule    = "BUSINESS_RULE_VIOLATION"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
)

// ============================================
// Request ID
// ============================================

// RequestIDKey is the gin context key the request ID middleware stores
// the ID under.
const RequestIDKey = "request_id"

// GetRequestID returns the request ID stored in the gin context.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if strID, ok := id.(string); ok {
			return strID
		}
	}
	return ""
}

// ============================================
// Response Helpers
// ============================================

// Success sends a successful response.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success:   true,
		Data:      data,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC(),
	})
}

// Error sends an error response.
func Error(c *gin.Context, statusCode int, apiError *APIError) {
	c.JSON(statusCode, APIResponse{
		Success:   false,
		Error:     apiError,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC(),
	})
}

// ValidationErrorResponse sends a 400 with per-field details.
func ValidationErrorResponse(c *gin.Context, fields []FieldError) {
	Error(c, http.StatusBadRequest, &APIError{
		Code:    ErrCodeValidation,
		Message: "Request validation failed",
		Fields:  fields,
	})
}

// NotFoundResponse sends a 404 for the named resource.
func NotFoundResponse(c *gin.Context, resource string) {
	Error(c, http.StatusNotFound, &APIError{
		Code:    ErrCodeNotFound,
		Message: resource + " not found",
		Details: map[string]interface{}{
			"resource": resource,
		},
	})
}

// BadRequestResponse sends a 400.
func BadRequestResponse(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
	})
}

// ConflictResponse sends a 409.
func ConflictResponse(c *gin.Context, message string) {
	Error(c, http.StatusConflict, &APIError{
		Code:    ErrCodeConflict,
		Message: message,
	})
}

// TooManyRequestsResponse sends a 429 for rate limiting.
func TooManyRequestsResponse(c *gin.Context, retryAfter int) {
	Error(c, http.StatusTooManyRequests, &APIError{
		Code:       ErrCodeTooManyRequests,
		Message:    "Too many requests, please try again later",
		RetryAfter: retryAfter,
	})
}

// InternalErrorResponse sends a 500.
func InternalErrorResponse(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, &APIError{
		Code:    ErrCodeInternal,
		Message: message,
	})
}

// ============================================
// Domain Error to HTTP Error Mapper
// ============================================

// HandleDomainError maps a domain error onto an HTTP response.
//
// Status codes:
//   - validation errors and a duplicate PESEL: 400 (the payload itself
//     names a taken identity)
//   - capacity exceeded and duplicate registration: 409 (the payload is
//     fine, the current state of the trip conflicts with it)
//   - not-found sentinels: 404
//   - everything else: 500
func HandleDomainError(c *gin.Context, err error) {
	if domainErrors.IsValidationError(err) {
		ValidationErrorResponse(c, validationFields(err))
		return
	}

	if errors.Is(err, domainErrors.ErrInvalidPesel) {
		ValidationErrorResponse(c, []FieldError{
			{Field: "pesel", Message: "PESEL must be 11 digits", Code: "invalid"},
		})
		return
	}

	if brv := extractBusinessRuleViolation(err); brv != nil {
		statusCode := http.StatusConflict
		if brv.Rule == domainErrors.RulePeselAlreadyRegistered {
			statusCode = http.StatusBadRequest
		}
		Error(c, statusCode, &APIError{
			Code:    ErrCodeBusinessRule,
			Message: brv.Message,
			Details: map[string]interface{}{
				"rule":    brv.Rule,
				"context": brv.Context,
			},
		})
		return
	}

	if domainErrors.IsNotFound(err) {
		NotFoundResponse(c, "Resource")
		return
	}

	if domainErr := extractDomainError(err); domainErr != nil {
		Error(c, http.StatusBadRequest, &APIError{
			Code:    domainErr.Code,
			Message: domainErr.Message,
		})
		return
	}

	InternalErrorResponse(c, "An unexpected error occurred")
}

// validationFields flattens ValidationError/ValidationErrors into field
// details.
func validationFields(err error) []FieldError {
	for e := err; e != nil; e = unwrap(e) {
		switch v := e.(type) {
		case domainErrors.ValidationError:
			return []FieldError{{Field: v.Field, Message: v.Message, Code: "invalid"}}
		case domainErrors.ValidationErrors:
			fields := make([]FieldError, 0, len(v))
			for _, fe := range v {
				fields = append(fields, FieldError{Field: fe.Field, Message: fe.Message, Code: "invalid"})
			}
			return fields
		}
	}
	return nil
}

func extractBusinessRuleViolation(err error) *domainErrors.BusinessRuleViolation {
	for e := err; e != nil; e = unwrap(e) {
		if v, ok := e.(*domainErrors.BusinessRuleViolation); ok {
			return v
		}
	}
	return nil
}

func extractDomainError(err error) *domainErrors.DomainError {
	for e := err; e != nil; e = unwrap(e) {
		if v, ok := e.(*domainErrors.DomainError); ok {
			return v
		}
	}
	return nil
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
