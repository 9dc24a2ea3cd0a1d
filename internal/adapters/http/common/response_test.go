package common

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

	domainErrors "github.com/mzurek/tripdesk/internal/domain/errors"
)

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "test-request-123")
	return c, w
}

// ============================================
// Test Request ID Functions
// ============================================

func TestGetRequestID(t *testing.T) {
	t.Run("ReturnsRequestID", func(t *testing.T) {
		c, _ := setupTestContext()
		id := GetRequestID(c)
		assert.Equal(t, "test-request-123", id)
	})

	t.Run("ReturnsEmptyWhenNotSet", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		id := GetRequestID(c)
		assert.Empty(t, id)
	})
}

// ============================================
// Test Success Responses
// ============================================

func TestSuccess(t *testing.T) {
	c, w := setupTestContext()

	data := map[string]string{"status": "ok"}
	Success(c, http.StatusOK, data)

	assert.Equal(t, http.StatusOK, w.Code)

	var response APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.True(t, response.Success)
	assert.NotNil(t, response.Data)
	assert.Equal(t, "test-request-123", response.RequestID)
	assert.False(t, response.Timestamp.IsZero())
}

// ============================================
// Test Error Responses
// ============================================

func TestError(t *testing.T) {
	c, w := setupTestContext()

	Error(c, http.StatusConflict, &APIError{
		Code:    ErrCodeConflict,
		Message: "Already exists",
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var response APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.False(t, response.Success)
	require.NotNil(t, response.Error)
	assert.Equal(t, ErrCodeConflict, response.Error.Code)
	assert.Equal(t, "Already exists", response.Error.Message)
}

func TestValidationErrorResponse(t *testing.T) {
	c, w := setupTestContext()

	ValidationErrorResponse(c, []FieldError{
		{Field: "pesel", Message: "PESEL must be 11 digits", Code: "invalid"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Error)
	assert.Equal(t, ErrCodeValidation, response.Error.Code)
	require.Len(t, response.Error.Fields, 1)
	assert.Equal(t, "pesel", response.Error.Fields[0].Field)
}

func TestNotFoundResponse(t *testing.T) {
	c, w := setupTestContext()

	NotFoundResponse(c, "Client")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Error)
	assert.Equal(t, ErrCodeNotFound, response.Error.Code)
}

func TestTooManyRequestsResponse(t *testing.T) {
	c, w := setupTestContext()

	TooManyRequestsResponse(c, 60)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var response APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Error)
	assert.Equal(t, ErrCodeTooManyRequests, response.Error.Code)
}

// ============================================
// Test HandleDomainError
// ============================================

func TestHandleDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "InvalidPesel",
			err:        domainErrors.ErrInvalidPesel,
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidation,
		},
		{
			name:       "WrappedInvalidPesel",
			err:        fmt.Errorf("creating client: %w", domainErrors.ErrInvalidPesel),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidation,
		},
		{
			name: "DuplicatePesel",
			err: domainErrors.NewBusinessRuleViolation(
				domainErrors.RulePeselAlreadyRegistered, "PESEL is already registered", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeBusinessRule,
		},
		{
			name: "TripCapacityExceeded",
			err: domainErrors.NewBusinessRuleViolation(
				domainErrors.RuleTripCapacityExceeded, "Trip is fully booked", nil),
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeBusinessRule,
		},
		{
			name: "ClientAlreadyOnTrip",
			err: domainErrors.NewBusinessRuleViolation(
				domainErrors.RuleClientAlreadyOnTrip, "Client is already registered", nil),
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeBusinessRule,
		},
		{
			name:       "ClientNotFound",
			err:        domainErrors.ErrClientNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "TripNotFound",
			err:        domainErrors.ErrTripNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "WrappedNotFound",
			err:        fmt.Errorf("loading trip: %w", domainErrors.ErrTripNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "DomainError",
			err:        domainErrors.NewDomainError("TRIP_DATES_INVALID", "Trip dates are invalid", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "TRIP_DATES_INVALID",
		},
		{
			name:       "UnknownError",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()

			HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var response APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.False(t, response.Success)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.wantCode, response.Error.Code)
		})
	}
}

func TestHandleDomainError_InternalHidesDetails(t *testing.T) {
	c, w := setupTestContext()

	HandleDomainError(c, errors.New("pq: password authentication failed"))

	var response APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Error)
	assert.NotContains(t, response.Error.Message, "password")
}
