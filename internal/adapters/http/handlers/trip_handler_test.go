package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzurek/tripdesk/internal/adapters/http/common"
	"github.com/mzurek/tripdesk/internal/application/dtos"
	domainErrors "github.com/mzurek/tripdesk/internal/domain/errors"
)

// ============================================
// Mock Use Cases
// ============================================

type MockListTripsUseCase struct {
	ExecuteFn func(ctx context.Context) ([]dtos.TripDTO, error)
}

func (m *MockListTripsUseCase) Execute(ctx context.Context) ([]dtos.TripDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx)
	}
	return nil, errors.New("not implemented")
}

type MockRegisterClientUseCase struct {
	ExecuteFn func(ctx context.Context, cmd dtos.RegisterClientToTripCommand) (*dtos.RegistrationDTO, error)
}

func (m *MockRegisterClientUseCase) Execute(ctx context.Context, cmd dtos.RegisterClientToTripCommand) (*dtos.RegistrationDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, cmd)
	}
	return nil, errors.New("not implemented")
}

// ============================================
// Test Setup
// ============================================

func setupTripTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()
	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Set(common.RequestIDKey, "test-request-123")
		c.Next()
	})

	return router
}

// ============================================
// Test ListTrips Handler
// ============================================

func TestTripHandler_ListTrips(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUseCase := &MockListTripsUseCase{
			ExecuteFn: func(ctx context.Context) ([]dtos.TripDTO, error) {
				return []dtos.TripDTO{
					{
						ID:        1,
						Name:      "Alpine Tour",
						DateFrom:  "2026-07-01",
						DateTo:    "2026-07-14",
						MaxPeople: 15,
						Countries: []dtos.CountryDTO{
							{ID: 1, Name: "Austria"},
							{ID: 2, Name: "Switzerland"},
						},
					},
					{ID: 2, Name: "Baltic Coast", Countries: []dtos.CountryDTO{}},
				}, nil
			},
		}

		handler := NewTripHandler(mockUseCase, nil)
		router := setupTripTestRouter()
		router.GET("/trips", handler.ListTrips)

		req := httptest.NewRequest(http.MethodGet, "/trips", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response common.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)

		trips, ok := response.Data.([]interface{})
		require.True(t, ok)
		assert.Len(t, trips, 2)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		mockUseCase := &MockListTripsUseCase{
			ExecuteFn: func(ctx context.Context) ([]dtos.TripDTO, error) {
				return nil, errors.New("connection refused")
			},
		}

		handler := NewTripHandler(mockUseCase, nil)
		router := setupTripTestRouter()
		router.GET("/trips", handler.ListTrips)

		req := httptest.NewRequest(http.MethodGet, "/trips", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

// ============================================
// Test RegisterClient Handler
// ============================================

func TestTripHandler_RegisterClient(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUseCase := &MockRegisterClientUseCase{
			ExecuteFn: func(ctx context.Context, cmd dtos.RegisterClientToTripCommand) (*dtos.RegistrationDTO, error) {
				assert.Equal(t, 5, cmd.ClientID)
				assert.Equal(t, 7, cmd.TripID)
				return &dtos.RegistrationDTO{ClientID: 5, TripID: 7, RegisteredAt: 20260315}, nil
			},
		}

		handler := NewTripHandler(nil, mockUseCase)
		router := setupTripTestRouter()
		router.PUT("/clients/:clientId/trips/:tripId", handler.RegisterClient)

		req := httptest.NewRequest(http.MethodPut, "/clients/5/trips/7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response common.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
	})

	t.Run("TripFull", func(t *testing.T) {
		mockUseCase := &MockRegisterClientUseCase{
			ExecuteFn: func(ctx context.Context, cmd dtos.RegisterClientToTripCommand) (*dtos.RegistrationDTO, error) {
				return nil, domainErrors.NewBusinessRuleViolation(
					domainErrors.RuleTripCapacityExceeded,
					"Trip is fully booked",
					map[string]interface{}{"trip_id": cmd.TripID},
				)
			},
		}

		handler := NewTripHandler(nil, mockUseCase)
		router := setupTripTestRouter()
		router.PUT("/clients/:clientId/trips/:tripId", handler.RegisterClient)

		req := httptest.NewRequest(http.MethodPut, "/clients/5/trips/7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var response common.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Success)
		require.NotNil(t, response.Error)
		assert.Equal(t, common.ErrCodeBusinessRule, response.Error.Code)
	})

	t.Run("AlreadyRegistered", func(t *testing.T) {
		mockUseCase := &MockRegisterClientUseCase{
			ExecuteFn: func(ctx context.Context, cmd dtos.RegisterClientToTripCommand) (*dtos.RegistrationDTO, error) {
				return nil, domainErrors.NewBusinessRuleViolation(
					domainErrors.RuleClientAlreadyOnTrip,
					"Client is already registered to this trip",
					nil,
				)
			},
		}

		handler := NewTripHandler(nil, mockUseCase)
		router := setupTripTestRouter()
		router.PUT("/clients/:clientId/trips/:tripId", handler.RegisterClient)

		req := httptest.NewRequest(http.MethodPut, "/clients/5/trips/7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("ClientNotFound", func(t *testing.T) {
		mockUseCase := &MockRegisterClientUseCase{
			ExecuteFn: func(ctx context.Context, cmd dtos.RegisterClientToTripCommand) (*dtos.RegistrationDTO, error) {
				return nil, domainErrors.ErrClientNotFound
			},
		}

		handler := NewTripHandler(nil, mockUseCase)
		router := setupTripTestRouter()
		router.PUT("/clients/:clientId/trips/:tripId", handler.RegisterClient)

		req := httptest.NewRequest(http.MethodPut, "/clients/999/trips/7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("TripNotFound", func(t *testing.T) {
		mockUseCase := &MockRegisterClientUseCase{
			ExecuteFn: func(ctx context.Context, cmd dtos.RegisterClientToTripCommand) (*dtos.RegistrationDTO, error) {
				return nil, domainErrors.ErrTripNotFound
			},
		}

		handler := NewTripHandler(nil, mockUseCase)
		router := setupTripTestRouter()
		router.PUT("/clients/:clientId/trips/:tripId", handler.RegisterClient)

		req := httptest.NewRequest(http.MethodPut, "/clients/5/trips/999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidParams", func(t *testing.T) {
		handler := NewTripHandler(nil, &MockRegisterClientUseCase{})
		router := setupTripTestRouter()
		router.PUT("/clients/:clientId/trips/:tripId", handler.RegisterClient)

		for _, path := range []string{"/clients/abc/trips/7", "/clients/5/trips/xyz", "/clients/0/trips/7", "/clients/5/trips/0"} {
			req := httptest.NewRequest(http.MethodPut, path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, path)
		}
	})
}
