// Trip HTTP handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzurek/tripdesk/internal/adapters/http/common"
	"github.com/mzurek/tripdesk/internal/adapters/http/middleware"
	"github.com/mzurek/tripdesk/internal/application/dtos"
	domainErrors "github.com/mzurek/tripdesk/internal/domain/errors"
)

// ============================================
// Use Case Interfaces
// ============================================

// ListTripsUseCase lists every trip in the catalog.
type ListTripsUseCase interface {
	Execute(ctx context.Context) ([]dtos.TripDTO, error)
}

// RegisterClientUseCase registers a client to a trip.
type RegisterClientUseCase interface {
	Execute(ctx context.Context, cmd dtos.RegisterClientToTripCommand) (*dtos.RegistrationDTO, error)
}

// ============================================
// Trip Handler
// ============================================

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	listTrips      ListTripsUseCase
	registerClient RegisterClientUseCase
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(listTrips ListTripsUseCase, registerClient RegisterClientUseCase) *TripHandler {
	return &TripHandler{
		listTrips:      listTrips,
		registerClient: registerClient,
	}
}

// ============================================
// Request DTOs (HTTP layer)
// ============================================

// RegistrationParams are the path parameters of the registration endpoint.
type RegistrationParams struct {
	ClientID int `uri:"clientId" binding:"required,gt=0"`
	TripID   int `uri:"tripId" binding:"required,gt=0"`
}

// ============================================
// HTTP Handlers
// ============================================

// ListTrips returns all trips with destinations and participants.
//
// @Summary List trips
// @Description List every trip with its destination countries and registered clients
// @Tags Trips
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]dtos.TripDTO}
// @Failure 500 {object} common.APIResponse
// @Router /api/trips [get]
func (h *TripHandler) ListTrips(c *gin.Context) {
	result, err := h.listTrips.Execute(c.Request.Context())
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	common.Success(c, http.StatusOK, result)
}

// RegisterClient registers a client to a trip.
//
// @Summary Register a client to a trip
// @Description Register an existing client to a trip while seats remain
// @Tags Trips
// @Produce json
// @Param clientId path int true "Client ID"
// @Param tripId path int true "Trip ID"
// @Success 200 {object} common.APIResponse{data=dtos.RegistrationDTO}
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Failure 409 {object} common.APIResponse
// @Failure 500 {object} common.APIResponse
// @Router /api/clients/{clientId}/trips/{tripId} [put]
func (h *TripHandler) RegisterClient(c *gin.Context) {
	var params RegistrationParams
	if !BindURI(c, &params) {
		return
	}

	cmd := dtos.RegisterClientToTripCommand{
		ClientID: params.ClientID,
		TripID:   params.TripID,
	}

	result, err := h.registerClient.Execute(c.Request.Context(), cmd)
	if err != nil {
		if domainErrors.RuleOf(err) == domainErrors.RuleTripCapacityExceeded {
			middleware.RecordRegistration("trip_full")
		} else {
			middleware.RecordRegistration("rejected")
		}
		common.HandleDomainError(c, err)
		return
	}

	middleware.RecordRegistration("created")
	common.Success(c, http.StatusOK, result)
}
