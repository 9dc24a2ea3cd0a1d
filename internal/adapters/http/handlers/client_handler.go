// Client HTTP handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzurek/tripdesk/internal/adapters/http/common"
	"github.com/mzurek/tripdesk/internal/adapters/http/middleware"
	"github.com/mzurek/tripdesk/internal/application/dtos"
)

// ============================================
// Use Case Interfaces
// ============================================

// CreateClientUseCase registers a new client.
type CreateClientUseCase interface {
	Execute(ctx context.Context, cmd dtos.CreateClientCommand) (*dtos.ClientCreatedDTO, error)
}

// ListClientTripsUseCase lists one client's registrations.
type ListClientTripsUseCase interface {
	Execute(ctx context.Context, query dtos.ListClientTripsQuery) ([]dtos.ClientTripDTO, error)
}

// ============================================
// Client Handler
// ============================================

// ClientHandler handles HTTP requests for clients.
type ClientHandler struct {
	createClient    CreateClientUseCase
	listClientTrips ListClientTripsUseCase
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(createClient CreateClientUseCase, listClientTrips ListClientTripsUseCase) *ClientHandler {
	return &ClientHandler{
		createClient:    createClient,
		listClientTrips: listClientTrips,
	}
}

// ============================================
// Request DTOs (HTTP layer)
// ============================================

// CreateClientRequest is the body for registering a client.
//
// @Description Create client request body
type CreateClientRequest struct {
	FirstName string `json:"first_name" binding:"required,max=120"`
	LastName  string `json:"last_name" binding:"required,max=120"`
	Email     string `json:"email" binding:"required,email,max=120"`
	Telephone string `json:"telephone" binding:"required,phone,max=120"`
	Pesel     string `json:"pesel" binding:"required,pesel"`
}

// ClientIDParam is the client ID from the URL.
type ClientIDParam struct {
	ClientID int `uri:"clientId" binding:"required,gt=0"`
}

// ============================================
// HTTP Handlers
// ============================================

// CreateClient registers a new client.
//
// @Summary Create a new client
// @Description Register a client with a unique PESEL number
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body CreateClientRequest true "Client data"
// @Success 201 {object} common.APIResponse{data=dtos.ClientCreatedDTO}
// @Failure 400 {object} common.APIResponse
// @Failure 500 {object} common.APIResponse
// @Router /api/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if !BindJSON(c, &req) {
		return
	}

	cmd := dtos.CreateClientCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Telephone: req.Telephone,
		Pesel:     req.Pesel,
	}

	result, err := h.createClient.Execute(c.Request.Context(), cmd)
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	middleware.ClientsCreatedTotal.Inc()
	common.Success(c, http.StatusCreated, result)
}

// ListClientTrips returns the trips a client is registered to.
//
// @Summary List client trips
// @Description List all trips the client is registered to, with registration dates
// @Tags Clients
// @Produce json
// @Param clientId path int true "Client ID"
// @Success 200 {object} common.APIResponse{data=[]dtos.ClientTripDTO}
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Failure 500 {object} common.APIResponse
// @Router /api/clients/{clientId}/trips [get]
func (h *ClientHandler) ListClientTrips(c *gin.Context) {
	var param ClientIDParam
	if !BindURI(c, &param) {
		return
	}

	result, err := h.listClientTrips.Execute(c.Request.Context(), dtos.ListClientTripsQuery{
		ClientID: param.ClientID,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	common.Success(c, http.StatusOK, result)
}
