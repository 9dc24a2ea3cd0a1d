package client

import (
	"context"
	"fmt"

	"github.com/mzurek/tripdesk/internal/application/dtos"
	"github.com/mzurek/tripdesk/internal/application/ports"
	"github.com/mzurek/tripdesk/internal/domain/errors"
)

// ListClientTripsUseCase returns one client's registrations with their
// trips and destinations.
type ListClientTripsUseCase struct {
	clientRepo ports.ClientRepository
}

// NewListClientTripsUseCase creates the use case.
func NewListClientTripsUseCase(clientRepo ports.ClientRepository) *ListClientTripsUseCase {
	return &ListClientTripsUseCase{clientRepo: clientRepo}
}

// Execute runs the use case.
//
// Errors:
//   - ErrClientNotFound: the client does not exist
func (uc *ListClientTripsUseCase) Execute(ctx context.Context, query dtos.ListClientTripsQuery) ([]dtos.ClientTripDTO, error) {
	clientTrips, err := uc.clientRepo.ListTrips(ctx, query.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client trips: %w", err)
	}
	// nil marks a missing client; an empty slice is a client with no trips.
	if clientTrips == nil {
		return nil, errors.ErrClientNotFound
	}

	return dtos.ToClientTripDTOList(clientTrips), nil
}
