// Package trip contains use cases for the trip side of the service:
// listing trips and registering clients to them.
package trip

import (
	"context"
	"fmt"

	"github.com/mzurek/tripdesk/internal/application/dtos"
	"github.com/mzurek/tripdesk/internal/application/ports"
)

// ListTripsUseCase returns every trip with its destinations.
type ListTripsUseCase struct {
	tripRepo ports.TripRepository
}

// NewListTripsUseCase creates the use case.
func NewListTripsUseCase(tripRepo ports.TripRepository) *ListTripsUseCase {
	return &ListTripsUseCase{tripRepo: tripRepo}
}

// Execute runs the use case.
func (uc *ListTripsUseCase) Execute(ctx context.Context) ([]dtos.TripDTO, error) {
	trips, err := uc.tripRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	return dtos.ToTripDTOList(trips), nil
}
