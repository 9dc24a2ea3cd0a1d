package trip

import (
	"context"
	"fmt"

	"github.com/mzurek/tripdesk/internal/application/dtos"
	"github.com/mzurek/tripdesk/internal/application/ports"
	"github.com/mzurek/tripdesk/internal/domain/entities"
	"github.com/mzurek/tripdesk/internal/domain/errors"
	"github.com/mzurek/tripdesk/internal/pkg/clock"
)

// RegisterClientUseCase registers an existing client to a trip.
//
// Scenario:
//  1. Load the client (not-found when absent)
//  2. Load the trip aggregate (not-found when absent)
//  3. Check capacity: participants + 1 must not exceed MaxPeople
//  4. Insert a registration dated today (UTC, YYYYMMDD int), unpaid
//
// The capacity pre-check gives a descriptive error; the insert itself is
// conditional on remaining capacity at the storage layer, so two concurrent
// registrations cannot both take the last seat. A conditional insert that
// writes nothing after the pre-check passed therefore also surfaces the
// capacity condition.
type RegisterClientUseCase struct {
	clientRepo ports.ClientRepository
	tripRepo   ports.TripRepository
	clk        clock.Clock
	uow        ports.UnitOfWork
}

// NewRegisterClientUseCase creates the use case.
func NewRegisterClientUseCase(
	clientRepo ports.ClientRepository,
	tripRepo ports.TripRepository,
	clk clock.Clock,
	uow ports.UnitOfWork,
) *RegisterClientUseCase {
	return &RegisterClientUseCase{
		clientRepo: clientRepo,
		tripRepo:   tripRepo,
		clk:        clk,
		uow:        uow,
	}
}

// Execute runs the use case.
//
// Errors:
//   - ErrClientNotFound / ErrTripNotFound
//   - BusinessRuleViolation(RuleTripCapacityExceeded): trip is full
func (uc *RegisterClientUseCase) Execute(ctx context.Context, cmd dtos.RegisterClientToTripCommand) (*dtos.RegistrationDTO, error) {
	var result *dtos.RegistrationDTO

	err := uc.uow.Execute(ctx, func(txCtx context.Context) error {
		client, err := uc.clientRepo.FindByID(txCtx, cmd.ClientID)
		if err != nil {
			return err
		}

		trip, err := uc.tripRepo.FindByID(txCtx, cmd.TripID)
		if err != nil {
			return err
		}

		if !trip.HasCapacity() {
			return capacityExceeded(trip)
		}

		reg := entities.Registration{
			Client:       client,
			TripID:       trip.ID(),
			RegisteredAt: clock.DateInt(uc.clk.Now()),
			PaymentDate:  nil,
		}

		inserted, err := uc.clientRepo.CreateRegistration(txCtx, reg)
		if err != nil {
			return fmt.Errorf("failed to create registration: %w", err)
		}
		if !inserted {
			// The conditional insert lost a capacity race after the
			// pre-check passed.
			return capacityExceeded(trip)
		}

		result = &dtos.RegistrationDTO{
			ClientID:     client.ID(),
			TripID:       trip.ID(),
			RegisteredAt: reg.RegisteredAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func capacityExceeded(trip *entities.Trip) error {
	return errors.NewBusinessRuleViolation(
		errors.RuleTripCapacityExceeded,
		fmt.Sprintf("trip %d is full: max participants %d reached", trip.ID(), trip.MaxPeople()),
		map[string]interface{}{
			"trip_id":      trip.ID(),
			"max_people":   trip.MaxPeople(),
			"participants": len(trip.Participants()),
		},
	)
}
