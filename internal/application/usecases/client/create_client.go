// Package client contains use cases for the client side of the service:
// registering clients and listing their trips.
//
// Pattern: Use Case (Interactor) - one scenario per type, dependencies via
// constructor, transaction boundaries owned here.
package client

import (
	"context"
	"fmt"

	"github.com/mzurek/tripdesk/internal/application/dtos"
	"github.com/mzurek/tripdesk/internal/application/ports"
	"github.com/mzurek/tripdesk/internal/domain/entities"
	"github.com/mzurek/tripdesk/internal/domain/errors"
)

// CreateClientUseCase registers a new client.
//
// Scenario:
//  1. Check PESEL uniqueness
//  2. Build the Client entity (validation inside)
//  3. Insert and return the assigned ID
//
// The pre-check and insert run in one transaction; the UNIQUE constraint on
// pesel closes the remaining race window, and the repository maps that
// violation to the same duplicate condition.
type CreateClientUseCase struct {
	clientRepo ports.ClientRepository
	uow        ports.UnitOfWork
}

// NewCreateClientUseCase creates the use case.
func NewCreateClientUseCase(clientRepo ports.ClientRepository, uow ports.UnitOfWork) *CreateClientUseCase {
	return &CreateClientUseCase{
		clientRepo: clientRepo,
		uow:        uow,
	}
}

// Execute runs the use case.
//
// Errors:
//   - BusinessRuleViolation(RulePeselAlreadyRegistered): PESEL in use
//   - ValidationError / ErrInvalidPesel: invalid payload
func (uc *CreateClientUseCase) Execute(ctx context.Context, cmd dtos.CreateClientCommand) (*dtos.ClientCreatedDTO, error) {
	var result *dtos.ClientCreatedDTO

	err := uc.uow.Execute(ctx, func(txCtx context.Context) error {
		exists, err := uc.clientRepo.ExistsByPesel(txCtx, cmd.Pesel)
		if err != nil {
			return fmt.Errorf("failed to check pesel uniqueness: %w", err)
		}
		if exists {
			return errors.NewBusinessRuleViolation(
				errors.RulePeselAlreadyRegistered,
				fmt.Sprintf("client with PESEL %s already exists", cmd.Pesel),
				map[string]interface{}{"pesel": cmd.Pesel},
			)
		}

		client, err := entities.NewClient(cmd.FirstName, cmd.LastName, cmd.Email, cmd.Telephone, cmd.Pesel)
		if err != nil {
			return err
		}

		created, err := uc.clientRepo.Create(txCtx, client)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		result = &dtos.ClientCreatedDTO{ID: created.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
