package client_test

import (
	"context"

	"github.com/mzurek/tripdesk/internal/domain/entities"
	domainErrors "github.com/mzurek/tripdesk/internal/domain/errors"
)

// MockClientRepository implements ports.ClientRepository with overridable
// functions per method.
type MockClientRepository struct {
	ExistsFunc             func(ctx context.Context, clientID int) (bool, error)
	FindByIDFunc           func(ctx context.Context, clientID int) (*entities.Client, error)
	ListTripsFunc          func(ctx context.Context, clientID int) ([]entities.ClientTrip, error)
	CreateFunc             func(ctx context.Context, client *entities.Client) (*entities.Client, error)
	ExistsByPeselFunc      func(ctx context.Context, pesel string) (bool, error)
	CreateRegistrationFunc func(ctx context.Context, reg entities.Registration) (bool, error)

	CreatedClients []*entities.Client
}

func (m *MockClientRepository) Exists(ctx context.Context, clientID int) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, clientID)
	}
	return false, nil
}

func (m *MockClientRepository) FindByID(ctx context.Context, clientID int) (*entities.Client, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, clientID)
	}
	return nil, domainErrors.ErrClientNotFound
}

func (m *MockClientRepository) ListTrips(ctx context.Context, clientID int) ([]entities.ClientTrip, error) {
	if m.ListTripsFunc != nil {
		return m.ListTripsFunc(ctx, clientID)
	}
	return nil, nil
}

func (m *MockClientRepository) Create(ctx context.Context, client *entities.Client) (*entities.Client, error) {
	m.CreatedClients = append(m.CreatedClients, client)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, client)
	}
	return entities.ReconstructClient(1, client.FirstName(), client.LastName(), client.Email(), client.Telephone(), client.Pesel()), nil
}

func (m *MockClientRepository) ExistsByPesel(ctx context.Context, pesel string) (bool, error) {
	if m.ExistsByPeselFunc != nil {
		return m.ExistsByPeselFunc(ctx, pesel)
	}
	return false, nil
}

func (m *MockClientRepository) CreateRegistration(ctx context.Context, reg entities.Registration) (bool, error) {
	if m.CreateRegistrationFunc != nil {
		return m.CreateRegistrationFunc(ctx, reg)
	}
	return true, nil
}

// MockUnitOfWork runs the function without a real transaction.
type MockUnitOfWork struct {
	ExecuteFunc func(ctx context.Context, fn func(context.Context) error) error
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(context.Context) error) error {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, fn)
	}
	return fn(ctx)
}
