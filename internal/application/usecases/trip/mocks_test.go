package trip_test

import (
	"context"

	"github.com/mzurek/tripdesk/internal/domain/entities"
	domainErrors "github.com/mzurek/tripdesk/internal/domain/errors"
)

// MockTripRepository implements ports.TripRepository with overridable
// functions per method.
type MockTripRepository struct {
	ListAllFunc  func(ctx context.Context) ([]*entities.Trip, error)
	FindByIDFunc func(ctx context.Context, tripID int) (*entities.Trip, error)
	ExistsFunc   func(ctx context.Context, tripID int) (bool, error)
}

func (m *MockTripRepository) ListAll(ctx context.Context) ([]*entities.Trip, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []*entities.Trip{}, nil
}

func (m *MockTripRepository) FindByID(ctx context.Context, tripID int) (*entities.Trip, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tripID)
	}
	return nil, domainErrors.ErrTripNotFound
}

func (m *MockTripRepository) Exists(ctx context.Context, tripID int) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, tripID)
	}
	return false, nil
}

// MockClientRepository implements ports.ClientRepository with overridable
// functions per method.
type MockClientRepository struct {
	ExistsFunc             func(ctx context.Context, clientID int) (bool, error)
	FindByIDFunc           func(ctx context.Context, clientID int) (*entities.Client, error)
	ListTripsFunc          func(ctx context.Context, clientID int) ([]entities.ClientTrip, error)
	CreateFunc             func(ctx context.Context, client *entities.Client) (*entities.Client, error)
	ExistsByPeselFunc      func(ctx context.Context, pesel string) (bool, error)
	CreateRegistrationFunc func(ctx context.Context, reg entities.Registration) (bool, error)

	Registrations []entities.Registration
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
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, client)
	}
	return client, nil
}

func (m *MockClientRepository) ExistsByPesel(ctx context.Context, pesel string) (bool, error) {
	if m.ExistsByPeselFunc != nil {
		return m.ExistsByPeselFunc(ctx, pesel)
	}
	return false, nil
}

func (m *MockClientRepository) CreateRegistration(ctx context.Context, reg entities.Registration) (bool, error) {
	m.Registrations = append(m.Registrations, reg)
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
