// Package ports defines the interfaces implemented by the infrastructure
// layer. The application layer depends on these abstractions only.
//
// Pattern: Repository Pattern + Ports & Adapters (Hexagonal Architecture)
package ports

import (
	"context"

	"github.com/mzurek/tripdesk/internal/domain/entities"
)

// ClientRepository is the contract for client persistence.
type ClientRepository interface {
	// Exists checks whether a client with the given ID exists.
	Exists(ctx context.Context, clientID int) (bool, error)

	// FindByID loads a client by ID.
	// Returns ErrClientNotFound when no row matches.
	FindByID(ctx context.Context, clientID int) (*entities.Client, error)

	// ListTrips returns the client's registrations, each carrying its trip
	// with a deduplicated destination list. Returns nil (and no error) when
	// the client itself does not exist; an existing client with no
	// registrations yields an empty slice.
	ListTrips(ctx context.Context, clientID int) ([]entities.ClientTrip, error)

	// Create inserts a client and returns it reconstructed with the
	// storage-assigned ID. A PESEL unique violation surfaces as a
	// BusinessRuleViolation with RulePeselAlreadyRegistered.
	Create(ctx context.Context, client *entities.Client) (*entities.Client, error)

	// ExistsByPesel checks existence by business key without loading the
	// entity. A blank PESEL short-circuits to false without querying.
	ExistsByPesel(ctx context.Context, pesel string) (bool, error)

	// CreateRegistration inserts a client-trip registration. The insert is
	// conditional on remaining trip capacity; the bool reports whether a
	// row was actually written.
	CreateRegistration(ctx context.Context, reg entities.Registration) (bool, error)
}

// TripRepository is the contract for trip persistence. Trips are read-only
// from this service's perspective.
type TripRepository interface {
	// ListAll returns every trip aggregate with deduplicated destinations
	// and participant registrations.
	ListAll(ctx context.Context) ([]*entities.Trip, error)

	// FindByID loads one trip aggregate.
	// Returns ErrTripNotFound when the trip does not exist.
	FindByID(ctx context.Context, tripID int) (*entities.Trip, error)

	// Exists checks whether a trip exists. Non-positive IDs short-circuit
	// to false without querying.
	Exists(ctx context.Context, tripID int) (bool, error)
}
