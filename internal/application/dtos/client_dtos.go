// Package dtos defines Data Transfer Objects passed between layers.
// Commands and queries carry use case input; DTOs carry results out to the
// transport layer without exposing domain entities.
//
// Pattern: Data Transfer Object + Command/Query separation
package dtos

// ============================================
// Commands (write operations)
// ============================================

// CreateClientCommand carries the data for registering a new client.
type CreateClientCommand struct {
	FirstName string `json:"first_name" validate:"required,max=120"`
	LastName  string `json:"last_name" validate:"required,max=120"`
	Email     string `json:"email" validate:"required,email,max=120"`
	Telephone string `json:"telephone" validate:"required,max=120"`
	Pesel     string `json:"pesel" validate:"required,len=11"`
}

// RegisterClientToTripCommand registers an existing client to a trip.
type RegisterClientToTripCommand struct {
	ClientID int `json:"client_id" validate:"required,gt=0"`
	TripID   int `json:"trip_id" validate:"required,gt=0"`
}

// ============================================
// Queries (read operations)
// ============================================

// ListClientTripsQuery requests one client's registrations.
type ListClientTripsQuery struct {
	ClientID int `json:"client_id" validate:"required,gt=0"`
}

// ============================================
// Response DTOs
// ============================================

// ClientCreatedDTO is the result of creating a client.
type ClientCreatedDTO struct {
	ID int `json:"id"`
}

// ClientTripDTO is one registration of a client, flattened for the API:
// the trip fields plus the registration date fields.
type ClientTripDTO struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	DateFrom     string       `json:"date_from"`
	DateTo       string       `json:"date_to"`
	MaxPeople    int          `json:"max_people"`
	RegisteredAt int          `json:"registered_at"`
	PaymentDate  *int         `json:"payment_date"`
	Countries    []CountryDTO `json:"countries"`
}
