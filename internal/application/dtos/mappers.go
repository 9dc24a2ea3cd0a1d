// Mappers convert domain entities into DTOs.
// Dates on trips are rendered as YYYY-MM-DD; registration dates keep the
// integer YYYYMMDD encoding they are stored with.
package dtos

import (
	"time"

	"github.com/mzurek/tripdesk/internal/domain/entities"
)

const dateLayout = "2006-01-02"

// ============================================
// Trip Mappers
// ============================================

// ToCountryDTOList converts a trip's destination list.
func ToCountryDTOList(countries []entities.Country) []CountryDTO {
	result := make([]CountryDTO, len(countries))
	for i, c := range countries {
		result[i] = CountryDTO{ID: c.ID, Name: c.Name}
	}
	return result
}

// ToTripDTO converts a trip aggregate for the trip listing.
func ToTripDTO(trip *entities.Trip) TripDTO {
	return TripDTO{
		ID:          trip.ID(),
		Name:        trip.Name(),
		Description: trip.Description(),
		DateFrom:    formatDate(trip.DateFrom()),
		DateTo:      formatDate(trip.DateTo()),
		MaxPeople:   trip.MaxPeople(),
		Countries:   ToCountryDTOList(trip.Destinations()),
	}
}

// ToTripDTOList converts a list of trips.
func ToTripDTOList(trips []*entities.Trip) []TripDTO {
	result := make([]TripDTO, len(trips))
	for i, trip := range trips {
		result[i] = ToTripDTO(trip)
	}
	return result
}

// ============================================
// Client Trip Mappers
// ============================================

// ToClientTripDTO flattens one registration: trip fields plus the
// registration date fields.
func ToClientTripDTO(ct entities.ClientTrip) ClientTripDTO {
	return ClientTripDTO{
		ID:           ct.Trip.ID(),
		Name:         ct.Trip.Name(),
		Description:  ct.Trip.Description(),
		DateFrom:     formatDate(ct.Trip.DateFrom()),
		DateTo:       formatDate(ct.Trip.DateTo()),
		MaxPeople:    ct.Trip.MaxPeople(),
		RegisteredAt: ct.RegisteredAt,
		PaymentDate:  ct.PaymentDate,
		Countries:    ToCountryDTOList(ct.Trip.Destinations()),
	}
}

// ToClientTripDTOList converts a client's registrations.
func ToClientTripDTOList(clientTrips []entities.ClientTrip) []ClientTripDTO {
	result := make([]ClientTripDTO, len(clientTrips))
	for i, ct := range clientTrips {
		result[i] = ToClientTripDTO(ct)
	}
	return result
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
