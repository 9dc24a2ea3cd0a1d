package dtos_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mzurek/tripdesk/internal/application/dtos"
	"github.com/mzurek/tripdesk/internal/domain/entities"
)

func buildTrip() *entities.Trip {
	trip := entities.ReconstructTrip(
		5, "Alps hike", "A week in the Alps",
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
		20,
	)
	trip.AddDestination(entities.Country{ID: 1, Name: "Austria"})
	trip.AddDestination(entities.Country{ID: 2, Name: "Italy"})
	return trip
}

func TestToTripDTO(t *testing.T) {
	dto := dtos.ToTripDTO(buildTrip())

	assert.Equal(t, 5, dto.ID)
	assert.Equal(t, "Alps hike", dto.Name)
	assert.Equal(t, "2025-07-01", dto.DateFrom)
	assert.Equal(t, "2025-07-08", dto.DateTo)
	assert.Equal(t, 20, dto.MaxPeople)
	assert.Equal(t, []dtos.CountryDTO{
		{ID: 1, Name: "Austria"},
		{ID: 2, Name: "Italy"},
	}, dto.Countries)
}

func TestToTripDTOList_Empty(t *testing.T) {
	result := dtos.ToTripDTOList(nil)

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestToClientTripDTO(t *testing.T) {
	payment := 20250615
	dto := dtos.ToClientTripDTO(entities.ClientTrip{
		Trip:         buildTrip(),
		RegisteredAt: 20250601,
		PaymentDate:  &payment,
	})

	assert.Equal(t, 5, dto.ID)
	assert.Equal(t, 20250601, dto.RegisteredAt)
	assert.NotNil(t, dto.PaymentDate)
	assert.Equal(t, 20250615, *dto.PaymentDate)
	assert.Len(t, dto.Countries, 2)
}

func TestToClientTripDTO_UnpaidRegistration(t *testing.T) {
	dto := dtos.ToClientTripDTO(entities.ClientTrip{
		Trip:         buildTrip(),
		RegisteredAt: 20250601,
	})

	assert.Nil(t, dto.PaymentDate)
}
