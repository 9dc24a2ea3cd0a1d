package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzurek/tripdesk/internal/application/dtos"
	"github.com/mzurek/tripdesk/internal/application/usecases/client"
	"github.com/mzurek/tripdesk/internal/domain/entities"
	domainErrors "github.com/mzurek/tripdesk/internal/domain/errors"
)

func TestListClientTripsUseCase_Execute_Success(t *testing.T) {
	trip := entities.ReconstructTrip(
		7, "Norway Fjords", "Hiking week",
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC),
		20,
	)
	trip.AddDestination(entities.Country{ID: 1, Name: "Norway"})
	paymentDate := 20260401

	repo := &MockClientRepository{
		ListTripsFunc: func(ctx context.Context, clientID int) ([]entities.ClientTrip, error) {
			assert.Equal(t, 5, clientID)
			return []entities.ClientTrip{
				{Trip: trip, RegisteredAt: 20260301, PaymentDate: &paymentDate},
			}, nil
		},
	}
	uc := client.NewListClientTripsUseCase(repo)

	result, err := uc.Execute(context.Background(), dtos.ListClientTripsQuery{ClientID: 5})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 7, result[0].ID)
	assert.Equal(t, "Norway Fjords", result[0].Name)
	assert.Equal(t, 20260301, result[0].RegisteredAt)
	require.NotNil(t, result[0].PaymentDate)
	assert.Equal(t, 20260401, *result[0].PaymentDate)
	require.Len(t, result[0].Countries, 1)
	assert.Equal(t, "Norway", result[0].Countries[0].Name)
}

func TestListClientTripsUseCase_Execute_ClientWithoutTrips(t *testing.T) {
	repo := &MockClientRepository{
		ListTripsFunc: func(ctx context.Context, clientID int) ([]entities.ClientTrip, error) {
			return []entities.ClientTrip{}, nil
		},
	}
	uc := client.NewListClientTripsUseCase(repo)

	result, err := uc.Execute(context.Background(), dtos.ListClientTripsQuery{ClientID: 5})

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestListClientTripsUseCase_Execute_ClientNotFound(t *testing.T) {
	repo := &MockClientRepository{
		ListTripsFunc: func(ctx context.Context, clientID int) ([]entities.ClientTrip, error) {
			return nil, nil
		},
	}
	uc := client.NewListClientTripsUseCase(repo)

	result, err := uc.Execute(context.Background(), dtos.ListClientTripsQuery{ClientID: 999})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, domainErrors.IsNotFound(err))
}
