package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzurek/tripdesk/internal/application/ports"
	"github.com/mzurek/tripdesk/internal/domain/entities"
	domainErrors "github.com/mzurek/tripdesk/internal/domain/errors"
)

// Compile-time check
var _ ports.TripRepository = (*TripRepository)(nil)

// TripRepository implements ports.TripRepository. Trips and countries are
// reference data here; only registrations are written.
type TripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository creates a new TripRepository.
func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{pool: pool}
}

func (r *TripRepository) getQuerier(ctx context.Context) querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// tripRow is one row of the trip join queries. Country columns come from a
// LEFT JOIN and are NULL for trips without destinations.
type tripRow struct {
	id          int
	name        string
	description string
	dateFrom    time.Time
	dateTo      time.Time
	maxPeople   int
	countryID   *int
	countryName *string
}

func (row tripRow) newTrip() *entities.Trip {
	return entities.ReconstructTrip(row.id, row.name, row.description, row.dateFrom, row.dateTo, row.maxPeople)
}

// addCountry folds the row's country into the trip. The trip itself
// discards duplicates, so repeated join rows are harmless.
func (row tripRow) addCountry(trip *entities.Trip) {
	if row.countryID == nil || row.countryName == nil {
		return
	}
	trip.AddDestination(entities.Country{ID: *row.countryID, Name: *row.countryName})
}

// participantRow is the client-side columns of the trip join queries, NULL
// for trips without registrations.
type participantRow struct {
	clientID     *int
	firstName    *string
	lastName     *string
	email        *string
	telephone    *string
	pesel        *string
	registeredAt *int
	paymentDate  *int
}

// addParticipant folds the row's registration into the trip.
func (row participantRow) addParticipant(trip *entities.Trip) {
	if row.clientID == nil {
		return
	}
	client := entities.ReconstructClient(
		*row.clientID, *row.firstName, *row.lastName, *row.email, *row.telephone, *row.pesel,
	)
	trip.AddParticipant(entities.Registration{
		Client:       client,
		TripID:       trip.ID(),
		RegisteredAt: *row.registeredAt,
		PaymentDate:  row.paymentDate,
	})
}

// ListAll returns every trip with its destinations and participants.
//
// One wide query instead of N+1: the LEFT JOINs multiply rows per trip
// (countries x registrations), and the trip aggregate deduplicates both
// sides while scanning.
func (r *TripRepository) ListAll(ctx context.Context) ([]*entities.Trip, error) {
	q := r.getQuerier(ctx)

	rows, err := q.Query(ctx, `
		SELECT
			t.id, t.name, t.description, t.date_from, t.date_to, t.max_people,
			co.id, co.name,
			cl.id, cl.first_name, cl.last_name, cl.email, cl.telephone, cl.pesel,
			ct.registered_at, ct.payment_date
		FROM trip t
		LEFT JOIN country_trip ctr ON ctr.trip_id = t.id
		LEFT JOIN country co ON co.id = ctr.country_id
		LEFT JOIN client_trip ct ON ct.trip_id = t.id
		LEFT JOIN client cl ON cl.id = ct.client_id
		ORDER BY t.date_from, t.id, co.id, cl.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips, err := collectTrips(rows)
	if err != nil {
		return nil, err
	}

	return trips, nil
}

// FindByID loads one trip with its destinations and participants.
func (r *TripRepository) FindByID(ctx context.Context, tripID int) (*entities.Trip, error) {
	if tripID <= 0 {
		return nil, domainErrors.ErrTripNotFound
	}
	q := r.getQuerier(ctx)

	rows, err := q.Query(ctx, `
		SELECT
			t.id, t.name, t.description, t.date_from, t.date_to, t.max_people,
			co.id, co.name,
			cl.id, cl.first_name, cl.last_name, cl.email, cl.telephone, cl.pesel,
			ct.registered_at, ct.payment_date
		FROM trip t
		LEFT JOIN country_trip ctr ON ctr.trip_id = t.id
		LEFT JOIN country co ON co.id = ctr.country_id
		LEFT JOIN client_trip ct ON ct.trip_id = t.id
		LEFT JOIN client cl ON cl.id = ct.client_id
		WHERE t.id = $1
		ORDER BY co.id, cl.id
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip: %w", err)
	}
	defer rows.Close()

	trips, err := collectTrips(rows)
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, domainErrors.ErrTripNotFound
	}

	return trips[0], nil
}

// Exists checks whether a trip exists. Non-positive IDs short-circuit to
// false without a round trip.
func (r *TripRepository) Exists(ctx context.Context, tripID int) (bool, error) {
	if tripID <= 0 {
		return false, nil
	}
	q := r.getQuerier(ctx)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM trip WHERE id = $1)`,
		tripID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check trip existence: %w", err)
	}

	return exists, nil
}

// collectTrips materializes trip aggregates from the wide join rows,
// keyed by trip ID so multiplied rows land on the same aggregate.
func collectTrips(rows pgx.Rows) ([]*entities.Trip, error) {
	result := make([]*entities.Trip, 0)
	index := make(map[int]int) // trip ID -> position in result

	for rows.Next() {
		var tr tripRow
		var pr participantRow

		if err := rows.Scan(
			&tr.id, &tr.name, &tr.description, &tr.dateFrom, &tr.dateTo, &tr.maxPeople,
			&tr.countryID, &tr.countryName,
			&pr.clientID, &pr.firstName, &pr.lastName, &pr.email, &pr.telephone, &pr.pesel,
			&pr.registeredAt, &pr.paymentDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip row: %w", err)
		}

		pos, seen := index[tr.id]
		if !seen {
			pos = len(result)
			index[tr.id] = pos
			result = append(result, tr.newTrip())
		}
		tr.addCountry(result[pos])
		pr.addParticipant(result[pos])
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trip rows: %w", err)
	}

	return result, nil
}
