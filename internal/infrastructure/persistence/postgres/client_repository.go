package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzurek/tripdesk/internal/application/ports"
	"github.com/mzurek/tripdesk/internal/domain/entities"
	domainErrors "github.com/mzurek/tripdesk/internal/domain/errors"
)

// Compile-time check
var _ ports.ClientRepository = (*ClientRepository)(nil)

// querier abstracts over pool and transaction so repository methods work
// both inside and outside a UnitOfWork.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ClientRepository implements ports.ClientRepository.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// getQuerier returns the transaction from the context, or the pool.
func (r *ClientRepository) getQuerier(ctx context.Context) querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// Exists checks whether a client with the given ID exists.
func (r *ClientRepository) Exists(ctx context.Context, clientID int) (bool, error) {
	if clientID <= 0 {
		return false, nil
	}
	q := r.getQuerier(ctx)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM client WHERE id = $1)`,
		clientID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check client existence: %w", err)
	}

	return exists, nil
}

// FindByID loads a client by ID.
func (r *ClientRepository) FindByID(ctx context.Context, clientID int) (*entities.Client, error) {
	if clientID <= 0 {
		return nil, domainErrors.ErrClientNotFound
	}
	q := r.getQuerier(ctx)

	var (
		id                                          int
		firstName, lastName, email, telephone, pesel string
	)
	err := q.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, telephone, pesel
		FROM client
		WHERE id = $1
	`, clientID).Scan(&id, &firstName, &lastName, &email, &telephone, &pesel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	return entities.ReconstructClient(id, firstName, lastName, email, telephone, pesel), nil
}

// ExistsByPesel checks existence by PESEL. Blank input short-circuits to
// false without a round trip.
func (r *ClientRepository) ExistsByPesel(ctx context.Context, pesel string) (bool, error) {
	if pesel == "" {
		return false, nil
	}
	q := r.getQuerier(ctx)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM client WHERE pesel = $1)`,
		pesel,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pesel existence: %w", err)
	}

	return exists, nil
}

// Create inserts the client and returns it with the assigned ID.
func (r *ClientRepository) Create(ctx context.Context, client *entities.Client) (*entities.Client, error) {
	q := r.getQuerier(ctx)

	var id int
	err := q.QueryRow(ctx, `
		INSERT INTO client (first_name, last_name, email, telephone, pesel)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		client.FirstName(),
		client.LastName(),
		client.Email(),
		client.Telephone(),
		client.Pesel(),
	).Scan(&id)
	if err != nil {
		// The UNIQUE constraint backs the uniqueness check against
		// concurrent inserts.
		if isUniqueViolation(err, "client_pesel") {
			return nil, domainErrors.NewBusinessRuleViolation(
				domainErrors.RulePeselAlreadyRegistered,
				fmt.Sprintf("client with PESEL %s already exists", client.Pesel()),
				map[string]interface{}{"pesel": client.Pesel()},
			)
		}
		return nil, fmt.Errorf("failed to insert client: %w", err)
	}

	return entities.ReconstructClient(
		id,
		client.FirstName(),
		client.LastName(),
		client.Email(),
		client.Telephone(),
		client.Pesel(),
	), nil
}

// ListTrips returns the client's registrations with their trips and
// destinations. A missing client yields nil; a client with no
// registrations yields an empty slice.
func (r *ClientRepository) ListTrips(ctx context.Context, clientID int) ([]entities.ClientTrip, error) {
	exists, err := r.Exists(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	q := r.getQuerier(ctx)

	// One row per (registration, destination country); countries are
	// folded back into their trip while scanning.
	rows, err := q.Query(ctx, `
		SELECT
			t.id, t.name, t.description, t.date_from, t.date_to, t.max_people,
			ct.registered_at, ct.payment_date,
			c.id, c.name
		FROM client_trip ct
		JOIN trip t ON t.id = ct.trip_id
		LEFT JOIN country_trip ctr ON ctr.trip_id = t.id
		LEFT JOIN country c ON c.id = ctr.country_id
		WHERE ct.client_id = $1
		ORDER BY ct.registered_at, t.id, c.id
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query client trips: %w", err)
	}
	defer rows.Close()

	result := make([]entities.ClientTrip, 0)
	index := make(map[int]int) // trip ID -> position in result

	for rows.Next() {
		var row tripRow
		var registeredAt int
		var paymentDate *int

		if err := rows.Scan(
			&row.id, &row.name, &row.description, &row.dateFrom, &row.dateTo, &row.maxPeople,
			&registeredAt, &paymentDate,
			&row.countryID, &row.countryName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client trip row: %w", err)
		}

		pos, seen := index[row.id]
		if !seen {
			pos = len(result)
			index[row.id] = pos
			result = append(result, entities.ClientTrip{
				Trip:         row.newTrip(),
				RegisteredAt: registeredAt,
				PaymentDate:  paymentDate,
			})
		}
		row.addCountry(result[pos].Trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read client trip rows: %w", err)
	}

	return result, nil
}

// CreateRegistration inserts a registration only while the trip still has
// a free seat. The count check and the insert run in one statement, so a
// concurrent registration cannot slip between them.
func (r *ClientRepository) CreateRegistration(ctx context.Context, reg entities.Registration) (bool, error) {
	q := r.getQuerier(ctx)

	tag, err := q.Exec(ctx, `
		INSERT INTO client_trip (client_id, trip_id, registered_at, payment_date)
		SELECT $1, t.id, $3, $4
		FROM trip t
		WHERE t.id = $2
		  AND (SELECT COUNT(*) FROM client_trip ct WHERE ct.trip_id = t.id) < t.max_people
	`,
		reg.Client.ID(),
		reg.TripID,
		reg.RegisteredAt,
		reg.PaymentDate,
	)
	if err != nil {
		return false, registrationWriteError(err, reg)
	}

	return tag.RowsAffected() > 0, nil
}

// registrationWriteError maps a failed registration insert to a domain
// error. The statement carries two foreign keys, so the violated
// constraint decides which entity is reported missing.
func registrationWriteError(err error, reg entities.Registration) error {
	if isUniqueViolation(err, "client_trip_pkey") {
		return domainErrors.NewBusinessRuleViolation(
			domainErrors.RuleClientAlreadyOnTrip,
			fmt.Sprintf("client %d is already registered to trip %d", reg.Client.ID(), reg.TripID),
			map[string]interface{}{
				"client_id": reg.Client.ID(),
				"trip_id":   reg.TripID,
			},
		)
	}
	if isForeignKeyViolation(err, "trip_id") {
		return domainErrors.ErrTripNotFound
	}
	if isForeignKeyViolation(err, "") {
		return domainErrors.ErrClientNotFound
	}
	return fmt.Errorf("failed to insert registration: %w", err)
}
