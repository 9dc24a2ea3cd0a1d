package entities

import "time"

// Country is a trip destination. Small value type, compared by ID.
type Country struct {
	ID   int
	Name string
}

// Registration associates one client with one trip.
// RegisteredAt and PaymentDate use the integer encoding
// year*10000 + month*100 + day; PaymentDate is nil until paid.
type Registration struct {
	Client       *Client
	TripID       int
	RegisteredAt int
	PaymentDate  *int
}

// ClientTrip is one of a client's registrations viewed from the client
// side: the trip aggregate plus the registration fields.
type ClientTrip struct {
	Trip         *Trip
	RegisteredAt int
	PaymentDate  *int
}

// Trip is an aggregate: the trip record plus its destination countries and
// participant registrations, reconstructed from normalized storage.
// Read-only from this service's perspective.
type Trip struct {
	id           int
	name         string
	description  string
	dateFrom     time.Time
	dateTo       time.Time
	maxPeople    int
	destinations []Country
	participants []Registration

	destinationIDs map[int]struct{}
	participantIDs map[int]struct{}
}

// ReconstructTrip rebuilds a Trip aggregate shell from stored data.
// Destinations and participants are attached afterwards via AddDestination
// and AddParticipant while iterating joined rows.
func ReconstructTrip(id int, name, description string, dateFrom, dateTo time.Time, maxPeople int) *Trip {
	return &Trip{
		id:             id,
		name:           name,
		description:    description,
		dateFrom:       dateFrom,
		dateTo:         dateTo,
		maxPeople:      maxPeople,
		destinationIDs: make(map[int]struct{}),
		participantIDs: make(map[int]struct{}),
	}
}

// ID returns the trip identifier.
func (t *Trip) ID() int { return t.id }

// Name returns the trip name.
func (t *Trip) Name() string { return t.name }

// Description returns the trip description.
func (t *Trip) Description() string { return t.description }

// DateFrom returns the trip start date.
func (t *Trip) DateFrom() time.Time { return t.dateFrom }

// DateTo returns the trip end date.
func (t *Trip) DateTo() time.Time { return t.dateTo }

// MaxPeople returns the participant capacity.
func (t *Trip) MaxPeople() int { return t.maxPeople }

// Destinations returns the deduplicated destination list in first-seen order.
func (t *Trip) Destinations() []Country { return t.destinations }

// Participants returns the deduplicated participant registrations.
func (t *Trip) Participants() []Registration { return t.participants }

// AddDestination appends a country unless one with the same ID is already
// attached. Joined rows multiply destinations per participant, so the set
// check keeps the list deduplicated regardless of row order.
func (t *Trip) AddDestination(c Country) {
	if _, ok := t.destinationIDs[c.ID]; ok {
		return
	}
	t.destinationIDs[c.ID] = struct{}{}
	t.destinations = append(t.destinations, c)
}

// AddParticipant appends a registration unless the client is already
// attached, keyed by client ID.
func (t *Trip) AddParticipant(r Registration) {
	if r.Client == nil {
		return
	}
	if _, ok := t.participantIDs[r.Client.ID()]; ok {
		return
	}
	t.participantIDs[r.Client.ID()] = struct{}{}
	t.participants = append(t.participants, r)
}

// HasCapacity reports whether one more participant fits within MaxPeople.
func (t *Trip) HasCapacity() bool {
	return len(t.participants)+1 <= t.maxPeople
}
