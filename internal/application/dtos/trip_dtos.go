package dtos

// CountryDTO is a destination country as exposed by the API.
type CountryDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TripDTO is a trip as exposed by the trip listing.
type TripDTO struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	DateFrom    string       `json:"date_from"`
	DateTo      string       `json:"date_to"`
	MaxPeople   int          `json:"max_people"`
	Countries   []CountryDTO `json:"countries"`
}

// RegistrationDTO is the result of registering a client to a trip.
type RegistrationDTO struct {
	ClientID     int `json:"client_id"`
	TripID       int `json:"trip_id"`
	RegisteredAt int `json:"registered_at"`
}
