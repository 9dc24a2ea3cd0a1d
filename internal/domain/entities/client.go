// Package entities contains domain entities with identity and lifecycle.
// Entities are compared by their ID, not by their attributes, and do not
// depend on infrastructure (no DB, no HTTP).
package entities

import (
	"regexp"
	"strings"

	"github.com/mzurek/tripdesk/internal/domain/errors"
)

// Email validation regex (simplified - real systems use more complex validation)
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// PESEL is an 11-digit national identification number.
var peselRegex = regexp.MustCompile(`^\d{11}$`)

// Telephone: optional leading +, then digits, optionally separated by
// spaces, dashes or parentheses. 6 to 20 characters after the +.
var phoneRegex = regexp.MustCompile(`^\+?[\d(][\d ()\-]{4,18}\d$`)

// Client represents a registered client of the trip service.
// Clients are immutable once created: there are no update or delete
// operations, only creation and registration to trips.
type Client struct {
	id        int // Identity, assigned by storage on insert
	firstName string
	lastName  string
	email     string
	telephone string
	pesel     string
}

// NewClient creates a Client with validation. The ID stays zero until the
// repository persists the client and reconstructs it with the assigned ID.
//
// Business rules:
//   - First and last name are required
//   - Email must be a valid format
//   - Telephone must look like a phone number
//   - PESEL must be 11 digits (uniqueness is checked by the repository)
func NewClient(firstName, lastName, email, telephone, pesel string) (*Client, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.ToLower(strings.TrimSpace(email))
	telephone = strings.TrimSpace(telephone)
	pesel = strings.TrimSpace(pesel)

	var verrs errors.ValidationErrors
	if firstName == "" {
		verrs.Add("firstName", "first name is required")
	}
	if lastName == "" {
		verrs.Add("lastName", "last name is required")
	}
	if !emailRegex.MatchString(email) {
		verrs.Add("email", "invalid email format")
	}
	if telephone == "" {
		verrs.Add("telephone", "telephone is required")
	} else if !phoneRegex.MatchString(telephone) {
		verrs.Add("telephone", "invalid telephone format")
	}
	if verrs.HasErrors() {
		return nil, verrs
	}
	if !peselRegex.MatchString(pesel) {
		return nil, errors.ErrInvalidPesel
	}

	return &Client{
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		telephone: telephone,
		pesel:     pesel,
	}, nil
}

// ReconstructClient rebuilds a Client from stored data.
// Used by the repository layer to hydrate entities; no validation.
func ReconstructClient(id int, firstName, lastName, email, telephone, pesel string) *Client {
	return &Client{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		telephone: telephone,
		pesel:     pesel,
	}
}

// ID returns the client identifier (zero until persisted).
func (c *Client) ID() int { return c.id }

// FirstName returns the client's first name.
func (c *Client) FirstName() string { return c.firstName }

// LastName returns the client's last name.
func (c *Client) LastName() string { return c.lastName }

// Email returns the client's email address.
func (c *Client) Email() string { return c.email }

// Telephone returns the client's telephone number.
func (c *Client) Telephone() string { return c.telephone }

// Pesel returns the client's PESEL number (unique business key).
func (c *Client) Pesel() string { return c.pesel }

// ValidPesel reports whether s looks like a PESEL number.
func ValidPesel(s string) bool {
	return peselRegex.MatchString(s)
}

// ValidPhone reports whether s looks like a telephone number.
func ValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}
