// Package errors defines domain-specific error types.
// Using typed errors (instead of strings) lets callers handle specific cases
// without string matching.
//
// Pattern: Sentinel Errors + Custom Error Types
package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors for domain lookups and validation
var (
	// Entity errors
	ErrInvalidEntityID = errors.New("invalid entity ID")
	ErrEntityNotFound  = errors.New("entity not found")

	// Client errors
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidPesel   = errors.New("invalid PESEL number")

	// Trip errors
	ErrTripNotFound = errors.New("trip not found")
)

// Business rule codes used across layers.
const (
	RulePeselAlreadyRegistered = "PESEL_ALREADY_REGISTERED"
	RuleTripCapacityExceeded   = "TRIP_CAPACITY_EXCEEDED"
	RuleClientAlreadyOnTrip    = "CLIENT_ALREADY_REGISTERED"
)

// DomainError wraps an error with a machine-readable code and a
// human-readable message while keeping the error chain intact.
type DomainError struct {
	Code    string // Machine-readable error code (e.g., "CLIENT_NOT_FOUND")
	Message string // Human-readable message
	Err     error  // Underlying error (for error chains)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation failure with field-level detail.
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // What went wrong
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(e))
}

// Add appends a validation error.
func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// BusinessRuleViolation represents a violation of a business rule.
// Unlike validation errors (which are about data shape), these are about
// domain invariants: duplicate PESEL, trip capacity.
type BusinessRuleViolation struct {
	Rule    string                 // Rule that was violated (e.g., RuleTripCapacityExceeded)
	Message string                 // Human-readable explanation
	Context map[string]interface{} // Additional context (e.g., {"max_people": 20})
}

// Error implements the error interface.
func (e BusinessRuleViolation) Error() string {
	return fmt.Sprintf("business rule violation [%s]: %s", e.Rule, e.Message)
}

// NewBusinessRuleViolation creates a new business rule violation error.
func NewBusinessRuleViolation(rule, message string, context map[string]interface{}) *BusinessRuleViolation {
	return &BusinessRuleViolation{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// Helper functions for common error checking

// IsNotFound checks if an error marks a missing entity (generic or typed).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrTripNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var valErr ValidationError
	var valErrs ValidationErrors
	return errors.As(err, &valErr) || errors.As(err, &valErrs)
}

// IsBusinessRuleViolation checks if an error is a business rule violation.
func IsBusinessRuleViolation(err error) bool {
	var brv *BusinessRuleViolation
	return errors.As(err, &brv)
}

// RuleOf returns the violated rule code, or "" when the error is not a
// business rule violation.
func RuleOf(err error) string {
	var brv *BusinessRuleViolation
	if errors.As(err, &brv) {
		return brv.Rule
	}
	return ""
}
