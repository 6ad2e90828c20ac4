package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the charter booking domain.
var (
	// ErrInvalidRequest indicates malformed or semantically invalid input.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrValidationFailed indicates a booking submission violated one or more rules.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidCatalog indicates an aircraft catalog entry breaks its invariants.
	ErrInvalidCatalog = errors.New("invalid aircraft catalog")

	// ErrAirportNotFound indicates an airport code is not in the directory.
	ErrAirportNotFound = errors.New("airport not found")

	// ErrPersistenceFailed indicates the mandatory booking write did not complete.
	ErrPersistenceFailed = errors.New("booking persistence failed")

	// ErrNotificationWriteFailed indicates the best-effort notification write failed.
	ErrNotificationWriteFailed = errors.New("notification write failed")

	// ErrDuplicateSubmission indicates a booking with the same idempotency key already exists.
	ErrDuplicateSubmission = errors.New("duplicate booking submission")

	// ErrPaymentProvider indicates the payments API rejected a checkout session request.
	ErrPaymentProvider = errors.New("payment provider error")
)

// ValidationError represents a single field-level rule violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors accumulates every violation found in a submission.
// Checks never short-circuit so the caller can render a complete correction list.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return ErrValidationFailed.Error()
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(v.Messages(), "; ")
}

// Unwrap allows errors.Is(err, ErrValidationFailed).
func (v *ValidationErrors) Unwrap() error {
	return ErrValidationFailed
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Messages returns the messages in the order the checks ran.
func (v *ValidationErrors) Messages() []string {
	msgs := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		msgs[i] = e.Message
	}
	return msgs
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// PersistenceError wraps a datastore failure for a given table.
type PersistenceError struct {
	// Table is the datastore table the write targeted
	Table string

	// Err is the underlying datastore error
	Err error
}

// NewPersistenceError creates a PersistenceError.
func NewPersistenceError(table string, err error) *PersistenceError {
	return &PersistenceError{Table: table, Err: err}
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("insert into %s: %v", e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is reports ErrPersistenceFailed for every PersistenceError.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistenceFailed
}

// PaymentError carries the payments API message verbatim.
type PaymentError struct {
	// StatusCode is the HTTP status returned by the payments API (0 for transport errors)
	StatusCode int

	// Message is the provider's human readable message
	Message string
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	return e.Message
}

// Is reports ErrPaymentProvider for every PaymentError.
func (e *PaymentError) Is(target error) bool {
	return target == ErrPaymentProvider
}

// WrapInvalidRequest wraps ErrInvalidRequest with a formatted message.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest checks if the error is or wraps ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsValidation checks if the error is or wraps ErrValidationFailed.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsPersistence checks if the error is or wraps ErrPersistenceFailed.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistenceFailed)
}

// IsDuplicateSubmission checks if the error is or wraps ErrDuplicateSubmission.
func IsDuplicateSubmission(err error) bool {
	return errors.Is(err, ErrDuplicateSubmission)
}
