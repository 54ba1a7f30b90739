// Package shared holds the error taxonomy used across the storefront
// services. Every failure surfaced by a service is one of these kinds so
// the HTTP layer can map it to a distinct status class.
package shared

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationError indicates malformed or missing input. No side effect
// has occurred when it is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a referenced entity is absent.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
	}
	return e.Entity + " not found"
}

// NotFound builds a NotFoundError for the given entity.
func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError indicates a state conflict: insufficient stock, a lost
// stock-decrement race, or a unique-constraint violation. Field names the
// conflicting column for constraint violations; ProductID, Available and
// Requested are set for stock conflicts.
type ConflictError struct {
	Reason    string
	Field     string
	ProductID int64
	Available int
	Requested int
}

func (e *ConflictError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("conflict: %s (%s)", e.Reason, e.Field)
	}
	return "conflict: " + e.Reason
}

// InsufficientStock builds the stock ConflictError.
func InsufficientStock(productID int64, available, requested int) error {
	return &ConflictError{
		Reason:    "insufficient stock",
		ProductID: productID,
		Available: available,
		Requested: requested,
	}
}

// DependencyError indicates an external service was unavailable or
// returned no usable result.
type DependencyError struct {
	Service string
	Reason  string
	Err     error
}

func (e *DependencyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Reason, e.Err)
	}
	return e.Service + ": " + e.Reason
}

func (e *DependencyError) Unwrap() error { return e.Err }

// Dependency builds a DependencyError.
func Dependency(service, reason string, err error) error {
	return &DependencyError{Service: service, Reason: reason, Err: err}
}

// TransactionError indicates the persistence phase failed after side
// effects began. It is only returned after a full rollback and preserves
// the original cause.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return "transaction failed: " + e.Err.Error()
}

func (e *TransactionError) Unwrap() error { return e.Err }

const uniqueViolationCode = "23505"

// ConstraintError converts a postgres unique-violation into a typed
// ConflictError naming the field. Other errors pass through unchanged.
func ConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	field := constraintField(pgErr.ConstraintName)
	return &ConflictError{Reason: "duplicate " + field, Field: field}
}

func constraintField(constraint string) string {
	switch constraint {
	case "customers_email_key":
		return "email"
	case "customers_tax_id_key":
		return "tax_id"
	default:
		if constraint == "" {
			return "unique field"
		}
		return constraint
	}
}
