// Package tstruct provides the public API for the tstruct schema tool.
// It offers a clean, ergonomic interface for parsing CREATE TABLE sources
// into schema models, generating Go code, rendering SQL, and applying
// schemas to a database.
package tstruct

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
// Use errors.Is() to check for these errors.
var (
	// ErrMissingDatabaseURL is returned when an operation needs a database
	// but no database URL was provided.
	ErrMissingDatabaseURL = errors.New("tstruct: database URL required")

	// ErrConnectionFailed is returned when the database connection fails.
	ErrConnectionFailed = errors.New("tstruct: connection failed")

	// ErrUnsupportedDialect is returned when the SQL dialect is not supported.
	ErrUnsupportedDialect = errors.New("tstruct: unsupported dialect")

	// ErrNilTable is returned when a nil schema model is passed to an
	// operation that requires one.
	ErrNilTable = errors.New("tstruct: nil table")
)

// ConnectionError provides detailed information about a failed database
// connection. The URL is redacted before being stored.
type ConnectionError struct {
	// URL is the redacted connection URL.
	URL string

	// Dialect is the dialect name used for the connection attempt.
	Dialect string

	// Cause is the underlying error from the database driver.
	Cause error
}

// Error returns a formatted error message.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("tstruct: failed to connect to %s database at %s: %v",
		e.Dialect, e.URL, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnectionFailed
}
