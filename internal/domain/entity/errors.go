package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the domain and the upstream API
// error taxonomy. The fetcher maps HTTP responses onto these so that
// callers can classify failures without knowing about transport
// details.
var (
	// ErrNotFound indicates that a requested resource does not exist
	// upstream (deleted post, unknown notification, etc.)
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden indicates the signed-in account has no access to the
	// requested resource (e.g. membership-only media)
	ErrForbidden = errors.New("access forbidden")

	// ErrAuthExpired indicates the bearer credential has expired and
	// must be renewed before the request can succeed
	ErrAuthExpired = errors.New("authentication expired")

	// ErrServerError indicates an upstream internal server error
	ErrServerError = errors.New("upstream server error")
)

// ParseError reports a raw payload that is missing a required field or
// carries an unexpected shape. It names the offending field so that
// payload regressions upstream are diagnosable from logs.
type ParseError struct {
	Record string
	Field  string
	Reason string
}

// Error returns a formatted message for the parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: field %q: %s", e.Record, e.Field, e.Reason)
}

// missingField builds the ParseError used by entity constructors when a
// required discriminant or identity field is absent.
func missingField(record, field string) *ParseError {
	return &ParseError{Record: record, Field: field, Reason: "required field missing"}
}
