// Package apperr carries typed infrastructure failures from the storage
// layer up to the HTTP boundary. Call sites tag the failure kind once,
// instead of every layer re-parsing driver error text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an infrastructure failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnection
	KindInit
	KindQuery
)

// Code returns the stable machine-readable error code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindConnection:
		return "DATABASE_CONNECTION_ERROR"
	case KindInit:
		return "DATABASE_INITIALIZATION_ERROR"
	case KindQuery:
		return "DATABASE_QUERY_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// Status returns the HTTP status appropriate for the kind: 503 when the
// database is unavailable, 500 otherwise.
func (k Kind) Status() int {
	switch k {
	case KindConnection, KindInit:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is an infrastructure failure with a tagged kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *Error) Unwrap() error { return e.Err }

// Connection tags a failure to reach the database.
func Connection(op string, err error) *Error {
	return &Error{Kind: KindConnection, Op: op, Err: err}
}

// Init tags a failure while preparing the database (migration, pool setup).
func Init(op string, err error) *Error {
	return &Error{Kind: KindInit, Op: op, Err: err}
}

// Query tags a failed statement or scan.
func Query(op string, err error) *Error {
	return &Error{Kind: KindQuery, Op: op, Err: err}
}

// KindOf extracts the tagged kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
