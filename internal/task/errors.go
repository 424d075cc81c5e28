package task

import (
	"errors"
	"fmt"
)

// ErrNoFieldsToUpdate is returned when a sparse update carries no changes.
var ErrNoFieldsToUpdate = errors.New("no fields to update")

// ValidationError rejects bad input before any remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError is a generic remote read/write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IndexRequiredError means a query needs a server-side composite index.
// ConsoleURL, when present, points at the console page that creates it.
type IndexRequiredError struct {
	ConsoleURL string
	Err        error
}

func (e *IndexRequiredError) Error() string {
	if e.ConsoleURL != "" {
		return fmt.Sprintf("query requires a composite index (create it at %s)", e.ConsoleURL)
	}
	return "query requires a composite index"
}

func (e *IndexRequiredError) Unwrap() error { return e.Err }

// AuthKind distinguishes identity-provider failures that need different
// user-facing messages.
type AuthKind string

const (
	AuthCancelled AuthKind = "cancelled"
	AuthNetwork   AuthKind = "network"
	AuthOther     AuthKind = "other"
)

// AuthError is an identity-provider failure.
type AuthError struct {
	Kind AuthKind
	Err  error
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case AuthCancelled:
		return "sign-in cancelled"
	case AuthNetwork:
		return "network failure during sign-in"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "authentication failed"
	}
}

func (e *AuthError) Unwrap() error { return e.Err }
