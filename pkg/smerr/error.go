// Package smerr implements the error taxonomy the core library surfaces
// at its API boundary: a single Kind-tagged error type carrying a wrapped
// cause, an ordered operation-context chain, and a structured detail map.
//
// The shape follows the teacher's baseError embedding pattern (cause +
// message + structured details, With* fluent builders, errors.As-based
// extraction) but collapses the per-domain subtypes (StorageError,
// IndexError, ValidationError) into the single Kind enum spec.md §7
// mandates, since here the taxonomy is fixed by the specification rather
// than open-ended per subsystem.
package smerr

import (
	"errors"
	"strings"
)

// Error is the structured error type returned at the core's API boundary.
type Error struct {
	Kind    Kind
	message string
	cause   error
	context []string // operation-context tags, e.g. "during read", outer-first
	Detail  map[string]any
}

// New creates an Error of the given kind with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, message: message}
}

// Wrap creates an Error of the given kind wrapping cause.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, message: message, cause: cause}
}

// WithContext appends an operation-context tag ("during read", "during
// segment open"). Tags are rendered outer-first, matching the order they
// were added.
func (e *Error) WithContext(tag string) *Error {
	e.context = append(e.context, tag)
	return e
}

// WithDetail attaches a structured detail, lazily allocating the map.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Detail == nil {
		e.Detail = make(map[string]any)
	}
	e.Detail[key] = value
	return e
}

// WithSubKind is a convenience for Malformed errors, recording which
// lexical rule was violated.
func (e *Error) WithSubKind(subKind string) *Error {
	return e.WithDetail("subKind", subKind)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.message)
	for _, tag := range e.context {
		b.WriteString(" (")
		b.WriteString(tag)
		b.WriteString(")")
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

// Unwrap enables errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, smerr.New(smerr.NotFound, "")) style checks work without
// requiring callers to build a full Error value.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// Is is a package-level convenience for errors.Is(err, New(kind, "")).
func Is(err error, kind Kind) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == kind
}

// As extracts an *Error from err's chain, if present.
func As(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// SubKind returns the "subKind" detail of a Malformed error, if set.
func SubKind(err error) string {
	se, ok := As(err)
	if !ok || se.Detail == nil {
		return ""
	}
	sub, _ := se.Detail["subKind"].(string)
	return sub
}
