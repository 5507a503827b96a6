// Package errors provides error handling for fmtls.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrParseFailure) {
//	    // handle formatter rejection
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Mark      = crdb.Mark
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the protocol state machine and formatter boundary.
// Use these with errors.Is() for type-safe error checking, and
// errors.Wrap() to add context while preserving the class.
var (
	// ErrProtocolViolation indicates the client and server views of a
	// document have desynchronized. Handling terminates after this is
	// reported; continuing would risk silently corrupting the document.
	ErrProtocolViolation = New("protocol violation")

	// ErrParseFailure indicates the formatter rejected the source text
	ErrParseFailure = New("parse failure")

	// ErrShutdownContention indicates the shutdown flag could not be
	// acquired without blocking. The client is expected to retry.
	ErrShutdownContention = New("shutdown flag contended")

	// ErrNotOpen indicates the requested document has no registry entry
	ErrNotOpen = New("document not open")
)

// IsProtocolViolation reports whether err is or wraps ErrProtocolViolation.
// Violations are fatal: the transport driver ends the event loop on them.
func IsProtocolViolation(err error) bool {
	return err != nil && Is(err, ErrProtocolViolation)
}

// IsParseFailure reports whether err is or wraps ErrParseFailure
func IsParseFailure(err error) bool {
	return err != nil && Is(err, ErrParseFailure)
}

// IsShutdownContention reports whether err is or wraps ErrShutdownContention
func IsShutdownContention(err error) bool {
	return err != nil && Is(err, ErrShutdownContention)
}
