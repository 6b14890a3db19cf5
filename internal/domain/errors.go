// Package domain holds the input, result, and rule types shared by the tax,
// benefit, comparison, and radar components, together with the typed error
// scheme used across the engine boundary.
package domain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the failure class surfaced to callers.
type ErrorCode string

const (
	ErrCodeInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrCodeUnsupportedYear    ErrorCode = "UNSUPPORTED_YEAR"
	ErrCodeUnsupportedState   ErrorCode = "UNSUPPORTED_STATE"
	ErrCodeComputationTimeout ErrorCode = "COMPUTATION_TIMEOUT"
)

// Error is a structured engine error. Callers match on Code via errors.As
// or on the sentinel helpers below via errors.Is.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is treats two engine errors with the same code as equivalent, so
// errors.Is(err, domain.ErrInvalidInput("")) style checks work through the
// exported sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewInvalidInput reports a malformed or out-of-range household field. The
// request is rejected before any computation runs.
func NewInvalidInput(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NewUnsupportedYear reports that no rule tables exist for the requested
// tax year.
func NewUnsupportedYear(year int) *Error {
	return &Error{Code: ErrCodeUnsupportedYear, Message: fmt.Sprintf("no rule tables for tax year %d", year)}
}

// NewUnsupportedState reports that no benefit parameter tables exist for
// the requested state code.
func NewUnsupportedState(state string) *Error {
	return &Error{Code: ErrCodeUnsupportedState, Message: fmt.Sprintf("no benefit tables for state %q", state)}
}

// NewComputationTimeout reports that an evaluation exceeded its deadline.
// Any prior radar snapshot is left untouched when this is returned.
func NewComputationTimeout(cause error) *Error {
	return &Error{Code: ErrCodeComputationTimeout, Message: "evaluation exceeded its time budget", Err: cause}
}

// IsCode reports whether err carries the given engine error code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
