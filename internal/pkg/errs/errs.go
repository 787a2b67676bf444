// Package errs provides standardized error types for the proxy-purchase application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error kind follows the same shape:
//   - A sentinel error variable (e.g. ErrValueIsRequired) usable with errors.Is
//   - A struct type carrying the error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for error-chain support
//
// Validation kinds (ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange) signal
// malformed input the caller can correct. Domain-protocol kinds (InvalidTransition,
// QuoteExpired, QuoteAlreadyResolved, PreconditionFailed) signal a violation of the
// order or quote lifecycle rules. Conflict signals an optimistic-concurrency loss
// that is safe to retry after re-reading state. Unavailable signals an
// infrastructure failure and is the only kind where automatic retry with backoff
// is appropriate.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired      = errors.New("value is required")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrObjectNotFound       = errors.New("object not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrQuoteExpired         = errors.New("quote expired")
	ErrQuoteAlreadyResolved = errors.New("quote already resolved")
	ErrPreconditionFailed   = errors.New("precondition failed")
	ErrConflict             = errors.New("concurrent modification conflict")
	ErrUnavailable          = errors.New("store unavailable")
)

// sanitize collapses newlines so formatted errors stay on a single log line.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates that a provided value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value lies outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsOutOfRange, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsOutOfRange, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates that a persisted object could not be located.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidTransitionError indicates a status change that is not permitted
// by the order state machine from the current status.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// QuoteExpiredError indicates an approval attempt on a quote whose
// validity deadline has passed.
type QuoteExpiredError struct {
	QuoteID    string
	ValidUntil string
}

func NewQuoteExpiredError(quoteID, validUntil string) *QuoteExpiredError {
	return &QuoteExpiredError{QuoteID: quoteID, ValidUntil: validUntil}
}

func (e *QuoteExpiredError) Error() string {
	return sanitize(fmt.Sprintf("%s: quote %s was valid until %s", ErrQuoteExpired, e.QuoteID, e.ValidUntil))
}

func (e *QuoteExpiredError) Unwrap() error {
	return ErrQuoteExpired
}

// QuoteAlreadyResolvedError indicates an approval or rejection attempt
// on a quote that has already left the pending state.
type QuoteAlreadyResolvedError struct {
	QuoteID string
	State   string
}

func NewQuoteAlreadyResolvedError(quoteID, state string) *QuoteAlreadyResolvedError {
	return &QuoteAlreadyResolvedError{QuoteID: quoteID, State: state}
}

func (e *QuoteAlreadyResolvedError) Error() string {
	return sanitize(fmt.Sprintf("%s: quote %s is %s", ErrQuoteAlreadyResolved, e.QuoteID, e.State))
}

func (e *QuoteAlreadyResolvedError) Unwrap() error {
	return ErrQuoteAlreadyResolved
}

// PreconditionFailedError indicates a transition whose business precondition
// does not hold, e.g. completing payment without a completed payment record.
type PreconditionFailedError struct {
	Reason string
	Cause  error
}

func NewPreconditionFailedError(reason string) *PreconditionFailedError {
	return &PreconditionFailedError{Reason: reason}
}

func NewPreconditionFailedErrorWithCause(reason string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{Reason: reason, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrPreconditionFailed, e.Reason, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrPreconditionFailed, e.Reason))
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// ConflictError indicates that a conditional write lost an optimistic-concurrency
// race. The caller may re-read current state and reapply if still desired.
type ConflictError struct {
	ParamName string
	ID        any
}

func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func (e *ConflictError) Error() string {
	return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v", ErrConflict, e.ParamName, e.ID))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// UnavailableError indicates a store or infrastructure failure, as opposed
// to a domain validation failure. Safe to retry with backoff.
type UnavailableError struct {
	Operation string
	Cause     error
}

func NewUnavailableError(operation string, cause error) *UnavailableError {
	return &UnavailableError{Operation: operation, Cause: cause}
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrUnavailable, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrUnavailable, e.Operation))
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// Kind returns a stable machine-readable name for the error's taxonomy kind.
// The HTTP adapter includes it in responses so the presentation layer can show
// the specific failure rather than a generic message. Unknown errors map to
// "INTERNAL".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValueIsRequired), errors.Is(err, ErrValueIsInvalid), errors.Is(err, ErrValueIsOutOfRange):
		return "VALIDATION"
	case errors.Is(err, ErrObjectNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, ErrQuoteExpired):
		return "QUOTE_EXPIRED"
	case errors.Is(err, ErrQuoteAlreadyResolved):
		return "QUOTE_ALREADY_RESOLVED"
	case errors.Is(err, ErrPreconditionFailed):
		return "PRECONDITION_FAILED"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	default:
		return "INTERNAL"
	}
}
