/*
errors.go - Centralized error types for the scheduling engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers classify failures with errors.Is/errors.As.

ERROR CATEGORIES:
  1. Validation errors - Malformed input, rejected before any lock attempt
  2. Lock errors       - Write serialization timed out (fail-fast, no mutation)
  3. Conflict errors   - A legitimate overlapping shift exists
  4. Not-found errors  - Referenced record or employee does not exist
  5. Calculation errors - Degraded to zero values and logged, never fatal

PROPAGATION POLICY:
  Validation, conflict and not-found errors are returned as typed results
  to the immediate caller. Lock timeouts are returned distinctly so callers
  can decide to retry. Notification and read-side calculation failures are
  absorbed locally and never abort the surrounding operation.

SEE ALSO:
  - service.go: Returns these from write operations
  - conflict.go: ConflictWindow carried by ConflictError
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrLockTimeout is returned when the write lock cannot be acquired
	// within the configured bound. No mutation has occurred.
	ErrLockTimeout = errors.New("lock acquisition timed out")

	// ErrNotFound is returned when a referenced schedule record does not exist.
	ErrNotFound = errors.New("schedule record not found")

	// ErrEmployeeNotFound is returned when the identity lookup has no entry
	// for the referenced employee.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrShiftConflict is the sentinel behind ConflictError.
	ErrShiftConflict = errors.New("overlapping shift exists")

	// ErrInvalidTime is returned for unparseable time-of-day input.
	ErrInvalidTime = errors.New("invalid time of day")

	// ErrValidation is the sentinel behind ValidationError.
	ErrValidation = errors.New("invalid schedule request")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports a malformed request field. Fully recoverable by
// the caller: fix the field and resubmit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError reports the existing Active records that overlap a
// candidate shift. Not a system fault; carries enough data for the caller
// to resolve the conflict.
type ConflictError struct {
	EmployeeID EmployeeID
	Date       Date
	Windows    []ConflictWindow
}

func (e *ConflictError) Error() string {
	if len(e.Windows) == 1 {
		w := e.Windows[0]
		return fmt.Sprintf("employee %s already scheduled %s %s-%s (record %s)",
			e.EmployeeID, e.Date, w.Start, w.End, w.ScheduleID)
	}
	return fmt.Sprintf("employee %s has %d overlapping shifts on %s",
		e.EmployeeID, len(e.Windows), e.Date)
}

func (e *ConflictError) Unwrap() error { return ErrShiftConflict }

// CalculationError reports unparseable time input on a derived-value path.
// It is logged and degraded to a zero value, never surfaced to the caller.
type CalculationError struct {
	Input string
	Err   error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("work-hour calculation failed for %q: %v", e.Input, e.Err)
}

func (e *CalculationError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockTimeout)
}

// IsClientError returns true if the error is due to invalid client input
// or a legitimate scheduling conflict.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrShiftConflict) ||
		errors.Is(err, ErrInvalidTime)
}

// IsNotFound returns true if the error indicates a missing record or employee.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrEmployeeNotFound)
}
