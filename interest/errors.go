/*
errors.go - Centralized error types for the interest engine

PURPOSE:
  All error types in one place. The engine is deliberately fail-soft for
  calculation input (invalid dates, missing jurisdictions and rate gaps yield
  zero-valued results plus a logged warning, never a panic), so the errors
  here cover the few cases callers must be able to branch on.

ERROR CATEGORIES:
  1. Structural errors - a payment date that no segment contains
  2. Rate-data errors - malformed or unordered rate tables at load time

USAGE:
  if errors.Is(err, interest.ErrPaymentOutsideSegments) {
      // surface a user-facing validation error; the breakdown is unchanged
  }
*/
package interest

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrPaymentOutsideSegments is returned when a payment date falls outside
	// every segment of the breakdown. The condition is explicit so the
	// orchestrator can report it instead of dropping money silently.
	ErrPaymentOutsideSegments = errors.New("payment date outside all interest segments")

	// ErrUnorderedRatePeriods is returned when a loaded rate table is not
	// sorted ascending by start date or its periods overlap.
	ErrUnorderedRatePeriods = errors.New("rate periods unordered or overlapping")

	// ErrInvalidRatePeriod is returned for a period whose end is not after
	// its start.
	ErrInvalidRatePeriod = errors.New("rate period end not after start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PaymentInsertionError reports which payment could not be placed.
type PaymentInsertionError struct {
	Date   DatePoint
	Amount Money
}

func (e *PaymentInsertionError) Error() string {
	return fmt.Sprintf("payment of %s on %s falls outside all interest segments", e.Amount, e.Date)
}

func (e *PaymentInsertionError) Unwrap() error { return ErrPaymentOutsideSegments }

// RatePeriodError reports which period of which jurisdiction failed
// validation at load time.
type RatePeriodError struct {
	Jurisdiction string
	Index        int
	Err          error
}

func (e *RatePeriodError) Error() string {
	return fmt.Sprintf("jurisdiction %q period %d: %v", e.Jurisdiction, e.Index, e.Err)
}

func (e *RatePeriodError) Unwrap() error { return e.Err }
