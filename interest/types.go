/*
Package interest computes prejudgment and postjudgment interest under the
British Columbia Court Order Interest Act.

PURPOSE:
  Given a judgment amount, a cause-of-action date, a judgment date, dated
  special damages (lump sums added to principal) and dated payments (applied
  interest-first, then to principal), the engine partitions the calculation
  range into constant-rate segments from the published semi-annual rate
  tables and produces a per-segment breakdown, totals, final principal and a
  per-diem projection.

KEY CONCEPTS IN THIS FILE (types.go):
  - Segment: a maximal sub-range with one rate and one principal
  - Row: one line of the breakdown (a segment or a payment marker)
  - SpecialDamage: dated principal injection
  - Payment: dated reduction, split interest-first into the two buckets
  - Result: the full outcome handed (ownership-transferred) to the caller

DESIGN PRINCIPLES:
  1. One date type: DatePoint, normalized at the boundary, never strings
  2. Precision: Money wraps decimal.Decimal; floats only at the edges
  3. Fail soft: invalid calculation input yields an empty Result, never a panic
  4. Fresh segments per calculation: Results are never aliased or mutated

SEE ALSO:
  - rates.go: rate-table lookup (half-open periods)
  - segments.go: range partitioning
  - damages.go: principal accumulation and final-period damage interest
  - payments.go / splitter.go: payment allocation and insertion
  - calculator.go: the public entry points
*/
package interest

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INTEREST TYPE
// =============================================================================

type InterestType string

const (
	Prejudgment  InterestType = "prejudgment"
	Postjudgment InterestType = "postjudgment"
)

// =============================================================================
// SEGMENT - Constant-rate, constant-principal accrual over [Start, End]
// =============================================================================

// Segment covers [Start, End] inclusive of both endpoints for day-count
// purposes. Adjacent segments are disjoint: a non-final segment ends the day
// before the next rate period starts, so no day is ever counted twice.
type Segment struct {
	Start     DatePoint
	End       DatePoint
	Rate      decimal.Decimal // annual percentage, e.g. 4.45
	Principal Money
	Interest  Money
	Days      int

	IsFinalSegment    bool
	ModifiedByPayment bool

	// Description is a presentation convenience carried for the rendering
	// layer ("Apr 1, 2023 - Jun 30, 2023 at 4.45%").
	Description string
}

func (s Segment) recomputed() Segment {
	s.Days = DaysBetween(s.Start, s.End)
	s.Interest = simpleInterest(s.Principal, s.Rate, s.Days, DaysInYear(s.Start.Year()))
	return s
}

// =============================================================================
// EVENTS - Special damages and payments
// =============================================================================

// SpecialDamage is an immutable dated lump sum added to principal effective
// on Date. Entries with non-positive amounts are dropped at the boundary.
type SpecialDamage struct {
	Date        DatePoint
	Amount      Money
	Description string
}

// Payment records a dated reduction. InterestApplied and PrincipalApplied are
// computed once by the allocator (interest-first) and then treated as
// immutable facts; editing an earlier payment requires replaying the whole
// chain chronologically.
type Payment struct {
	Date   DatePoint
	Amount Money

	InterestApplied    Money
	PrincipalApplied   Money
	RemainingPrincipal Money

	// Allocated marks payments whose split has been computed. A legacy
	// payment without a stored split has it inferred during prior replay.
	Allocated bool
}

// =============================================================================
// BREAKDOWN ROWS
// =============================================================================

// Row is one line of the interest breakdown: either an accrual segment or a
// payment marker inserted between segments.
type Row struct {
	Segment *Segment
	Payment *Payment
}

func SegmentRow(s Segment) Row { return Row{Segment: &s} }
func PaymentRow(p Payment) Row { return Row{Payment: &p} }
func (r Row) IsPayment() bool  { return r.Payment != nil }

// =============================================================================
// RESULTS
// =============================================================================

// FinalPeriodDamageDetail is an individually dated simple-interest line for a
// special damage falling inside the last prejudgment segment.
type FinalPeriodDamageDetail struct {
	DamageDate  DatePoint
	Principal   Money
	Rate        decimal.Decimal
	Interest    Money
	Description string
}

// Result is the outcome of one calculation. Principal is the FINAL principal
// after all damages and payments, not the initial judgment amount; Total is
// the interest still owed, net of the payments' interest portions. Ownership
// transfers to the caller; the engine keeps no reference.
type Result struct {
	Details            []Row
	Total              Money
	Principal          Money
	FinalPeriodDamages []FinalPeriodDamageDetail
}

// EmptyResult is the fail-soft zero value returned for invalid input.
func EmptyResult() Result {
	return Result{Total: ZeroMoney(), Principal: ZeroMoney()}
}

// =============================================================================
// STATE - Validated snapshot handed in by the form layer
// =============================================================================

// State is the boundary contract with the (excluded) form layer: dates are
// already UTC-midnight DatePoints, the judgment amount is non-negative, and
// event lists may arrive unsorted (the engine sorts internally).
type State struct {
	Jurisdiction      string
	CauseOfActionDate DatePoint // prejudgment interest starts here
	JudgmentDate      DatePoint
	AccrualEndDate    DatePoint // postjudgment interest ends here
	JudgmentAmount    Money

	SpecialDamages []SpecialDamage
	Payments       []Payment

	// Per-diem inputs: the running total owing as of the final calculation
	// date, projected forward one day at the postjudgment rate.
	TotalOwing           Money
	FinalCalculationDate DatePoint
}
