/*
calculator.go - Top-level orchestration

PURPOSE:
  Wires segmentation, damage accumulation, final-period damage interest and
  the payment replay into single calls. Every calculation regenerates its
  segments from scratch; payments and special damages are replayed in date
  order each time, so an edited event chain always produces a consistent
  breakdown.

FAIL-SOFT CONTRACT:
  Invalid input (zero dates, inverted ranges, unknown jurisdictions) yields
  an empty zero-valued Result plus a logged warning. The calculator must
  never panic mid-edit while the user is still typing a partially valid
  form; the presentation layer turns the empty result into a validation
  message.

SEE ALSO:
  - types.go: State in, Result out
  - payments.go / splitter.go: the per-payment replay steps
*/
package interest

import (
	"github.com/rs/zerolog"
)

// Calculator computes court order interest against a read-only rate table.
// Safe for concurrent use: calculations share no mutable state.
type Calculator struct {
	rates *RateTable
	log   zerolog.Logger
}

func NewCalculator(rates *RateTable, log zerolog.Logger) *Calculator {
	return &Calculator{rates: rates, log: log.With().Str("component", "interest").Logger()}
}

// Rates exposes the underlying table for read-only inspection.
func (c *Calculator) Rates() *RateTable { return c.rates }

// =============================================================================
// PER-TYPE CALCULATION
// =============================================================================

// CalculateInterestPeriods computes one interest type over [start, end] on
// the given initial principal, folding in the state's special damages and,
// for prejudgment, replaying its payments chronologically.
func (c *Calculator) CalculateInterestPeriods(
	state State,
	kind InterestType,
	start, end DatePoint,
	initialPrincipal Money,
) Result {

	if start.IsZero() || end.IsZero() || start.After(end) {
		c.log.Warn().
			Str("type", string(kind)).
			Str("start", start.String()).
			Str("end", end.String()).
			Msg("calculation with missing or inverted dates")
		return EmptyResult()
	}
	if !c.rates.HasJurisdiction(state.Jurisdiction) {
		c.log.Warn().Str("jurisdiction", state.Jurisdiction).Msg("calculation for unknown jurisdiction")
		return EmptyResult()
	}
	if initialPrincipal.IsZero() && len(sortedDamages(state.SpecialDamages)) == 0 {
		// Nothing to bear interest.
		return EmptyResult()
	}

	segments := c.SegmentsFor(start, end, kind, state.Jurisdiction)
	if len(segments) == 0 {
		return EmptyResult()
	}

	accumulated := c.ApplyDamages(segments, initialPrincipal, state.SpecialDamages)

	var finalPeriodDetails []FinalPeriodDamageDetail
	finalPeriodTotal := ZeroMoney()
	if kind == Prejudgment {
		finalStart := accumulated.Segments[len(accumulated.Segments)-1].Start
		finalPeriodDetails, finalPeriodTotal = c.FinalPeriodDamageInterest(
			state.SpecialDamages, finalStart, end, kind, state.Jurisdiction)
	}

	rows := make([]Row, 0, len(accumulated.Segments))
	for _, seg := range accumulated.Segments {
		rows = append(rows, SegmentRow(seg))
	}

	principal := accumulated.FinalPrincipal
	interestPaid := ZeroMoney()
	if kind == Prejudgment && len(state.Payments) > 0 {
		var paidInterest, paidPrincipal Money
		rows, paidInterest, paidPrincipal = c.replayPayments(state, rows, start, end)
		principal = principal.Sub(paidPrincipal)
		interestPaid = paidInterest
	}

	total := finalPeriodTotal
	for _, row := range rows {
		if row.Segment != nil {
			total = total.Add(row.Segment.Interest)
		}
	}
	// Interest the payments already covered is no longer owed.
	total = total.Sub(interestPaid)

	return Result{
		Details:            rows,
		Total:              total,
		Principal:          principal,
		FinalPeriodDamages: finalPeriodDetails,
	}
}

// replayPayments allocates and inserts every payment dated within [start,
// end] in chronological order, so each payment sees the cumulative effect of
// the earlier ones. Returns the updated rows and the totals applied to
// interest and to principal.
func (c *Calculator) replayPayments(state State, rows []Row, start, end DatePoint) ([]Row, Money, Money) {
	paidToInterest := ZeroMoney()
	paidToPrincipal := ZeroMoney()
	var priors []Payment

	for _, payment := range sortedPayments(state.Payments) {
		if payment.Date.Before(start) || payment.Date.After(end) {
			continue
		}

		if !payment.Allocated {
			alloc := c.AllocatePayment(state, payment.Date, payment.Amount, priors)
			payment.InterestApplied = alloc.InterestApplied
			payment.PrincipalApplied = alloc.PrincipalApplied
			payment.RemainingPrincipal = alloc.RemainingPrincipal
			payment.Allocated = true
		}

		next, err := c.InsertPayment(rows, payment)
		if err != nil {
			c.log.Error().Err(err).Msg("payment skipped")
			continue
		}
		rows = next
		priors = append(priors, payment)
		paidToInterest = paidToInterest.Add(payment.InterestApplied)
		paidToPrincipal = paidToPrincipal.Add(payment.PrincipalApplied)
	}

	return rows, paidToInterest, paidToPrincipal
}

// =============================================================================
// FULL OUTCOME - Both interest types plus per-diem
// =============================================================================

// Outcome bundles the two calculations the way the rendering layer consumes
// them, with the running total owing and its per-diem projection.
type Outcome struct {
	Prejudgment   Result
	Postjudgment  Result
	JudgmentTotal Money // final principal + prejudgment interest
	TotalOwing    Money // judgment total + postjudgment interest
	PerDiem       Money
}

// Calculate runs prejudgment interest from the cause of action to judgment,
// then postjudgment interest on the judgment total through the accrual end
// date, then the per-diem projection on the grand total.
func (c *Calculator) Calculate(state State) Outcome {
	pre := c.CalculateInterestPeriods(
		state, Prejudgment, state.CauseOfActionDate, state.JudgmentDate, state.JudgmentAmount)

	judgmentTotal := pre.Principal.Add(pre.Total)

	// Special damages and payments are already reflected in the judgment
	// total; the postjudgment run must not fold them in again.
	postState := state
	postState.SpecialDamages = nil
	postState.Payments = nil

	post := EmptyResult()
	if !state.AccrualEndDate.IsZero() && judgmentTotal.IsPositive() {
		post = c.CalculateInterestPeriods(
			postState, Postjudgment, state.JudgmentDate, state.AccrualEndDate, judgmentTotal)
		if post.Principal.IsZero() && post.Total.IsZero() {
			post.Principal = judgmentTotal
		}
	}

	totalOwing := judgmentTotal.Add(post.Total)

	perDiemState := state
	perDiemState.TotalOwing = totalOwing
	if perDiemState.FinalCalculationDate.IsZero() {
		perDiemState.FinalCalculationDate = state.AccrualEndDate
	}

	return Outcome{
		Prejudgment:   pre,
		Postjudgment:  post,
		JudgmentTotal: judgmentTotal,
		TotalOwing:    totalOwing,
		PerDiem:       c.PerDiem(perDiemState),
	}
}

// =============================================================================
// PER DIEM
// =============================================================================

// PerDiem returns one day of postjudgment interest on the state's total
// owing as of its final calculation date. Returns exactly zero when the
// total owing is non-positive, the date is missing, or no postjudgment rate
// covers the date.
func (c *Calculator) PerDiem(state State) Money {
	if !state.TotalOwing.IsPositive() {
		return ZeroMoney()
	}
	if state.FinalCalculationDate.IsZero() {
		c.log.Warn().Msg("per-diem requested without a calculation date")
		return ZeroMoney()
	}

	rate := c.RateFor(state.FinalCalculationDate, Postjudgment, state.Jurisdiction)
	if rate.IsZero() {
		return ZeroMoney()
	}

	return simpleInterest(state.TotalOwing, rate, 1, DaysInYear(state.FinalCalculationDate.Year()))
}
