/*
payments.go - Interest-first payment allocation

PURPOSE:
  A payment is split against the amounts owed at its date: interest accrued
  and not yet paid is consumed first, the remainder reduces principal.
  Overpayment is permitted; remaining principal goes negative and represents
  a refund owed (and accrues negative interest downstream).

PRIOR PAYMENTS:
  Each prior payment's stored split is trusted as an immutable fact. A legacy
  payment recorded without a split has one inferred on the fly, interest-first
  against the interest still unpaid at that point in the replay. Editing an
  earlier payment therefore requires replaying the whole chain in date order,
  which the calculator does on every run.

SEE ALSO:
  - splitter.go: inserts the allocated payment into the breakdown
  - calculator.go: chronological replay of the payment chain
*/
package interest

import (
	"sort"
)

// Allocation is the interest-first split of one payment.
type Allocation struct {
	InterestApplied    Money
	PrincipalApplied   Money
	RemainingPrincipal Money
}

// AllocatePayment splits a payment dated paymentDate against the state's
// prejudgment accrual, honouring the splits already stored on priors.
//
// The interest pool is floored at zero (interest owed is never negative);
// the remaining principal is NOT floored, so an overpayment yields a
// negative principal.
func (c *Calculator) AllocatePayment(state State, paymentDate DatePoint, amount Money, priors []Payment) Allocation {
	grossAccrued := c.grossInterestTo(state, paymentDate)

	interestPaid := ZeroMoney()
	principalPaid := ZeroMoney()
	for _, prior := range sortedPayments(priors) {
		if prior.Allocated {
			interestPaid = interestPaid.Add(prior.InterestApplied)
			principalPaid = principalPaid.Add(prior.PrincipalApplied)
			continue
		}
		available := grossAccrued.Sub(interestPaid).Max(ZeroMoney())
		inferred := prior.Amount.Min(available)
		interestPaid = interestPaid.Add(inferred)
		principalPaid = principalPaid.Add(prior.Amount.Sub(inferred))
	}

	interestAvailable := grossAccrued.Sub(interestPaid).Max(ZeroMoney())
	interestApplied := amount.Min(interestAvailable)
	principalApplied := amount.Sub(interestApplied)

	principalAtDate := state.JudgmentAmount
	for _, d := range sortedDamages(state.SpecialDamages) {
		if d.Date.BeforeOrEqual(paymentDate) {
			principalAtDate = principalAtDate.Add(d.Amount)
		}
	}

	return Allocation{
		InterestApplied:    interestApplied,
		PrincipalApplied:   principalApplied,
		RemainingPrincipal: principalAtDate.Sub(principalPaid).Sub(principalApplied),
	}
}

// grossInterestTo computes the prejudgment interest accrued from the cause of
// action to the given date as if no payments existed: bulk segment interest
// plus the individually dated final-period damage lines.
func (c *Calculator) grossInterestTo(state State, at DatePoint) Money {
	start := state.CauseOfActionDate
	if start.IsZero() || at.IsZero() || at.Before(start) {
		return ZeroMoney()
	}

	segments := c.SegmentsFor(start, at, Prejudgment, state.Jurisdiction)
	if len(segments) == 0 {
		return ZeroMoney()
	}

	accumulated := c.ApplyDamages(segments, state.JudgmentAmount, state.SpecialDamages)
	finalStart := accumulated.Segments[len(accumulated.Segments)-1].Start
	_, damageInterest := c.FinalPeriodDamageInterest(
		state.SpecialDamages, finalStart, at, Prejudgment, state.Jurisdiction)

	return accumulated.TotalInterest.Add(damageInterest)
}

func sortedPayments(payments []Payment) []Payment {
	out := make([]Payment, len(payments))
	copy(out, payments)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
