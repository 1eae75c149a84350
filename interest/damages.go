/*
damages.go - Folding dated special damages into segment principal

PURPOSE:
  Special damages are dated lump sums that join the interest-bearing
  principal as they are incurred. The accumulator walks the segment list
  carrying a running principal forward: a damage starts earning interest
  with the first segment whose start date is on or after the damage date.

FIRST-DAY RULE:
  A damage dated exactly on a segment's start date is folded into that
  segment's principal (it earns from its own date). A damage dated strictly
  inside a segment earns nothing within that segment; it joins the principal
  of the next one.

FINAL-PERIOD DAMAGES:
  Damages falling strictly inside the LAST segment have no next segment to
  join. For prejudgment calculations the statute treats them as individually
  dated principal injections, each earning simple interest from its own date
  to the end of the range at the rate in force at the end date. That side
  computation lives here as well.

SEE ALSO:
  - segments.go: produces the segment list this package walks
  - calculator.go: assembles both outputs into the Result
*/
package interest

import (
	"sort"
)

// DamageResult is the accumulator's output: the costed segments, their
// summed interest, and the authoritative final principal.
type DamageResult struct {
	Segments      []Segment
	TotalInterest Money

	// FinalPrincipal is initial principal plus every damage dated on or
	// before the overall end date, independent of segment boundaries. This
	// is the "total principal owed" figure shown to the user.
	FinalPrincipal Money
}

// sortedDamages returns a positive-amount, date-ascending copy. The form
// layer drops unparseable entries; amount filtering here keeps the invariant
// local to the engine as well.
func sortedDamages(damages []SpecialDamage) []SpecialDamage {
	out := make([]SpecialDamage, 0, len(damages))
	for _, d := range damages {
		if d.Amount.IsPositive() && !d.Date.IsZero() {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// ApplyDamages computes each segment's interest on the principal in force
// when the segment starts, folding damages forward as it goes. The input
// slice is not mutated; costed copies are returned.
func (c *Calculator) ApplyDamages(segments []Segment, initialPrincipal Money, damages []SpecialDamage) DamageResult {
	sorted := sortedDamages(damages)

	out := make([]Segment, 0, len(segments))
	principal := initialPrincipal
	next := 0

	for _, seg := range segments {
		for next < len(sorted) && sorted[next].Date.BeforeOrEqual(seg.Start) {
			principal = principal.Add(sorted[next].Amount)
			next++
		}

		seg.Principal = principal
		seg = seg.recomputed()
		out = append(out, seg)
	}

	total := ZeroMoney()
	for _, seg := range out {
		total = total.Add(seg.Interest)
	}

	finalPrincipal := initialPrincipal
	if len(segments) > 0 {
		end := segments[len(segments)-1].End
		for _, d := range sorted {
			if d.Date.BeforeOrEqual(end) {
				finalPrincipal = finalPrincipal.Add(d.Amount)
			}
		}
	}

	return DamageResult{Segments: out, TotalInterest: total, FinalPrincipal: finalPrincipal}
}

// FinalPeriodDamageInterest computes the individual simple-interest lines for
// damages falling strictly inside the final segment of a prejudgment range.
//
// Exclusions: a damage dated exactly on the final segment's start is already
// folded into segment principal (first-day rule), and a damage dated exactly
// on the end date accrues nothing and is omitted.
func (c *Calculator) FinalPeriodDamageInterest(
	damages []SpecialDamage,
	finalStart, endDate DatePoint,
	kind InterestType,
	jurisdiction string,
) ([]FinalPeriodDamageDetail, Money) {

	rate := c.RateFor(endDate, kind, jurisdiction)
	yearDays := DaysInYear(endDate.Year())

	var details []FinalPeriodDamageDetail
	total := ZeroMoney()

	for _, d := range sortedDamages(damages) {
		if !d.Date.After(finalStart) || !d.Date.Before(endDate) {
			continue
		}
		days := DaysBetween(d.Date, endDate)
		interest := simpleInterest(d.Amount, rate, days, yearDays)
		details = append(details, FinalPeriodDamageDetail{
			DamageDate:  d.Date,
			Principal:   d.Amount,
			Rate:        rate,
			Interest:    interest,
			Description: d.Description,
		})
		total = total.Add(interest)
	}

	return details, total
}
