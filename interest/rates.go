package interest

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RATE PERIOD - Published semi-annual rate span
// =============================================================================

// RatePeriod is one government-published span of fixed rates. Containment is
// half-open: a date belongs to the period when Start <= date < End, except
// that the LAST period of a jurisdiction treats End as an inclusive terminus
// of coverage. Adjacent periods share a boundary (End of one == Start of the
// next) and the shared date belongs to the later period.
type RatePeriod struct {
	Start        DatePoint
	End          DatePoint
	Prejudgment  decimal.Decimal
	Postjudgment decimal.Decimal
}

// Rate returns the percentage for the requested interest type.
func (p RatePeriod) Rate(kind InterestType) decimal.Decimal {
	if kind == Postjudgment {
		return p.Postjudgment
	}
	return p.Prejudgment
}

// =============================================================================
// RATE TABLE - jurisdiction -> sorted periods
// =============================================================================

// RateTable maps jurisdiction codes to their rate periods, sorted ascending
// by start date. The table is read-only input to every calculation; the
// engine never mutates it.
type RateTable struct {
	periods map[string][]RatePeriod
}

func NewRateTable() *RateTable {
	return &RateTable{periods: make(map[string][]RatePeriod)}
}

// SetPeriods installs the periods for a jurisdiction, sorting them and
// validating the no-overlap invariant.
func (t *RateTable) SetPeriods(jurisdiction string, periods []RatePeriod) error {
	sorted := make([]RatePeriod, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	for i, p := range sorted {
		if !p.End.After(p.Start) {
			return &RatePeriodError{Jurisdiction: jurisdiction, Index: i, Err: ErrInvalidRatePeriod}
		}
		if i > 0 && sorted[i-1].End.After(p.Start) {
			return &RatePeriodError{Jurisdiction: jurisdiction, Index: i, Err: ErrUnorderedRatePeriods}
		}
	}

	t.periods[jurisdiction] = sorted
	return nil
}

// Periods returns the sorted periods for a jurisdiction (nil if absent).
func (t *RateTable) Periods(jurisdiction string) []RatePeriod {
	return t.periods[jurisdiction]
}

// Jurisdictions returns the known jurisdiction codes, sorted.
func (t *RateTable) Jurisdictions() []string {
	codes := make([]string, 0, len(t.periods))
	for code := range t.periods {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (t *RateTable) HasJurisdiction(jurisdiction string) bool {
	return len(t.periods[jurisdiction]) > 0
}

// periodAt finds the period containing date under the half-open convention.
// Returns the period, its index, and whether one was found.
func (t *RateTable) periodAt(jurisdiction string, date DatePoint) (RatePeriod, int, bool) {
	periods := t.periods[jurisdiction]
	for i, p := range periods {
		if date.Before(p.Start) {
			break
		}
		if date.Before(p.End) {
			return p, i, true
		}
		// Inclusive terminus: the last period also covers its end date.
		if i == len(periods)-1 && date.Equal(p.End) {
			return p, i, true
		}
	}
	return RatePeriod{}, -1, false
}

// =============================================================================
// RATE LOOKUP
// =============================================================================

// RateFor returns the applicable percentage rate for a date, or zero when the
// jurisdiction is unknown, the date is zero, or no period covers the date.
// Zero is a legitimate "no interest owed" answer, not an error signal; the
// miss is logged as a diagnostic only.
func (c *Calculator) RateFor(date DatePoint, kind InterestType, jurisdiction string) decimal.Decimal {
	if date.IsZero() {
		c.log.Warn().Str("jurisdiction", jurisdiction).Msg("rate lookup with zero date")
		return decimal.Zero
	}
	if !c.rates.HasJurisdiction(jurisdiction) {
		c.log.Warn().Str("jurisdiction", jurisdiction).Msg("rate lookup for unknown jurisdiction")
		return decimal.Zero
	}
	period, _, ok := c.rates.periodAt(jurisdiction, date)
	if !ok {
		c.log.Warn().
			Str("jurisdiction", jurisdiction).
			Str("date", date.String()).
			Msg("no rate period covers date")
		return decimal.Zero
	}
	return period.Rate(kind)
}
