/*
segments.go - Partitioning a date range into constant-rate segments

PURPOSE:
  Walks forward from the range start, cutting a segment at every rate-period
  boundary the range crosses. Each emitted segment carries one rate over a
  disjoint [Start, End] span: a non-final segment ends the day before the
  next rate period starts, so the inclusive day counts of the segments sum
  exactly to the day count of the whole range.

GAP POLICY:
  Days not covered by any rate period are skipped one day at a time rather
  than failing the calculation. The cursor always advances, so the walk
  terminates even over a table full of holes.

SEE ALSO:
  - rates.go: half-open period containment
  - damages.go: fills in principal and interest per segment
*/
package interest

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SegmentsFor partitions [start, end] into contiguous constant-rate segments
// for the given interest type and jurisdiction. Returns nil when the range is
// inverted or the jurisdiction has no rate data (fail-soft).
//
// Principal and interest are zero on the returned segments; the damage
// accumulator fills them in.
func (c *Calculator) SegmentsFor(start, end DatePoint, kind InterestType, jurisdiction string) []Segment {
	if start.IsZero() || end.IsZero() || start.After(end) {
		c.log.Warn().
			Str("start", start.String()).
			Str("end", end.String()).
			Msg("segment generation with invalid range")
		return nil
	}
	if !c.rates.HasJurisdiction(jurisdiction) {
		c.log.Warn().Str("jurisdiction", jurisdiction).Msg("segment generation for unknown jurisdiction")
		return nil
	}

	periods := c.rates.Periods(jurisdiction)

	var segments []Segment
	cursor := start
	for cursor.BeforeOrEqual(end) {
		period, idx, ok := c.rates.periodAt(jurisdiction, cursor)
		if !ok {
			// Ungoverned day: skip it and retry.
			cursor = cursor.AddDays(1)
			continue
		}

		// The segment runs until the overall end or the period's last covered
		// day, whichever comes first. Coverage is half-open, so a non-final
		// period's last day is the day before its End; the jurisdiction's last
		// period keeps End as an inclusive terminus.
		segEnd := end
		if idx < len(periods)-1 {
			segEnd = segEnd.Min(period.End.AddDays(-1))
		} else {
			segEnd = segEnd.Min(period.End)
		}

		rate := period.Rate(kind)
		seg := Segment{
			Start:          cursor,
			End:            segEnd,
			Rate:           rate,
			Days:           DaysBetween(cursor, segEnd),
			IsFinalSegment: segEnd.Equal(end),
			Description:    describeSegment(cursor, segEnd, rate),
		}
		segments = append(segments, seg)

		if seg.IsFinalSegment {
			break
		}
		cursor = segEnd.AddDays(1)
	}

	if len(segments) == 0 {
		c.log.Warn().
			Str("jurisdiction", jurisdiction).
			Str("start", start.String()).
			Str("end", end.String()).
			Msg("no rate period covers any day in range")
	}
	return segments
}

func describeSegment(start, end DatePoint, rate decimal.Decimal) string {
	return fmt.Sprintf("%s - %s at %s%%",
		start.Time().Format("Jan 2, 2006"),
		end.Time().Format("Jan 2, 2006"),
		rate.String())
}
