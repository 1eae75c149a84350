/*
splitter.go - Inserting a payment into the breakdown

PURPOSE:
  Places one allocated payment into the row list, splitting the containing
  segment when the payment lands strictly inside it and re-costing every
  segment whose principal the payment reduces. The row list handed in is
  never mutated; a new list is returned.

STATE MACHINE (payment date vs segment boundaries):
  - on a segment's start  -> no split; that segment and all later ones carry
                             the reduced principal; marker precedes it
  - on a segment's end    -> no split; marker follows the segment; reduction
                             starts with the next segment
  - strictly inside       -> split into [start, payDate] at the old principal
                             and [payDate+1, end] at the reduced principal,
                             marker between the halves
  - outside all segments  -> rows returned unchanged with
                             ErrPaymentOutsideSegments; the caller reports it

  The split halves partition the original day count exactly, so a zero-amount
  payment conserves the original segment's interest to the cent.

SEE ALSO:
  - payments.go: computes the allocation the marker row carries
  - calculator.go: applies payments chronologically so each sees the
    cumulative effect of the earlier ones
*/
package interest

// InsertPayment returns a new row list with the payment's marker row placed
// and all affected segments re-costed at the reduced principal.
func (c *Calculator) InsertPayment(rows []Row, payment Payment) ([]Row, error) {
	at := -1
	for i, row := range rows {
		if row.Segment == nil {
			continue
		}
		if payment.Date.AfterOrEqual(row.Segment.Start) && payment.Date.BeforeOrEqual(row.Segment.End) {
			at = i
			break
		}
	}
	if at < 0 {
		c.log.Error().
			Str("date", payment.Date.String()).
			Str("amount", payment.Amount.String()).
			Msg("payment date outside all segments")
		return rows, &PaymentInsertionError{Date: payment.Date, Amount: payment.Amount}
	}

	seg := *rows[at].Segment
	out := make([]Row, 0, len(rows)+2)
	out = append(out, rows[:at]...)

	// reduceFrom is the index (in rows) of the first segment to re-cost at
	// the reduced principal.
	reduceFrom := at + 1

	switch {
	case payment.Date.Equal(seg.Start):
		out = append(out, PaymentRow(payment))
		out = append(out, SegmentRow(reduceSegment(seg, payment)))

	case payment.Date.Equal(seg.End):
		out = append(out, SegmentRow(seg), PaymentRow(payment))

	default:
		before := seg
		before.End = payment.Date
		before.IsFinalSegment = false
		before.Description = describeSegment(before.Start, before.End, before.Rate)
		before = before.recomputed()

		after := reduceSegment(seg, payment)
		after.Start = payment.Date.AddDays(1)
		after.Description = describeSegment(after.Start, after.End, after.Rate)
		// The halves must partition the original day count. Recounting from
		// the dates would collapse a single-day after-half (payment on the
		// day before the segment end) to zero days under the b <= a
		// convention and drop its day of interest.
		after.Days = seg.Days - before.Days
		after.Interest = simpleInterest(after.Principal, after.Rate, after.Days, DaysInYear(after.Start.Year()))

		out = append(out, SegmentRow(before), PaymentRow(payment), SegmentRow(after))
	}

	for _, row := range rows[reduceFrom:] {
		if row.Segment == nil {
			out = append(out, row)
			continue
		}
		out = append(out, SegmentRow(reduceSegment(*row.Segment, payment)))
	}

	return out, nil
}

func reduceSegment(seg Segment, payment Payment) Segment {
	seg.Principal = seg.Principal.Sub(payment.PrincipalApplied)
	seg.ModifiedByPayment = true
	return seg.recomputed()
}
