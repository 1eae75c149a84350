package interest_test

import (
	"testing"
	"time"

	"github.com/coibc/interest-engine/interest"
)

// =============================================================================
// SINGLE-PERIOD RANGES
// =============================================================================

func TestSegmentsFor_SinglePeriod(t *testing.T) {
	// GIVEN: a range entirely inside one rate period
	// THEN: exactly one segment, marked final, with the period's rate

	calc := testCalc(t)
	segments := calc.SegmentsFor(
		date(2023, time.February, 1), date(2023, time.March, 31),
		interest.Prejudgment, "BC")

	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	seg := segments[0]
	if !seg.Rate.Equal(rate(3.0)) {
		t.Errorf("expected rate 3.0, got %s", seg.Rate)
	}
	if seg.Days != 59 {
		t.Errorf("expected 59 days, got %d", seg.Days)
	}
	if !seg.IsFinalSegment {
		t.Error("single segment must be the final segment")
	}
}

func TestSegmentsFor_ZeroLengthRange(t *testing.T) {
	// A start == end range still emits one segment; with inclusive-both-ends
	// counting and the b <= a convention it carries zero accrual days.
	calc := testCalc(t)
	d := date(2023, time.February, 1)

	segments := calc.SegmentsFor(d, d, interest.Prejudgment, "BC")
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Days != 0 {
		t.Errorf("expected 0 days, got %d", segments[0].Days)
	}
}

// =============================================================================
// BOUNDARY CROSSINGS
// =============================================================================

func TestSegmentsFor_CrossesRateBoundary(t *testing.T) {
	// GIVEN: a range crossing the 2023-07-01 rate change
	// THEN: two disjoint segments whose day counts sum to the range's count

	calc := testCalc(t)
	start := date(2023, time.June, 1)
	end := date(2023, time.August, 31)

	segments := calc.SegmentsFor(start, end, interest.Prejudgment, "BC")
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	first, second := segments[0], segments[1]
	if !first.End.Equal(date(2023, time.June, 30)) {
		t.Errorf("first segment must end the day before the boundary, got %s", first.End)
	}
	if !second.Start.Equal(date(2023, time.July, 1)) {
		t.Errorf("second segment must start on the boundary, got %s", second.Start)
	}
	if !first.Rate.Equal(rate(3.0)) || !second.Rate.Equal(rate(3.5)) {
		t.Errorf("expected rates 3.0 then 3.5, got %s then %s", first.Rate, second.Rate)
	}
	if first.IsFinalSegment || !second.IsFinalSegment {
		t.Error("only the last segment may carry the final flag")
	}

	total := interest.DaysBetween(start, end)
	if first.Days+second.Days != total {
		t.Errorf("day counts must partition the range: %d + %d != %d",
			first.Days, second.Days, total)
	}
}

func TestSegmentsFor_MultiYearRange(t *testing.T) {
	calc := testCalc(t)
	segments := calc.SegmentsFor(
		date(2022, time.August, 1), date(2024, time.March, 31),
		interest.Prejudgment, "BC")

	if len(segments) != 4 {
		t.Fatalf("expected 4 segments across 3 boundaries, got %d", len(segments))
	}

	sum := 0
	for i, seg := range segments {
		if i > 0 && !seg.Start.Equal(segments[i-1].End.AddDays(1)) {
			t.Errorf("segment %d must start the day after segment %d ends", i, i-1)
		}
		sum += seg.Days
	}
	if want := interest.DaysBetween(date(2022, time.August, 1), date(2024, time.March, 31)); sum != want {
		t.Errorf("day counts must partition the range: got %d, want %d", sum, want)
	}
}

// =============================================================================
// GAPS AND INVALID INPUT
// =============================================================================

func TestSegmentsFor_SkipsUngovernedDays(t *testing.T) {
	// GIVEN: a table with a hole between two periods (March 2023 unpublished)
	// THEN: the hole is skipped and both governed spans are segmented

	table := interest.NewRateTable()
	err := table.SetPeriods("BC", []interest.RatePeriod{
		{Start: date(2023, time.January, 1), End: date(2023, time.March, 1), Prejudgment: rate(3.0), Postjudgment: rate(5.0)},
		{Start: date(2023, time.April, 1), End: date(2023, time.July, 1), Prejudgment: rate(3.5), Postjudgment: rate(5.5)},
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	calc := newCalc(table)

	segments := calc.SegmentsFor(
		date(2023, time.February, 1), date(2023, time.May, 31),
		interest.Prejudgment, "BC")

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments around the gap, got %d", len(segments))
	}
	if !segments[0].End.Equal(date(2023, time.February, 28)) {
		t.Errorf("first segment must stop at coverage end, got %s", segments[0].End)
	}
	if !segments[1].Start.Equal(date(2023, time.April, 1)) {
		t.Errorf("second segment must resume at next coverage, got %s", segments[1].Start)
	}
}

func TestSegmentsFor_FailSoft(t *testing.T) {
	calc := testCalc(t)

	if segs := calc.SegmentsFor(date(2023, time.March, 1), date(2023, time.February, 1), interest.Prejudgment, "BC"); segs != nil {
		t.Errorf("inverted range: expected nil, got %d segments", len(segs))
	}
	if segs := calc.SegmentsFor(date(2023, time.February, 1), date(2023, time.March, 1), interest.Prejudgment, "YT"); segs != nil {
		t.Errorf("unknown jurisdiction: expected nil, got %d segments", len(segs))
	}
}
