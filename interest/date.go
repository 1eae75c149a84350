package interest

import (
	"time"
)

// =============================================================================
// DATE POINT - Concrete date abstraction (this IS a date-driven system)
// =============================================================================

// DatePoint is a calendar date pinned to UTC midnight. All dates crossing the
// engine boundary are normalized into this type exactly once; the engine never
// accepts raw strings or wall-clock times.
type DatePoint struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) DatePoint {
	return DatePoint{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf normalizes an arbitrary time.Time to a UTC-midnight DatePoint.
func DateOf(t time.Time) DatePoint {
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// ParseDate parses a YYYY-MM-DD string into a DatePoint.
func ParseDate(s string) (DatePoint, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DatePoint{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d DatePoint) Before(other DatePoint) bool        { return d.t.Before(other.t) }
func (d DatePoint) After(other DatePoint) bool         { return d.t.After(other.t) }
func (d DatePoint) Equal(other DatePoint) bool         { return d.t.Equal(other.t) }
func (d DatePoint) BeforeOrEqual(other DatePoint) bool { return !d.t.After(other.t) }
func (d DatePoint) AfterOrEqual(other DatePoint) bool  { return !d.t.Before(other.t) }

// Arithmetic
func (d DatePoint) AddDays(n int) DatePoint { return DatePoint{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d DatePoint) Year() int         { return d.t.Year() }
func (d DatePoint) Month() time.Month { return d.t.Month() }
func (d DatePoint) Day() int          { return d.t.Day() }
func (d DatePoint) IsZero() bool      { return d.t.IsZero() }
func (d DatePoint) Time() time.Time   { return d.t }

func (d DatePoint) String() string { return d.t.Format("2006-01-02") }

// Min returns the earlier of two dates.
func (d DatePoint) Min(other DatePoint) DatePoint {
	if other.Before(d) {
		return other
	}
	return d
}

// =============================================================================
// DAY COUNTING
// =============================================================================

// DaysBetween returns the inclusive-both-ends day count of [from, to].
// By convention it is 0 whenever to <= from: a same-day or inverted range
// accrues nothing. For from < to the count is the calendar-day difference
// plus one (Feb 1 to Mar 31 in a non-leap year is 59 days).
func DaysBetween(from, to DatePoint) int {
	if to.BeforeOrEqual(from) {
		return 0
	}
	return int(to.t.Sub(from.t).Hours()/24) + 1
}

// DaysInYear returns 366 for leap years, 365 otherwise.
func DaysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
