package interest_test

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/coibc/interest-engine/interest"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) interest.DatePoint {
	return interest.NewDate(year, month, day)
}

func money(v float64) interest.Money {
	return interest.NewMoney(v)
}

func rate(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// testTable mirrors the canonical fixture table: semi-annual periods with
// adjacent boundaries (end of one == start of the next).
func testTable(t *testing.T) *interest.RateTable {
	t.Helper()

	table := interest.NewRateTable()
	err := table.SetPeriods("BC", []interest.RatePeriod{
		{Start: date(2022, time.July, 1), End: date(2023, time.January, 1), Prejudgment: rate(2.0), Postjudgment: rate(4.0)},
		{Start: date(2023, time.January, 1), End: date(2023, time.July, 1), Prejudgment: rate(3.0), Postjudgment: rate(5.0)},
		{Start: date(2023, time.July, 1), End: date(2024, time.January, 1), Prejudgment: rate(3.5), Postjudgment: rate(5.5)},
		{Start: date(2024, time.January, 1), End: date(2024, time.July, 1), Prejudgment: rate(4.0), Postjudgment: rate(6.0)},
		{Start: date(2024, time.July, 1), End: date(2025, time.January, 1), Prejudgment: rate(4.0), Postjudgment: rate(6.0)},
	})
	if err != nil {
		t.Fatalf("fixture table: %v", err)
	}
	return table
}

func testCalc(t *testing.T) *interest.Calculator {
	t.Helper()
	return newCalc(testTable(t))
}

func newCalc(table *interest.RateTable) *interest.Calculator {
	return interest.NewCalculator(table, zerolog.Nop())
}

// approx asserts a Money value to within a tenth of a cent.
func approx(t *testing.T, got interest.Money, want float64, msg string) {
	t.Helper()
	if math.Abs(got.Float64()-want) > 0.001 {
		t.Errorf("%s: got %v, want %v", msg, got.Float64(), want)
	}
}

// segmentsOf filters the segment rows out of a breakdown.
func segmentsOf(rows []interest.Row) []interest.Segment {
	var out []interest.Segment
	for _, row := range rows {
		if row.Segment != nil {
			out = append(out, *row.Segment)
		}
	}
	return out
}

// paymentsOf filters the payment marker rows out of a breakdown.
func paymentsOf(rows []interest.Row) []interest.Payment {
	var out []interest.Payment
	for _, row := range rows {
		if row.Payment != nil {
			out = append(out, *row.Payment)
		}
	}
	return out
}
