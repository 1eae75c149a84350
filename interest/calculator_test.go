package interest_test

import (
	"testing"
	"time"

	"github.com/coibc/interest-engine/interest"
)

// =============================================================================
// CANONICAL SCENARIOS
// =============================================================================

func TestCalculateInterestPeriods_SingleSegment(t *testing.T) {
	// GIVEN: principal 10000, Feb 1 - Mar 31 2023, rate 3.0
	// THEN: one 59-day segment, interest = 10000 * 0.03 * 59/365

	calc := testCalc(t)
	state := paymentState(10000)

	result := calc.CalculateInterestPeriods(
		state, interest.Prejudgment,
		date(2023, time.February, 1), date(2023, time.March, 31), money(10000))

	segments := segmentsOf(result.Details)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Days != 59 {
		t.Errorf("expected 59 days, got %d", segments[0].Days)
	}
	approx(t, result.Total, 10000*0.03*59/365, "total interest")
	approx(t, result.Principal, 10000, "principal")
}

func TestCalculateInterestPeriods_FirstDayDamage(t *testing.T) {
	// GIVEN: a $100 damage dated exactly on the final segment's start
	// THEN: it folds into segment principal, does NOT appear in the
	//       final-period detail lines, and the final principal includes it

	calc := testCalc(t)
	state := paymentState(10000)
	state.SpecialDamages = []interest.SpecialDamage{
		{Date: date(2023, time.July, 1), Amount: money(100)},
	}

	result := calc.CalculateInterestPeriods(
		state, interest.Prejudgment,
		date(2023, time.February, 1), date(2023, time.December, 31), money(10000))

	if len(result.FinalPeriodDamages) != 0 {
		t.Errorf("first-day damage must not appear individually, got %d lines", len(result.FinalPeriodDamages))
	}
	approx(t, result.Principal, 10100, "final principal")

	segments := segmentsOf(result.Details)
	approx(t, segments[1].Principal, 10100, "final segment principal")
}

func TestCalculateInterestPeriods_FinalPeriodDamageLine(t *testing.T) {
	// A damage strictly inside the final segment earns an individual line
	// and contributes to the total.

	calc := testCalc(t)
	state := paymentState(10000)
	state.SpecialDamages = []interest.SpecialDamage{
		{Date: date(2023, time.August, 10), Amount: money(250), Description: "physio"},
	}

	result := calc.CalculateInterestPeriods(
		state, interest.Prejudgment,
		date(2023, time.February, 1), date(2023, time.December, 31), money(10000))

	if len(result.FinalPeriodDamages) != 1 {
		t.Fatalf("expected 1 final-period line, got %d", len(result.FinalPeriodDamages))
	}
	line := result.FinalPeriodDamages[0]
	days := interest.DaysBetween(date(2023, time.August, 10), date(2023, time.December, 31))
	approx(t, line.Interest, 250*0.035*float64(days)/365, "final-period damage interest")
	approx(t, result.Principal, 10250, "final principal")

	// The bulk segments accrue on 10000 only; the damage never joins them.
	for _, seg := range segmentsOf(result.Details) {
		approx(t, seg.Principal, 10000, "bulk segment principal")
	}
}

// =============================================================================
// FAIL-SOFT VALIDATION
// =============================================================================

func TestCalculateInterestPeriods_FailSoft(t *testing.T) {
	calc := testCalc(t)
	state := paymentState(10000)

	cases := []struct {
		name string
		run  func() interest.Result
	}{
		{"inverted range", func() interest.Result {
			return calc.CalculateInterestPeriods(state, interest.Prejudgment,
				date(2023, time.March, 1), date(2023, time.February, 1), money(10000))
		}},
		{"zero start date", func() interest.Result {
			return calc.CalculateInterestPeriods(state, interest.Prejudgment,
				interest.DatePoint{}, date(2023, time.March, 1), money(10000))
		}},
		{"unknown jurisdiction", func() interest.Result {
			s := state
			s.Jurisdiction = "YT"
			return calc.CalculateInterestPeriods(s, interest.Prejudgment,
				date(2023, time.February, 1), date(2023, time.March, 1), money(10000))
		}},
		{"zero principal and no damages", func() interest.Result {
			return calc.CalculateInterestPeriods(state, interest.Prejudgment,
				date(2023, time.February, 1), date(2023, time.March, 1), money(0))
		}},
	}

	for _, tc := range cases {
		result := tc.run()
		if len(result.Details) != 0 || !result.Total.IsZero() || !result.Principal.IsZero() {
			t.Errorf("%s: expected empty zero-valued result", tc.name)
		}
	}
}

// =============================================================================
// PAYMENT REPLAY
// =============================================================================

func TestCalculateInterestPeriods_PaymentReplay(t *testing.T) {
	// GIVEN: an unallocated payment inside the range
	// THEN: it is allocated interest-first, inserted as a marker row, and
	//       the final principal reflects its principal portion

	calc := testCalc(t)
	state := paymentState(10000)
	state.Payments = []interest.Payment{
		{Date: date(2023, time.March, 31), Amount: money(1000)},
	}

	result := calc.CalculateInterestPeriods(
		state, interest.Prejudgment,
		date(2023, time.February, 1), date(2023, time.December, 31), money(10000))

	markers := paymentsOf(result.Details)
	if len(markers) != 1 {
		t.Fatalf("expected 1 payment marker, got %d", len(markers))
	}

	accrued := 10000 * 0.03 * 59 / 365
	approx(t, markers[0].InterestApplied, accrued, "interest applied")
	approx(t, markers[0].PrincipalApplied, 1000-accrued, "principal applied")
	approx(t, result.Principal, 10000-(1000-accrued), "final principal after payment")
}

func TestCalculateInterestPeriods_PaidInterestReducesTotal(t *testing.T) {
	// GIVEN: a payment split across both buckets (48.49 interest, 951.51
	//        principal at Mar 31)
	// THEN: the interest it covered is no longer owed; the total is the
	//       remaining segments' accrual on the reduced principal only

	calc := testCalc(t)
	state := paymentState(10000)
	state.Payments = []interest.Payment{
		{Date: date(2023, time.March, 31), Amount: money(1000)},
	}

	result := calc.CalculateInterestPeriods(
		state, interest.Prejudgment,
		date(2023, time.February, 1), date(2023, time.December, 31), money(10000))

	accrued := 10000 * 0.03 * 59 / 365
	reduced := 10000 - (1000 - accrued)
	i2 := reduced * 0.03 * 91 / 365   // Apr 1 - Jun 30
	i3 := reduced * 0.035 * 184 / 365 // Jul 1 - Dec 31
	approx(t, result.Total, i2+i3, "interest owed net of the paid portion")
}

func TestCalculateInterestPeriods_OverpaymentAccruesNegative(t *testing.T) {
	// GIVEN: principal 400, payment 500 on Feb 28 (accrued interest ~0.92)
	// THEN: remaining principal is negative and the post-payment segment's
	//       interest is itself negative

	calc := testCalc(t)
	state := paymentState(400)
	state.JudgmentDate = date(2023, time.June, 30)
	state.Payments = []interest.Payment{
		{Date: date(2023, time.February, 28), Amount: money(500)},
	}

	result := calc.CalculateInterestPeriods(
		state, interest.Prejudgment,
		date(2023, time.February, 1), date(2023, time.June, 30), money(400))

	accrued := 400 * 0.03 * 28 / 365
	approx(t, result.Principal, 400-(500-accrued), "negative final principal")
	if !result.Principal.IsNegative() {
		t.Error("overpayment must leave a negative principal")
	}

	segments := segmentsOf(result.Details)
	last := segments[len(segments)-1]
	if !last.Interest.IsNegative() {
		t.Errorf("post-overpayment segment must accrue negative interest, got %s", last.Interest)
	}
}

func TestCalculateInterestPeriods_PaymentsAppliedChronologically(t *testing.T) {
	// Two payments arrive out of order; the second-in-time must see the
	// effect of the first-in-time.

	calc := testCalc(t)
	state := paymentState(10000)
	state.Payments = []interest.Payment{
		{Date: date(2023, time.September, 1), Amount: money(2000)},
		{Date: date(2023, time.March, 31), Amount: money(1000)},
	}

	result := calc.CalculateInterestPeriods(
		state, interest.Prejudgment,
		date(2023, time.February, 1), date(2023, time.December, 31), money(10000))

	markers := paymentsOf(result.Details)
	if len(markers) != 2 {
		t.Fatalf("expected 2 payment markers, got %d", len(markers))
	}
	if !markers[0].Date.Equal(date(2023, time.March, 31)) {
		t.Errorf("markers must appear in date order, first is %s", markers[0].Date)
	}
	if markers[1].RemainingPrincipal.GreaterThan(markers[0].RemainingPrincipal) {
		t.Error("the later payment must see the earlier payment's reduction")
	}
}

// =============================================================================
// FULL OUTCOME
// =============================================================================

func TestCalculate_FullOutcome(t *testing.T) {
	calc := testCalc(t)
	state := interest.State{
		Jurisdiction:      "BC",
		CauseOfActionDate: date(2023, time.February, 1),
		JudgmentDate:      date(2023, time.June, 30),
		AccrualEndDate:    date(2023, time.October, 31),
		JudgmentAmount:    money(10000),
	}

	outcome := calc.Calculate(state)

	preDays := interest.DaysBetween(date(2023, time.February, 1), date(2023, time.June, 30))
	preInterest := 10000 * 0.03 * float64(preDays) / 365
	approx(t, outcome.Prejudgment.Total, preInterest, "prejudgment interest")
	approx(t, outcome.JudgmentTotal, 10000+preInterest, "judgment total")

	// Postjudgment runs on the judgment total at the postjudgment rates:
	// Jul 1 - Oct 31 sits in the 5.5% period (the Jun 30 judgment day itself
	// falls in the 5.0% period).
	if len(segmentsOf(outcome.Postjudgment.Details)) != 2 {
		t.Fatalf("expected 2 postjudgment segments, got %d",
			len(segmentsOf(outcome.Postjudgment.Details)))
	}
	if outcome.TotalOwing.LessThan(outcome.JudgmentTotal) {
		t.Error("total owing must include postjudgment interest")
	}
	if !outcome.PerDiem.IsPositive() {
		t.Error("per-diem must be positive for a positive total owing")
	}
}

func TestCalculate_PaymentReducesJudgmentTotal(t *testing.T) {
	// A 1000 payment must shrink the judgment total by the full 1000 (its
	// interest part extinguishes accrued interest, its principal part reduces
	// the balance), never by the principal part alone.

	calc := testCalc(t)
	state := interest.State{
		Jurisdiction:      "BC",
		CauseOfActionDate: date(2023, time.February, 1),
		JudgmentDate:      date(2023, time.June, 30),
		JudgmentAmount:    money(10000),
		Payments: []interest.Payment{
			{Date: date(2023, time.March, 31), Amount: money(1000)},
		},
	}

	outcome := calc.Calculate(state)

	accrued := 10000 * 0.03 * 59 / 365
	reduced := 10000 - (1000 - accrued)
	i2 := reduced * 0.03 * 91 / 365 // Apr 1 - Jun 30 on the reduced principal
	approx(t, outcome.JudgmentTotal, reduced+i2, "judgment total")
}

func TestCalculate_DoesNotRefoldDamagesPostjudgment(t *testing.T) {
	// Damages are inside the judgment total; the postjudgment run must not
	// add them to principal a second time.

	calc := testCalc(t)
	state := interest.State{
		Jurisdiction:      "BC",
		CauseOfActionDate: date(2023, time.February, 1),
		JudgmentDate:      date(2023, time.June, 30),
		AccrualEndDate:    date(2023, time.October, 31),
		JudgmentAmount:    money(10000),
		SpecialDamages: []interest.SpecialDamage{
			{Date: date(2023, time.March, 15), Amount: money(500)},
		},
	}

	outcome := calc.Calculate(state)

	postSegments := segmentsOf(outcome.Postjudgment.Details)
	approx(t, postSegments[0].Principal, outcome.JudgmentTotal.Float64(), "postjudgment principal")
}

// =============================================================================
// PER DIEM
// =============================================================================

func TestPerDiem_ZeroGuards(t *testing.T) {
	calc := testCalc(t)

	cases := []struct {
		name  string
		state interest.State
	}{
		{"zero owing", interest.State{
			Jurisdiction: "BC", TotalOwing: money(0),
			FinalCalculationDate: date(2023, time.December, 31),
		}},
		{"negative owing", interest.State{
			Jurisdiction: "BC", TotalOwing: money(-50),
			FinalCalculationDate: date(2023, time.December, 31),
		}},
		{"missing date", interest.State{
			Jurisdiction: "BC", TotalOwing: money(10000),
		}},
		{"no rate coverage", interest.State{
			Jurisdiction: "BC", TotalOwing: money(10000),
			FinalCalculationDate: date(2030, time.January, 1),
		}},
	}
	for _, tc := range cases {
		if got := calc.PerDiem(tc.state); !got.IsZero() {
			t.Errorf("%s: expected exactly 0, got %s", tc.name, got)
		}
	}
}

func TestPerDiem_Positive(t *testing.T) {
	calc := testCalc(t)
	state := interest.State{
		Jurisdiction:         "BC",
		TotalOwing:           money(10000),
		FinalCalculationDate: date(2023, time.December, 31),
	}

	approx(t, calc.PerDiem(state), 10000*0.055/365, "per diem at 5.5%")
}
