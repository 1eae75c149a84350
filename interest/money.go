package interest

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - CAD amount backed by decimal.Decimal
// =============================================================================

// Money is a Canadian-dollar amount. All arithmetic stays in decimal form;
// rounding to cents happens only at the presentation boundary.
type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value)}
}

func NewMoneyFromInt(value int) Money {
	return Money{Value: decimal.NewFromInt(int64(value))}
}

// MoneyFromString parses a plain decimal string ("1234.56"). Invalid input
// yields zero, matching the fail-soft posture of the rest of the engine.
func MoneyFromString(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{Value: decimal.Zero}
	}
	return Money{Value: d}
}

func ZeroMoney() Money { return Money{Value: decimal.Zero} }

func (m Money) Add(b Money) Money           { return Money{Value: m.Value.Add(b.Value)} }
func (m Money) Sub(b Money) Money           { return Money{Value: m.Value.Sub(b.Value)} }
func (m Money) Mul(s decimal.Decimal) Money { return Money{Value: m.Value.Mul(s)} }
func (m Money) Neg() Money                  { return Money{Value: m.Value.Neg()} }
func (m Money) IsZero() bool                { return m.Value.IsZero() }
func (m Money) IsNegative() bool            { return m.Value.IsNegative() }
func (m Money) IsPositive() bool            { return m.Value.IsPositive() }
func (m Money) GreaterThan(b Money) bool    { return m.Value.GreaterThan(b.Value) }
func (m Money) LessThan(b Money) bool       { return m.Value.LessThan(b.Value) }

func (m Money) Min(b Money) Money {
	if m.LessThan(b) {
		return m
	}
	return b
}

func (m Money) Max(b Money) Money {
	if m.GreaterThan(b) {
		return m
	}
	return b
}

// Float64 returns the amount as a float64 for presentation and epsilon
// comparisons. Never used for further arithmetic inside the engine.
func (m Money) Float64() float64 {
	f, _ := m.Value.Float64()
	return f
}

// Round2 rounds to cents. Presentation only.
func (m Money) Round2() Money { return Money{Value: m.Value.Round(2)} }

func (m Money) String() string { return m.Value.StringFixed(2) }

// simpleInterest computes principal * (rate/100) * days / yearDays.
// Negative principal yields negative interest (a running refund position
// after an overpayment keeps accruing in the payer's favour).
func simpleInterest(principal Money, rate decimal.Decimal, days, yearDays int) Money {
	if days <= 0 || yearDays <= 0 {
		return ZeroMoney()
	}
	factor := rate.
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(int64(yearDays)))
	return principal.Mul(factor)
}
