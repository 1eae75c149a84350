/*
dto.go - Request/response types for the calculation API

PURPOSE:
  The DTO layer is the system boundary the engine spec assumes: dates arrive
  as YYYY-MM-DD strings and are normalized to DatePoints exactly once here,
  amounts are validated non-negative, and unparseable special-damage entries
  are dropped before anything reaches the engine.

NAMING CONVENTION:
  - *Request: request body types from clients
  - *DTO: response types returned to clients

SEE ALSO:
  - handlers.go: uses these types
  - interest/types.go: the engine-side State these build
*/
package api

import (
	"errors"
	"fmt"

	"github.com/coibc/interest-engine/interest"
)

// errMissingDates mirrors the user-facing message the form layer shows for
// any invalid required date.
var errMissingDates = errors.New("one or more required dates are missing or invalid")

// =============================================================================
// REQUESTS
// =============================================================================

// SpecialDamageRequest is one dated lump sum added to principal.
type SpecialDamageRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// PaymentRequest is one dated payment; the split may be supplied when the
// client is replaying a previously allocated chain, otherwise the engine
// allocates it interest-first.
type PaymentRequest struct {
	Date             string   `json:"date"`
	Amount           float64  `json:"amount"`
	InterestApplied  *float64 `json:"interest_applied,omitempty"`
	PrincipalApplied *float64 `json:"principal_applied,omitempty"`
}

// CalculateRequest is the full calculation input.
type CalculateRequest struct {
	Jurisdiction      string                 `json:"jurisdiction"`
	CauseOfActionDate string                 `json:"cause_of_action_date"`
	JudgmentDate      string                 `json:"judgment_date"`
	AccrualEndDate    string                 `json:"accrual_end_date,omitempty"`
	JudgmentAwarded   float64                `json:"judgment_awarded"`
	SpecialDamages    []SpecialDamageRequest `json:"special_damages,omitempty"`
	Payments          []PaymentRequest       `json:"payments,omitempty"`
}

// ToState validates the request and builds the engine State. Invalid special
// damages are dropped; invalid required dates and negative amounts are
// rejected outright.
func (r CalculateRequest) ToState() (interest.State, error) {
	if r.Jurisdiction == "" {
		return interest.State{}, errors.New("jurisdiction is required")
	}
	if r.JudgmentAwarded < 0 {
		return interest.State{}, errors.New("judgment awarded must not be negative")
	}

	causeDate, err1 := interest.ParseDate(r.CauseOfActionDate)
	judgmentDate, err2 := interest.ParseDate(r.JudgmentDate)
	if err1 != nil || err2 != nil {
		return interest.State{}, errMissingDates
	}
	if causeDate.After(judgmentDate) {
		return interest.State{}, errors.New("cause of action date must not be after judgment date")
	}

	state := interest.State{
		Jurisdiction:      r.Jurisdiction,
		CauseOfActionDate: causeDate,
		JudgmentDate:      judgmentDate,
		JudgmentAmount:    interest.NewMoney(r.JudgmentAwarded),
	}

	if r.AccrualEndDate != "" {
		endDate, err := interest.ParseDate(r.AccrualEndDate)
		if err != nil {
			return interest.State{}, errMissingDates
		}
		if endDate.Before(judgmentDate) {
			return interest.State{}, errors.New("accrual end date must not be before judgment date")
		}
		state.AccrualEndDate = endDate
	}

	for _, d := range r.SpecialDamages {
		date, err := interest.ParseDate(d.Date)
		if err != nil || d.Amount <= 0 {
			// Partially filled rows are dropped, not rejected: the user may
			// still be typing.
			continue
		}
		state.SpecialDamages = append(state.SpecialDamages, interest.SpecialDamage{
			Date:        date,
			Amount:      interest.NewMoney(d.Amount),
			Description: d.Description,
		})
	}

	for i, p := range r.Payments {
		date, err := interest.ParseDate(p.Date)
		if err != nil {
			return interest.State{}, fmt.Errorf("payment %d: invalid date", i+1)
		}
		if p.Amount <= 0 {
			return interest.State{}, fmt.Errorf("payment %d: amount must be positive", i+1)
		}
		payment := interest.Payment{Date: date, Amount: interest.NewMoney(p.Amount)}
		if p.InterestApplied != nil && p.PrincipalApplied != nil {
			payment.InterestApplied = interest.NewMoney(*p.InterestApplied)
			payment.PrincipalApplied = interest.NewMoney(*p.PrincipalApplied)
			payment.Allocated = true
		}
		state.Payments = append(state.Payments, payment)
	}

	return state, nil
}

// =============================================================================
// RESPONSES
// =============================================================================

// RowDTO is one breakdown line: an accrual segment or a payment marker.
type RowDTO struct {
	Kind string `json:"kind"` // "segment" or "payment"

	// Segment fields
	Start       string  `json:"start,omitempty"`
	End         string  `json:"end,omitempty"`
	Rate        float64 `json:"rate,omitempty"`
	Principal   float64 `json:"principal,omitempty"`
	Interest    float64 `json:"interest,omitempty"`
	Days        int     `json:"days,omitempty"`
	Description string  `json:"description,omitempty"`

	// Payment fields
	Date               string  `json:"date,omitempty"`
	Amount             float64 `json:"amount,omitempty"`
	InterestApplied    float64 `json:"interest_applied,omitempty"`
	PrincipalApplied   float64 `json:"principal_applied,omitempty"`
	RemainingPrincipal float64 `json:"remaining_principal,omitempty"`
}

// FinalPeriodDamageDTO is one individually dated final-period interest line.
type FinalPeriodDamageDTO struct {
	Date        string  `json:"date"`
	Principal   float64 `json:"principal"`
	Rate        float64 `json:"rate"`
	Interest    float64 `json:"interest"`
	Description string  `json:"description,omitempty"`
}

// ResultDTO is one interest type's breakdown.
type ResultDTO struct {
	Details            []RowDTO               `json:"details"`
	Total              float64                `json:"total"`
	Principal          float64                `json:"principal"`
	FinalPeriodDamages []FinalPeriodDamageDTO `json:"final_period_damages,omitempty"`
}

// CalculateResponse is the full calculation output.
type CalculateResponse struct {
	ID            string    `json:"id"`
	Jurisdiction  string    `json:"jurisdiction"`
	Prejudgment   ResultDTO `json:"prejudgment"`
	Postjudgment  ResultDTO `json:"postjudgment"`
	JudgmentTotal float64   `json:"judgment_total"`
	TotalOwing    float64   `json:"total_owing"`
	PerDiem       float64   `json:"per_diem"`
}

// RatePeriodDTO is one published rate span.
type RatePeriodDTO struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Prejudgment  float64 `json:"prejudgment"`
	Postjudgment float64 `json:"postjudgment"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func cents(m interest.Money) float64 { return m.Round2().Float64() }

func toResultDTO(r interest.Result) ResultDTO {
	dto := ResultDTO{
		Details:   make([]RowDTO, 0, len(r.Details)),
		Total:     cents(r.Total),
		Principal: cents(r.Principal),
	}
	for _, row := range r.Details {
		dto.Details = append(dto.Details, toRowDTO(row))
	}
	for _, d := range r.FinalPeriodDamages {
		rate, _ := d.Rate.Float64()
		dto.FinalPeriodDamages = append(dto.FinalPeriodDamages, FinalPeriodDamageDTO{
			Date:        d.DamageDate.String(),
			Principal:   cents(d.Principal),
			Rate:        rate,
			Interest:    cents(d.Interest),
			Description: d.Description,
		})
	}
	return dto
}

func toRowDTO(row interest.Row) RowDTO {
	if row.IsPayment() {
		p := row.Payment
		return RowDTO{
			Kind:               "payment",
			Date:               p.Date.String(),
			Amount:             cents(p.Amount),
			InterestApplied:    cents(p.InterestApplied),
			PrincipalApplied:   cents(p.PrincipalApplied),
			RemainingPrincipal: cents(p.RemainingPrincipal),
		}
	}
	s := row.Segment
	rate, _ := s.Rate.Float64()
	return RowDTO{
		Kind:        "segment",
		Start:       s.Start.String(),
		End:         s.End.String(),
		Rate:        rate,
		Principal:   cents(s.Principal),
		Interest:    cents(s.Interest),
		Days:        s.Days,
		Description: s.Description,
	}
}
