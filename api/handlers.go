/*
handlers.go - HTTP handlers for the interest calculation API

ENDPOINTS:
  POST /api/calculate             Run a full calculation (both interest
                                  types, totals, per-diem, breakdown rows)
  GET  /api/rates                 List known jurisdictions
  GET  /api/rates/{jurisdiction}  List a jurisdiction's published periods
  GET  /api/health                Liveness probe

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: validation errors, invalid input
  - 404: unknown jurisdiction
  - 500: internal errors

SEE ALSO:
  - dto.go: request/response data structures
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coibc/interest-engine/interest"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	calc *interest.Calculator
	log  zerolog.Logger
}

// NewHandler creates a handler around a calculator.
func NewHandler(calc *interest.Calculator, log zerolog.Logger) *Handler {
	return &Handler{calc: calc, log: log.With().Str("component", "api").Logger()}
}

// =============================================================================
// CALCULATION
// =============================================================================

// Calculate runs prejudgment + postjudgment interest and the per-diem
// projection for one validated form submission.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	state, err := req.ToState()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if !h.calc.Rates().HasJurisdiction(state.Jurisdiction) {
		writeError(w, http.StatusNotFound, "unknown jurisdiction", nil)
		return
	}

	outcome := h.calc.Calculate(state)

	writeJSON(w, http.StatusOK, CalculateResponse{
		ID:            uuid.NewString(),
		Jurisdiction:  state.Jurisdiction,
		Prejudgment:   toResultDTO(outcome.Prejudgment),
		Postjudgment:  toResultDTO(outcome.Postjudgment),
		JudgmentTotal: cents(outcome.JudgmentTotal),
		TotalOwing:    cents(outcome.TotalOwing),
		PerDiem:       cents(outcome.PerDiem),
	})
}

// =============================================================================
// RATE DATA
// =============================================================================

// ListJurisdictions returns the jurisdiction codes with rate data.
func (h *Handler) ListJurisdictions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"jurisdictions": h.calc.Rates().Jurisdictions(),
	})
}

// ListRatePeriods returns one jurisdiction's published periods.
func (h *Handler) ListRatePeriods(w http.ResponseWriter, r *http.Request) {
	jurisdiction := chi.URLParam(r, "jurisdiction")
	periods := h.calc.Rates().Periods(jurisdiction)
	if len(periods) == 0 {
		writeError(w, http.StatusNotFound, "unknown jurisdiction", nil)
		return
	}

	dtos := make([]RatePeriodDTO, 0, len(periods))
	for _, p := range periods {
		pre, _ := p.Prejudgment.Float64()
		post, _ := p.Postjudgment.Float64()
		dtos = append(dtos, RatePeriodDTO{
			Start:        p.Start.String(),
			End:          p.End.String(),
			Prejudgment:  pre,
			Postjudgment: post,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
