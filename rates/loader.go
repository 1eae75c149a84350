/*
Package rates loads rate tables into the engine's RateTable form.

PURPOSE:
  Rate data is published as semi-annual spans per jurisdiction. This package
  owns the JSON wire form of those tables and ships an embedded copy of the
  published British Columbia Court Order Interest Act rates so a fresh
  install can calculate without any external data source.

JSON FORM:
  {
    "BC": [
      {"start": "2023-01-01", "end": "2023-07-01",
       "prejudgment": "4.45", "postjudgment": "6.45"},
      ...
    ]
  }

  Spans are half-open [start, end); adjacent spans share their boundary
  date. Rates are decimal strings to avoid float drift in the data file.

SEE ALSO:
  - interest/rates.go: the validated in-memory table
  - store/sqlite: persistence of the same data
*/
package rates

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/coibc/interest-engine/interest"
)

//go:embed bc.json
var embeddedBC []byte

// PeriodJSON is the wire form of one rate span.
type PeriodJSON struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	Prejudgment  string `json:"prejudgment"`
	Postjudgment string `json:"postjudgment"`
}

// TableJSON maps jurisdiction codes to their spans.
type TableJSON map[string][]PeriodJSON

// LoadJSON decodes and validates a rate table.
func LoadJSON(r io.Reader) (*interest.RateTable, error) {
	var raw TableJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode rate table: %w", err)
	}
	return FromJSON(raw)
}

// FromJSON builds a validated RateTable from the wire form.
func FromJSON(raw TableJSON) (*interest.RateTable, error) {
	table := interest.NewRateTable()
	for jurisdiction, spans := range raw {
		periods := make([]interest.RatePeriod, 0, len(spans))
		for i, span := range spans {
			period, err := parsePeriod(span)
			if err != nil {
				return nil, fmt.Errorf("jurisdiction %q period %d: %w", jurisdiction, i, err)
			}
			periods = append(periods, period)
		}
		if err := table.SetPeriods(jurisdiction, periods); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func parsePeriod(span PeriodJSON) (interest.RatePeriod, error) {
	start, err := interest.ParseDate(span.Start)
	if err != nil {
		return interest.RatePeriod{}, fmt.Errorf("start: %w", err)
	}
	end, err := interest.ParseDate(span.End)
	if err != nil {
		return interest.RatePeriod{}, fmt.Errorf("end: %w", err)
	}
	pre, err := decimal.NewFromString(span.Prejudgment)
	if err != nil {
		return interest.RatePeriod{}, fmt.Errorf("prejudgment rate: %w", err)
	}
	post, err := decimal.NewFromString(span.Postjudgment)
	if err != nil {
		return interest.RatePeriod{}, fmt.Errorf("postjudgment rate: %w", err)
	}
	return interest.RatePeriod{Start: start, End: end, Prejudgment: pre, Postjudgment: post}, nil
}

// ToJSON converts a table back to its wire form (used when seeding the
// store and by the rate admin endpoints).
func ToJSON(table *interest.RateTable) TableJSON {
	out := make(TableJSON)
	for _, jurisdiction := range table.Jurisdictions() {
		periods := table.Periods(jurisdiction)
		spans := make([]PeriodJSON, 0, len(periods))
		for _, p := range periods {
			spans = append(spans, PeriodJSON{
				Start:        p.Start.String(),
				End:          p.End.String(),
				Prejudgment:  p.Prejudgment.String(),
				Postjudgment: p.Postjudgment.String(),
			})
		}
		out[jurisdiction] = spans
	}
	return out
}

// Default returns the embedded published BC table.
func Default() (*interest.RateTable, error) {
	var raw TableJSON
	if err := json.Unmarshal(embeddedBC, &raw); err != nil {
		return nil, fmt.Errorf("embedded BC rate table: %w", err)
	}
	return FromJSON(raw)
}
