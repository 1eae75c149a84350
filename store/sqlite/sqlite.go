/*
Package sqlite provides the SQLite-backed rate data source.

PURPOSE:
  Rate tables are the only data this system persists: they are published
  reference data loaded once at startup and read-only afterwards. Keeping
  them in SQLite lets an operator ship rate updates without rebuilding the
  binary; user calculations themselves are never stored.

KEY TABLE:
  rate_periods: one row per jurisdiction per published span, with decimal
  rates stored as text to avoid float drift.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety around the connection. SQLite is
  opened in WAL mode so concurrent readers don't block.

USAGE:
  store, err := sqlite.New("./data/rates.db")
  if err != nil { log.Fatal(err) }
  defer store.Close()

  table, err := store.LoadTable(ctx)

SEE ALSO:
  - interest/rates.go: the validated in-memory table this loads into
  - rates: JSON form and the embedded default used to seed an empty store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/coibc/interest-engine/interest"
)

// Store is the SQLite rate data source.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at the given path and migrates the
// schema. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rate_periods (
		jurisdiction TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		prejudgment_rate TEXT NOT NULL,
		postjudgment_rate TEXT NOT NULL,
		PRIMARY KEY (jurisdiction, start_date)
	);

	CREATE INDEX IF NOT EXISTS idx_rate_periods_jurisdiction
		ON rate_periods(jurisdiction, start_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveTable replaces the stored periods for every jurisdiction in the table,
// atomically per call. Used to seed an empty store and to apply published
// rate updates.
func (s *Store) SaveTable(ctx context.Context, table *interest.RateTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, jurisdiction := range table.Jurisdictions() {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM rate_periods WHERE jurisdiction = ?`, jurisdiction); err != nil {
			return err
		}
		for _, p := range table.Periods(jurisdiction) {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO rate_periods
					(jurisdiction, start_date, end_date, prejudgment_rate, postjudgment_rate)
				VALUES (?, ?, ?, ?, ?)`,
				jurisdiction, p.Start.String(), p.End.String(),
				p.Prejudgment.String(), p.Postjudgment.String(),
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadTable reads every jurisdiction's periods into a validated RateTable.
func (s *Store) LoadTable(ctx context.Context) (*interest.RateTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT jurisdiction, start_date, end_date, prejudgment_rate, postjudgment_rate
		FROM rate_periods
		ORDER BY jurisdiction, start_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byJurisdiction := make(map[string][]interest.RatePeriod)
	for rows.Next() {
		var jurisdiction, start, end, pre, post string
		if err := rows.Scan(&jurisdiction, &start, &end, &pre, &post); err != nil {
			return nil, err
		}
		period, err := scanPeriod(start, end, pre, post)
		if err != nil {
			return nil, fmt.Errorf("jurisdiction %q: %w", jurisdiction, err)
		}
		byJurisdiction[jurisdiction] = append(byJurisdiction[jurisdiction], period)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	table := interest.NewRateTable()
	for jurisdiction, periods := range byJurisdiction {
		if err := table.SetPeriods(jurisdiction, periods); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Jurisdictions returns the jurisdiction codes present in the store.
func (s *Store) Jurisdictions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT jurisdiction FROM rate_periods ORDER BY jurisdiction`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// IsEmpty reports whether the store holds no rate data yet.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rate_periods`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func scanPeriod(start, end, pre, post string) (interest.RatePeriod, error) {
	startDate, err := interest.ParseDate(start)
	if err != nil {
		return interest.RatePeriod{}, fmt.Errorf("start date: %w", err)
	}
	endDate, err := interest.ParseDate(end)
	if err != nil {
		return interest.RatePeriod{}, fmt.Errorf("end date: %w", err)
	}
	preRate, err := decimal.NewFromString(pre)
	if err != nil {
		return interest.RatePeriod{}, fmt.Errorf("prejudgment rate: %w", err)
	}
	postRate, err := decimal.NewFromString(post)
	if err != nil {
		return interest.RatePeriod{}, fmt.Errorf("postjudgment rate: %w", err)
	}
	return interest.RatePeriod{
		Start: startDate, End: endDate,
		Prejudgment: preRate, Postjudgment: postRate,
	}, nil
}
