// Package store persists admitted accident records in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"roadrisk/internal/domain"
)

// ErrNotFound is returned when no record matches the requested ID.
var ErrNotFound = errors.New("record not found")

// Rejection names the input index that failed admission and why.
type Rejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// InsertResult reports the outcome of a bulk insert: the records admitted
// plus per-index rejection reasons for the inputs that were not.
type InsertResult struct {
	Admitted []domain.Record `json:"admitted"`
	Rejected []Rejection     `json:"rejected"`
}

// Store is the SQLite-backed record store. All reads return records in
// insertion order so repeated engine runs over the same data are
// reproducible.
type Store struct {
	db        *sql.DB
	validator *domain.Validator
}

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	accident_no TEXT UNIQUE NOT NULL,
	date TEXT NOT NULL DEFAULT '',
	time TEXT NOT NULL DEFAULT '',
	day_of_week TEXT NOT NULL DEFAULT '',
	time_of_day TEXT NOT NULL DEFAULT '',
	area TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	fatalities INTEGER NOT NULL DEFAULT 0,
	injuries INTEGER NOT NULL DEFAULT 0,
	persons_involved INTEGER NOT NULL DEFAULT 0,
	severity TEXT NOT NULL DEFAULT '',
	cause TEXT NOT NULL,
	weather TEXT NOT NULL DEFAULT '',
	road_condition TEXT NOT NULL DEFAULT '',
	light_condition TEXT NOT NULL DEFAULT '',
	police_response_min REAL,
	ambulance_response_min REAL,
	ingested_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_area ON records(area);
CREATE INDEX IF NOT EXISTS idx_records_date ON records(date);
`

const recordColumns = `id, accident_no, date, time, day_of_week, time_of_day, area,
	latitude, longitude, fatalities, injuries, persons_involved, severity, cause,
	weather, road_condition, light_condition, police_response_min, ambulance_response_min,
	ingested_at`

const insertSQL = `INSERT INTO records (` + recordColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Open opens (creating if necessary) the SQLite database at path and ensures
// the schema exists. Inputs are admitted through validator before insertion.
// Pass ":memory:" for an ephemeral store in tests.
func Open(path string, validator *domain.Validator) (*Store, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite performs best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, validator: validator}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CheckReadiness reports whether the database is reachable.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// InsertMany admits and inserts a batch of inputs in a single transaction.
// Inputs are judged individually: a validation failure or duplicate accident
// number rejects that input with a per-index reason and the rest of the
// batch proceeds. The returned error covers storage failures only.
func (s *Store) InsertMany(ctx context.Context, inputs []domain.RecordInput) (InsertResult, error) {
	var res InsertResult
	if len(inputs) == 0 {
		return res, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return res, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, in := range inputs {
		rec, err := s.validator.Admit(in)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Reason: err.Error()})
			continue
		}

		_, err = stmt.ExecContext(ctx,
			rec.ID, rec.AccidentNo, rec.Date, rec.Time, rec.DayOfWeek, rec.TimeOfDay,
			rec.Area, rec.Latitude, rec.Longitude, rec.Fatalities, rec.Injuries,
			rec.PersonsInvolved, rec.Severity, rec.Cause, rec.Weather, rec.RoadCondition,
			rec.LightCondition, rec.PoliceResponseMin, rec.AmbulanceResponseMin, rec.IngestedAt,
		)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Reason: insertReason(err)})
			continue
		}
		res.Admitted = append(res.Admitted, rec)
	}

	if err := tx.Commit(); err != nil {
		return InsertResult{}, fmt.Errorf("commit insert: %w", err)
	}
	return res, nil
}

// All returns every record in insertion order.
func (s *Store) All(ctx context.Context) ([]domain.Record, error) {
	return s.queryRecords(ctx, `SELECT `+recordColumns+` FROM records ORDER BY rowid`)
}

// ByID returns the record with the given ID, or ErrNotFound.
func (s *Store) ByID(ctx context.Context, id string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, ErrNotFound
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("query record %s: %w", id, err)
	}
	return rec, nil
}

// ByArea returns the records reported in the given area, in insertion order.
func (s *Store) ByArea(ctx context.Context, area string) ([]domain.Record, error) {
	return s.queryRecords(ctx, `SELECT `+recordColumns+` FROM records WHERE area = ? ORDER BY rowid`, area)
}

// ByDateRange returns the records whose date falls in [start, end], both
// ISO 8601 (YYYY-MM-DD), in insertion order. Dates are normalized to ISO at
// admission, so the comparison is lexical; records with unparseable dates
// never match.
func (s *Store) ByDateRange(ctx context.Context, start, end string) ([]domain.Record, error) {
	return s.queryRecords(ctx,
		`SELECT `+recordColumns+` FROM records WHERE date >= ? AND date <= ? ORDER BY rowid`,
		domain.NormalizeDate(start), domain.NormalizeDate(end))
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.Record, error) {
	var rec domain.Record
	var police, ambulance sql.NullFloat64

	err := row.Scan(
		&rec.ID, &rec.AccidentNo, &rec.Date, &rec.Time, &rec.DayOfWeek, &rec.TimeOfDay,
		&rec.Area, &rec.Latitude, &rec.Longitude, &rec.Fatalities, &rec.Injuries,
		&rec.PersonsInvolved, &rec.Severity, &rec.Cause, &rec.Weather, &rec.RoadCondition,
		&rec.LightCondition, &police, &ambulance, &rec.IngestedAt,
	)
	if err != nil {
		return domain.Record{}, err
	}

	if police.Valid {
		rec.PoliceResponseMin = &police.Float64
	}
	if ambulance.Valid {
		rec.AmbulanceResponseMin = &ambulance.Float64
	}
	return rec, nil
}

// insertReason maps driver errors to client-facing rejection reasons.
func insertReason(err error) string {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return "duplicate accident_no"
	}
	return err.Error()
}
