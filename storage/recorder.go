package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one unit of raw bus traffic: an NMEA line or the hex of a SeaTalk
// frame. Err holds the decode error text, if any.
type Record struct {
	ID       int64
	At       time.Time
	Protocol string
	Data     string
	Err      string
}

// Recorder appends raw traffic to a SQLite database so that sessions can be
// replayed through the decoders later.
type Recorder struct {
	db *sql.DB
}

func OpenRecorder(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open recorder: %w", err)
	}

	// One connection keeps the pragmas and serializes writers.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		`CREATE TABLE IF NOT EXISTS records (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			at       INTEGER NOT NULL,
			protocol TEXT    NOT NULL,
			data     TEXT    NOT NULL,
			err      TEXT    NOT NULL DEFAULT ''
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", stmt, err)
		}
	}

	return &Recorder{db: db}, nil
}

func (r *Recorder) Close() error {
	return r.db.Close()
}

// Append stores rec and returns its id. A zero At is replaced by the current
// time.
func (r *Recorder) Append(ctx context.Context, rec Record) (int64, error) {
	if rec.At.IsZero() {
		rec.At = time.Now()
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO records (at, protocol, data, err) VALUES (?, ?, ?, ?)",
		rec.At.UnixNano(), rec.Protocol, rec.Data, rec.Err)
	if err != nil {
		return 0, fmt.Errorf("append record: %w", err)
	}

	return res.LastInsertId()
}

// Replay calls fn for every record in insertion order until fn returns an
// error.
func (r *Recorder) Replay(ctx context.Context, fn func(Record) error) error {
	rows, err := r.db.QueryContext(ctx, "SELECT id, at, protocol, data, err FROM records ORDER BY id")
	if err != nil {
		return fmt.Errorf("replay records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec Record
			at  int64
		)

		if err := rows.Scan(&rec.ID, &at, &rec.Protocol, &rec.Data, &rec.Err); err != nil {
			return fmt.Errorf("scan record: %w", err)
		}

		rec.At = time.Unix(0, at)
		if err := fn(rec); err != nil {
			return err
		}
	}

	return rows.Err()
}
