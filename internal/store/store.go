// Package store archives benchmark reports in a SQLite database so that
// sweeps can be compared over time.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver

	"github.com/randomizedcoder/elimination-pq/internal/bench"
)

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

const schema = `
CREATE TABLE IF NOT EXISTS sweeps (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	started  INTEGER NOT NULL,
	threads  INTEGER NOT NULL,
	pushes   INTEGER NOT NULL,
	pops     INTEGER NOT NULL,
	runs     INTEGER NOT NULL,
	keys     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	sweep_id      INTEGER NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
	variant       TEXT NOT NULL,
	threads       INTEGER NOT NULL,
	mean_ms       REAL NOT NULL,
	per_thread_ms REAL NOT NULL,
	ops_per_sec   REAL NOT NULL,
	empty         INTEGER NOT NULL,
	PRIMARY KEY (sweep_id, variant, threads)
);

CREATE INDEX IF NOT EXISTS results_variant ON results(variant, sweep_id);
`

const insertResult = `
INSERT INTO results (sweep_id, variant, threads, mean_ms, per_thread_ms, ops_per_sec, empty)
VALUES (?, ?, ?, ?, ?, ?, ?)`

// Row is one archived thread-count measurement.
type Row struct {
	SweepID int64
	Started time.Time
	Params  bench.Params
	Variant string
	bench.ThreadResult
}

// Store is a results archive. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and makes sure the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection also keeps the
	// connection-scoped pragmas in force.
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: executing %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save archives rep in one transaction and returns the new sweep id.
func (s *Store) Save(ctx context.Context, rep bench.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, s.wrap("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	p := rep.Params
	res, err := tx.ExecContext(ctx,
		`INSERT INTO sweeps (started, threads, pushes, pops, runs, keys) VALUES (?, ?, ?, ?, ?, ?)`,
		rep.Started.UnixNano(), p.Threads, p.Pushes, p.Pops, p.Runs, p.Keys)
	if err != nil {
		return 0, s.wrap("inserting sweep", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, s.wrap("reading sweep id", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertResult)
	if err != nil {
		return 0, s.wrap("preparing insert", err)
	}
	defer stmt.Close()

	for _, r := range rep.Results {
		for _, tr := range r.Threads {
			if _, err := stmt.ExecContext(ctx, id, r.Variant, tr.Threads,
				tr.MeanMillis, tr.PerThreadMillis, tr.OpsPerSec, int64(tr.Empty)); err != nil {
				return 0, s.wrap("inserting result", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, s.wrap("committing", err)
	}
	return id, nil
}

// Recent returns the rows of the limit most recent sweeps, newest sweep
// first and ordered by variant and thread count within a sweep. An empty
// variant matches every variant.
func (s *Store) Recent(ctx context.Context, variant string, limit int) ([]Row, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.started, s.threads, s.pushes, s.pops, s.runs, s.keys,
		       r.variant, r.threads, r.mean_ms, r.per_thread_ms, r.ops_per_sec, r.empty
		FROM results r
		JOIN sweeps s ON s.id = r.sweep_id
		WHERE s.id IN (
			SELECT DISTINCT sweep_id FROM results
			WHERE ? = '' OR variant = ?
			ORDER BY sweep_id DESC
			LIMIT ?
		)
		AND (? = '' OR r.variant = ?)
		ORDER BY s.id DESC, r.variant, r.threads`,
		variant, variant, limit, variant, variant)
	if err != nil {
		return nil, s.wrap("querying results", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var started, empty int64
		if err := rows.Scan(&r.SweepID, &started,
			&r.Params.Threads, &r.Params.Pushes, &r.Params.Pops, &r.Params.Runs, &r.Params.Keys,
			&r.Variant, &r.Threads, &r.MeanMillis, &r.PerThreadMillis, &r.OpsPerSec, &empty); err != nil {
			return nil, s.wrap("scanning result", err)
		}
		r.Started = time.Unix(0, started).UTC()
		r.Empty = uint64(empty)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap("iterating results", err)
	}
	return out, nil
}

func (s *Store) wrap(op string, err error) error {
	return fmt.Errorf("store: %s: %w", op, err)
}
