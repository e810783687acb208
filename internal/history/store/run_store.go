// ============================================================================
// llrec - LL(1) Recognizer
// ============================================================================
//
// Package:     store
// Description: SQLite persistence for recognizer runs
// Author:      msto63
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	llerror "github.com/msto63/llrec/foundation/core/error"
	"github.com/msto63/llrec/foundation/ll1/parser"
)

// Verdict is the final state of a run
type Verdict string

const (
	VerdictAccepted Verdict = "ACCEPTED"
	VerdictRejected Verdict = "REJECTED"
)

// Run is one recorded recognizer run
type Run struct {
	ID           string              `json:"id"`
	Timestamp    time.Time           `json:"timestamp"`
	Origin       string              `json:"origin"`
	Table        string              `json:"table"`
	Source       string              `json:"source"`
	Lexed        string              `json:"lexed"`
	Verdict      Verdict             `json:"verdict"`
	ErrorKind    string              `json:"error_kind,omitempty"`
	ErrorMessage string              `json:"error_message,omitempty"`
	Steps        int                 `json:"steps"`
	Consumed     int                 `json:"consumed"`
	Duration     time.Duration       `json:"duration_ns"`
	Trace        []parser.TraceEvent `json:"trace,omitempty"`
}

// RunFilter defines criteria for filtering runs
type RunFilter struct {
	Verdict   Verdict
	Table     string
	Origin    string
	ErrorKind string
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// RunStats contains aggregated run statistics
type RunStats struct {
	Total       int64            `json:"total"`
	Accepted    int64            `json:"accepted"`
	Rejected    int64            `json:"rejected"`
	ByErrorKind map[string]int64 `json:"by_error_kind"`
	ByTable     map[string]int64 `json:"by_table"`
	AvgSteps    float64          `json:"avg_steps"`
	LastRun     time.Time        `json:"last_run,omitempty"`
}

// RunStore defines the interface for run persistence
type RunStore interface {
	Record(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	Query(ctx context.Context, filter RunFilter) ([]*Run, error)
	Stats(ctx context.Context) (*RunStats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// SQLiteRunStore implements RunStore using SQLite
type SQLiteRunStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteRunConfig holds configuration for the SQLite store
type SQLiteRunConfig struct {
	Path string
}

// DefaultRunConfig returns default configuration
func DefaultRunConfig() SQLiteRunConfig {
	return SQLiteRunConfig{
		Path: "./data/history.db",
	}
}

func storageError(err error, msg, op string) *llerror.Error {
	return llerror.Wrap(err, msg).
		WithCode(llerror.CodeStorageError).
		WithOperation(op)
}

// NewSQLiteRunStore opens or creates the run database
func NewSQLiteRunStore(cfg SQLiteRunConfig) (*SQLiteRunStore, error) {
	if cfg.Path == "" {
		cfg = DefaultRunConfig()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, storageError(err, "failed to create directory", "store.Open")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, storageError(err, "failed to open database", "store.Open")
	}

	s := &SQLiteRunStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, storageError(err, "failed to initialize schema", "store.Open")
	}

	return s, nil
}

func (s *SQLiteRunStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		origin TEXT NOT NULL,
		grammar_table TEXT NOT NULL,
		source TEXT NOT NULL,
		lexed TEXT NOT NULL,
		verdict TEXT NOT NULL,
		error_kind TEXT,
		error_message TEXT,
		steps INTEGER NOT NULL,
		consumed INTEGER NOT NULL,
		duration_ns INTEGER NOT NULL,
		trace TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_verdict ON runs(verdict);
	CREATE INDEX IF NOT EXISTS idx_runs_error_kind ON runs(error_kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run. Missing timestamps are set to now.
func (s *SQLiteRunStore) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		return llerror.New("run ID is required").
			WithCode(llerror.CodeInvalidInput).
			WithOperation("store.Record")
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	run.Timestamp = run.Timestamp.UTC()

	var traceJSON []byte
	if len(run.Trace) > 0 {
		var err error
		if traceJSON, err = json.Marshal(run.Trace); err != nil {
			return storageError(err, "failed to encode trace", "store.Record")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, timestamp, origin, grammar_table, source, lexed, verdict,
			error_kind, error_message, steps, consumed, duration_ns, trace)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Timestamp, run.Origin, run.Table, run.Source, run.Lexed, run.Verdict,
		nullString(run.ErrorKind), nullString(run.ErrorMessage), run.Steps, run.Consumed,
		int64(run.Duration), nullBytes(traceJSON))
	if err != nil {
		return storageError(err, "failed to insert run", "store.Record").WithDetail("id", run.ID)
	}

	return nil
}

// Get returns a run including its trace
func (s *SQLiteRunStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, origin, grammar_table, source, lexed, verdict,
			error_kind, error_message, steps, consumed, duration_ns, trace
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, llerror.Newf("run not found: %s", id).
			WithCode(llerror.CodeNotFound).
			WithOperation("store.Get").
			WithDetail("id", id)
	}
	if err != nil {
		return nil, storageError(err, "failed to load run", "store.Get").WithDetail("id", id)
	}
	return run, nil
}

// Query returns runs matching filter, newest first, without traces
func (s *SQLiteRunStore) Query(ctx context.Context, filter RunFilter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, origin, grammar_table, source, lexed, verdict,
		error_kind, error_message, steps, consumed, duration_ns, NULL FROM runs WHERE 1=1`
	var args []interface{}

	if filter.Verdict != "" {
		query += " AND verdict = ?"
		args = append(args, filter.Verdict)
	}
	if filter.Table != "" {
		query += " AND grammar_table = ?"
		args = append(args, filter.Table)
	}
	if filter.Origin != "" {
		query += " AND origin = ?"
		args = append(args, filter.Origin)
	}
	if filter.ErrorKind != "" {
		query += " AND error_kind = ?"
		args = append(args, filter.ErrorKind)
	}
	if !filter.StartTime.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.StartTime.UTC())
	}
	if !filter.EndTime.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.EndTime.UTC())
	}

	query += " ORDER BY timestamp DESC, id"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "failed to query runs", "store.Query")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows, false)
		if err != nil {
			return nil, storageError(err, "failed to scan run", "store.Query")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to iterate runs", "store.Query")
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner, withTrace bool) (*Run, error) {
	var run Run
	var errorKind, errorMessage, traceJSON sql.NullString
	var durationNS int64

	if err := sc.Scan(&run.ID, &run.Timestamp, &run.Origin, &run.Table, &run.Source, &run.Lexed,
		&run.Verdict, &errorKind, &errorMessage, &run.Steps, &run.Consumed, &durationNS, &traceJSON); err != nil {
		return nil, err
	}

	run.ErrorKind = errorKind.String
	run.ErrorMessage = errorMessage.String
	run.Duration = time.Duration(durationNS)
	if withTrace && traceJSON.Valid {
		if err := json.Unmarshal([]byte(traceJSON.String), &run.Trace); err != nil {
			return nil, err
		}
	}
	return &run, nil
}

// Stats returns aggregated run statistics
func (s *SQLiteRunStore) Stats(ctx context.Context) (*RunStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &RunStats{
		ByErrorKind: make(map[string]int64),
		ByTable:     make(map[string]int64),
	}

	var avgSteps sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN verdict = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN verdict = ? THEN 1 ELSE 0 END), 0),
			AVG(steps)
		FROM runs`, VerdictAccepted, VerdictRejected).
		Scan(&stats.Total, &stats.Accepted, &stats.Rejected, &avgSteps)
	if err != nil {
		return nil, storageError(err, "failed to count runs", "store.Stats")
	}
	stats.AvgSteps = avgSteps.Float64

	if err := s.countBy(ctx, `SELECT error_kind, COUNT(*) FROM runs WHERE error_kind IS NOT NULL GROUP BY error_kind`, stats.ByErrorKind); err != nil {
		return nil, err
	}
	if err := s.countBy(ctx, `SELECT grammar_table, COUNT(*) FROM runs GROUP BY grammar_table`, stats.ByTable); err != nil {
		return nil, err
	}

	// MAX() loses the column type, so the newest row is read directly
	var last time.Time
	err = s.db.QueryRowContext(ctx, `SELECT timestamp FROM runs ORDER BY timestamp DESC LIMIT 1`).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, storageError(err, "failed to read last run", "store.Stats")
	default:
		stats.LastRun = last
	}

	return stats, nil
}

func (s *SQLiteRunStore) countBy(ctx context.Context, query string, into map[string]int64) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return storageError(err, "failed to aggregate runs", "store.Stats")
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return storageError(err, "failed to scan aggregate", "store.Stats")
		}
		into[key] = count
	}
	return rows.Err()
}

// Prune deletes runs older than the given age and returns how many were
// removed
func (s *SQLiteRunStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, storageError(err, "failed to prune runs", "store.Prune")
	}
	return result.RowsAffected()
}

// Ping verifies the database is reachable
func (s *SQLiteRunStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storageError(err, "database unreachable", "store.Ping")
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteRunStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullBytes(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
