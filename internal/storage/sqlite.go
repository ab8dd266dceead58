// Package storage provides SQLite-based persistence for catapult runs and
// the shared tunable parameters.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/catapult/internal/catapult"
	"github.com/vovakirdan/catapult/internal/config"
)

// Week is the default leaderboard window.
const Week = 7 * 24 * time.Hour

// tunablesKey names the config row holding the obstacles and player sub-tree.
const tunablesKey = "tunables"

// Store manages the SQLite database connection for run and config persistence.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// RunEntry is one row of the runs table.
type RunEntry struct {
	ID       string
	Name     string
	Score    int
	Hits     int
	Distance float64
	Outcome  string
	Start    time.Time
	End      time.Time // Zero while the run is in flight
}

// Stats contains aggregated statistics over finished runs.
type Stats struct {
	Runs       int
	HighScore  int
	AvgScore   float64
	TotalHits  int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_start INTEGER NOT NULL DEFAULT 0,
			game_end INTEGER,
			score INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			distance REAL NOT NULL DEFAULT 0,
			name TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_runs_end ON runs(game_end);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);

		CREATE TABLE IF NOT EXISTS config (
			key TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms sql.NullInt64) time.Time {
	if !ms.Valid || ms.Int64 == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms.Int64)
}

// CreateRun records the start of a run.
func (s *Store) CreateRun(ctx context.Context, id string, start time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, game_start) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET game_start = excluded.game_start`,
		id, millis(start),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot create run: %w", err)
	}
	return nil
}

// UpdateRun writes the final result of a run, creating the row if needed.
func (s *Store) UpdateRun(ctx context.Context, res catapult.RunResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, game_start, game_end, score, hits, distance, name, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   game_start = excluded.game_start,
		   game_end = excluded.game_end,
		   score = excluded.score,
		   hits = excluded.hits,
		   distance = excluded.distance,
		   name = excluded.name,
		   outcome = excluded.outcome`,
		res.ID, millis(res.Start), millis(res.End), res.Score, res.Hits, res.Distance,
		catapult.DisplayName(res.Name), res.Outcome.String(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update run: %w", err)
	}
	return nil
}

const runColumns = `id, name, score, hits, distance, outcome, game_start, game_end`

func scanRun(rows interface{ Scan(...any) error }) (RunEntry, error) {
	var e RunEntry
	var start, end sql.NullInt64
	if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Hits, &e.Distance, &e.Outcome, &start, &end); err != nil {
		return e, err
	}
	e.Start = fromMillis(start)
	e.End = fromMillis(end)
	return e, nil
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// TopScore returns the best run that ended at or after since.
// The boolean is false when no run qualifies.
func (s *Store) TopScore(ctx context.Context, since time.Time) (RunEntry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_end IS NOT NULL AND game_end >= ?
		 ORDER BY score DESC, game_end ASC
		 LIMIT 1`,
		millis(since),
	)
	e, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunEntry{}, false, nil
	}
	if err != nil {
		return RunEntry{}, false, fmt.Errorf("storage: cannot query top score: %w", err)
	}
	return e, true, nil
}

// TopRuns retrieves the best finished runs that ended at or after since.
// A zero since means all time.
func (s *Store) TopRuns(ctx context.Context, limit int, since time.Time) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var from int64
	if !since.IsZero() {
		from = millis(since)
	}
	return s.queryRuns(ctx,
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_end IS NOT NULL AND game_end >= ?
		 ORDER BY score DESC, game_end ASC
		 LIMIT ?`,
		from, limit,
	)
}

// RecentRuns retrieves the most recently finished runs.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(ctx,
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_end IS NOT NULL
		 ORDER BY game_end DESC
		 LIMIT ?`,
		limit,
	)
}

// ClearRuns deletes every run.
func (s *Store) ClearRuns(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats returns aggregated statistics over finished runs.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var last sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(hits), 0), MAX(game_end)
		 FROM runs WHERE game_end IS NOT NULL`,
	).Scan(&st.Runs, &st.HighScore, &st.AvgScore, &st.TotalHits, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = fromMillis(last)
	return st, nil
}

// LoadParams merges the stored obstacles and player sub-tree over base.
// Without a stored document base is returned unchanged. Stored values that
// do not validate keep their value from base; the error then satisfies
// config.IsInvalid and the returned params are usable.
func (s *Store) LoadParams(ctx context.Context, base config.Params) (config.Params, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM config WHERE key = ?", tunablesKey).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return base, nil
	}
	if err != nil {
		return base, fmt.Errorf("storage: cannot load config: %w", err)
	}
	p, err := config.MergeTunables(base, []byte(body))
	if config.IsInvalid(err) {
		return p, fmt.Errorf("storage: stored config rejected: %w", err)
	}
	if err != nil {
		return base, fmt.Errorf("storage: cannot decode config: %w", err)
	}
	return p, nil
}

// SaveParams stores the obstacles and player sub-tree of p.
func (s *Store) SaveParams(ctx context.Context, p config.Params) error {
	body, err := config.MarshalTunables(p)
	if err != nil {
		return fmt.Errorf("storage: cannot encode config: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO config (key, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		tunablesKey, string(body), millis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save config: %w", err)
	}
	return nil
}

// ResetParams removes the stored parameters so defaults apply again.
func (s *Store) ResetParams(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM config WHERE key = ?", tunablesKey); err != nil {
		return fmt.Errorf("storage: cannot reset config: %w", err)
	}
	return nil
}
