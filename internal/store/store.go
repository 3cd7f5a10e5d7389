// Package store keeps a ledger of finished games in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"lionhunt/internal/sim"
	"lionhunt/internal/world"
)

// Store is a results ledger. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Stats aggregates the ledger for one variant, or all of them.
type Stats struct {
	Games     int                  `json:"games"`
	ByReason  map[world.Reason]int `json:"by_reason"`
	MeanScore float64              `json:"mean_score"`
	BestScore int                  `json:"best_score"`
	MeanTicks float64              `json:"mean_ticks"`
}

// Open creates the parent directory, opens the database and applies the
// schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY under the sweep.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS results (
			game_id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL,
			reason TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			tokens_left INTEGER NOT NULL,
			started_ns INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_variant ON results(variant);`,
		`CREATE INDEX IF NOT EXISTS idx_results_started ON results(started_ns);`,
	}
	for _, q := range schema {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Save records a finished game. Saving the same game id twice replaces the
// earlier row.
func (s *Store) Save(ctx context.Context, r sim.Result) error {
	if !r.Reason.Terminal() {
		return fmt.Errorf("save %s: game has not ended", r.GameID)
	}
	const q = `
		INSERT INTO results (game_id, variant, seed, reason, score, ticks, tokens_left, started_ns, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			variant=excluded.variant,
			seed=excluded.seed,
			reason=excluded.reason,
			score=excluded.score,
			ticks=excluded.ticks,
			tokens_left=excluded.tokens_left,
			started_ns=excluded.started_ns,
			elapsed_ms=excluded.elapsed_ms
	`
	_, err := s.db.ExecContext(ctx, q,
		r.GameID, r.Variant, r.Seed, r.Reason.String(), r.Score, r.Ticks, r.TokensLeft,
		r.Started.UnixNano(), r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

const selectResults = `SELECT game_id, variant, seed, reason, score, ticks, tokens_left, started_ns, elapsed_ms FROM results`

func (s *Store) query(ctx context.Context, q string, args ...any) ([]sim.Result, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sim.Result
	for rows.Next() {
		var (
			r         sim.Result
			reason    string
			startedNS int64
			elapsedMS int64
		)
		if err := rows.Scan(&r.GameID, &r.Variant, &r.Seed, &reason, &r.Score, &r.Ticks,
			&r.TokensLeft, &startedNS, &elapsedMS); err != nil {
			return nil, err
		}
		if err := r.Reason.UnmarshalText([]byte(reason)); err != nil {
			return nil, err
		}
		r.Started = time.Unix(0, startedNS)
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// Recent returns the newest results first.
func (s *Store) Recent(ctx context.Context, limit int) ([]sim.Result, error) {
	return s.query(ctx, selectResults+` ORDER BY started_ns DESC LIMIT ?`, limit)
}

// Best returns the highest scores for variant, fastest first on ties. An
// empty variant ranks every game.
func (s *Store) Best(ctx context.Context, variant string, limit int) ([]sim.Result, error) {
	return s.query(ctx, selectResults+` WHERE (? = '' OR variant = ?) ORDER BY score DESC, ticks ASC LIMIT ?`,
		variant, variant, limit)
}

// Stats aggregates results for variant, or every variant when it is empty.
func (s *Store) Stats(ctx context.Context, variant string) (Stats, error) {
	st := Stats{ByReason: map[world.Reason]int{}}
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(MAX(score), 0), COALESCE(AVG(ticks), 0)
		 FROM results WHERE (? = '' OR variant = ?)`, variant, variant)
	if err := row.Scan(&st.Games, &st.MeanScore, &st.BestScore, &st.MeanTicks); err != nil {
		return st, fmt.Errorf("failed to aggregate results: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT reason, COUNT(*) FROM results WHERE (? = '' OR variant = ?) GROUP BY reason`, variant, variant)
	if err != nil {
		return st, fmt.Errorf("failed to count reasons: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			name string
			n    int
			r    world.Reason
		)
		if err := rows.Scan(&name, &n); err != nil {
			return st, err
		}
		if err := r.UnmarshalText([]byte(name)); err != nil {
			return st, err
		}
		st.ByReason[r] = n
	}
	return st, rows.Err()
}

// Recorder returns a loop termination callback that saves each result and
// reports failures through onErr instead of stopping the game.
func (s *Store) Recorder(ctx context.Context, onErr func(error)) func(sim.Result) {
	return func(r sim.Result) {
		if err := s.Save(ctx, r); err != nil && onErr != nil {
			onErr(err)
		}
	}
}
