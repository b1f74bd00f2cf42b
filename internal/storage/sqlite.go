// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/brickrogue/internal/games/rogue"
)

// DefaultProfile is used when no profile name is given.
const DefaultProfile = "default"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID        string
	Profile   string
	Score     int
	Wave      int
	Coins     int
	Gems      int
	Bricks    int
	Reason    string
	Duration  time.Duration
	CreatedAt time.Time
}

// NewRunRecord builds a record from a run summary.
func NewRunRecord(profile string, s rogue.RunSummary) RunRecord {
	if profile == "" {
		profile = DefaultProfile
	}
	return RunRecord{
		Profile:  profile,
		Score:    s.Score,
		Wave:     s.Wave,
		Coins:    s.Coins,
		Gems:     s.Gems,
		Bricks:   s.BricksDestroyed,
		Reason:   string(s.Reason),
		Duration: s.Duration,
	}
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

	// Test connection
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			profile TEXT NOT NULL,
			score INTEGER NOT NULL,
			wave INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			gems INTEGER NOT NULL DEFAULT 0,
			bricks INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(profile, score DESC);
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

// SaveRun records a finished run and returns its generated id.
func (s *Store) SaveRun(rec RunRecord) (string, error) {
	if rec.Profile == "" {
		rec.Profile = DefaultProfile
	}
	id := uuid.NewString()

	_, err := s.db.Exec(
		`INSERT INTO runs (id, profile, score, wave, coins, gems, bricks, reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.Profile, rec.Score, rec.Wave, rec.Coins, rec.Gems, rec.Bricks,
		rec.Reason, rec.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

const runColumns = `id, profile, score, wave, coins, gems, bricks, reason, duration_ms, created_at`

// TopRuns retrieves the best N runs of a profile, by score then wave.
func (s *Store) TopRuns(profile string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE profile = ?
		 ORDER BY score DESC, wave DESC
		 LIMIT ?`,
		profile, limit,
	)
}

// RecentRuns retrieves the latest N runs of a profile.
func (s *Store) RecentRuns(profile string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE profile = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		profile, limit,
	)
}

// RunByID retrieves one run. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Profile, &r.Score, &r.Wave, &r.Coins, &r.Gems,
			&r.Bricks, &r.Reason, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestWave returns the highest wave a profile reached.
// Returns 0 if no runs exist.
func (s *Store) BestWave(profile string) (int, error) {
	var wave sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(wave) FROM runs WHERE profile = ?", profile).Scan(&wave)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best wave: %w", err)
	}
	if !wave.Valid {
		return 0, nil
	}
	return int(wave.Int64), nil
}

// ClearRuns deletes all runs of a profile.
func (s *Store) ClearRuns(profile string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ProfileStats contains aggregated statistics for a profile.
type ProfileStats struct {
	Profile     string
	Runs        int
	BestScore   int
	BestWave    int
	AvgScore    float64
	TotalBricks int64
	PlayTime    time.Duration
	LastPlayed  time.Time
}

// Stats retrieves aggregated statistics for a profile.
func (s *Store) Stats(profile string) (*ProfileStats, error) {
	stats := &ProfileStats{Profile: profile}

	var playMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(wave), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(bricks), 0), COALESCE(SUM(duration_ms), 0)
		 FROM runs WHERE profile = ?`,
		profile,
	).Scan(&stats.Runs, &stats.BestScore, &stats.BestWave, &stats.AvgScore, &stats.TotalBricks, &playMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get profile stats: %w", err)
	}
	stats.PlayTime = time.Duration(playMS) * time.Millisecond

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE profile = ? ORDER BY created_at DESC LIMIT 1`,
		profile,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Profiles lists every profile that has recorded a run.
func (s *Store) Profiles() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT profile FROM runs ORDER BY profile`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return profiles, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
