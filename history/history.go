package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run statuses recorded in the ledger.
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// Run is one conversion attempt.
type Run struct {
	ID         string
	Model      string
	ParamSize  string
	Status     string
	Detail     string
	Shards     int
	TotalBytes int64
	OutputDir  string
	StartedAt  time.Time
	Duration   time.Duration
}

// Checksum is a per-shard MD5 recorded during a run's integrity pass. The
// digests are kept for reference only; nothing ever compares them.
type Checksum struct {
	RunID string
	Shard string
	MD5   string
	Size  int64
}

// Store is the conversion run ledger, a SQLite database in the state
// directory.
type Store struct {
	db *sql.DB
}

// Open opens the history database in dir, creating both as needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) initSchema() error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if _, err := s.db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			param_size TEXT,
			status TEXT NOT NULL,
			detail TEXT,
			shards INTEGER,
			total_bytes INTEGER,
			output_dir TEXT,
			started_at DATETIME NOT NULL,
			duration_ms INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS checksums (
			run_id TEXT NOT NULL,
			shard TEXT NOT NULL,
			md5 TEXT NOT NULL,
			size INTEGER,
			FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_checksums_run_id ON checksums(run_id);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute init query: %w", err)
		}
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Add records a run and its shard digests in one transaction.
func (s *Store) Add(run Run, checksums []Checksum) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, model, param_size, status, detail, shards, total_bytes, output_dir, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Model, run.ParamSize, run.Status, run.Detail, run.Shards, run.TotalBytes, run.OutputDir, run.StartedAt, run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	for _, c := range checksums {
		_, err := tx.Exec(`
			INSERT INTO checksums (run_id, shard, md5, size)
			VALUES (?, ?, ?, ?)
		`, run.ID, c.Shard, c.MD5, c.Size)
		if err != nil {
			return fmt.Errorf("recording checksum: %w", err)
		}
	}

	return tx.Commit()
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(n int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, model, param_size, status, detail, shards, total_bytes, output_dir, started_at, duration_ms
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMS int64
		if err := rows.Scan(&run.ID, &run.Model, &run.ParamSize, &run.Status, &run.Detail,
			&run.Shards, &run.TotalBytes, &run.OutputDir, &run.StartedAt, &durationMS); err != nil {
			return nil, err
		}

		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Checksums returns the shard digests recorded for a run.
func (s *Store) Checksums(runID string) ([]Checksum, error) {
	rows, err := s.db.Query(`
		SELECT run_id, shard, md5, size FROM checksums WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checksums []Checksum
	for rows.Next() {
		var c Checksum
		if err := rows.Scan(&c.RunID, &c.Shard, &c.MD5, &c.Size); err != nil {
			return nil, err
		}

		checksums = append(checksums, c)
	}

	return checksums, rows.Err()
}
