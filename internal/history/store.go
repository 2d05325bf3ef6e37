package history

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded checklist invocation.
type Run struct {
	ID        string
	Project   string
	Version   string
	StartedAt time.Time
	Passed    bool

	// Outcomes holds the per-item results in execution order. List leaves it
	// empty; Get fills it.
	Outcomes []Outcome
}

// Outcome is a single checklist item's result within a run.
type Outcome struct {
	Name   string
	Passed bool
	Detail string
}

// Store persists checklist runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the store at its default location, creating the data directory
// and schema as needed.
func Open() (*Store, error) {
	dbPath, err := DBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the store at an explicit database path.
func OpenPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return uuid.New().String()
}

// Record writes a run and its outcomes in one transaction.
func (s *Store) Record(run Run) error {
	if run.ID == "" {
		return fmt.Errorf("run id must not be empty")
	}
	if run.Project == "" {
		return fmt.Errorf("run project must not be empty")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	trx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	_, err = trx.Exec(`INSERT INTO runs (id, project, version, started_at, passed)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Project, run.Version, run.StartedAt.UTC().Format(time.RFC3339Nano), boolToInt(run.Passed))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, o := range run.Outcomes {
		_, err = trx.Exec(`INSERT INTO results (run_id, position, name, passed, detail)
			VALUES (?, ?, ?, ?, ?)`,
			run.ID, i+1, o.Name, boolToInt(o.Passed), o.Detail)
		if err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
	}

	return trx.Commit()
}

// List returns recorded runs newest first, without their outcomes. An empty
// project matches every project; limit <= 0 means no limit.
func (s *Store) List(project string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	var (
		rows *sql.Rows
		err  error
	)
	if project == "" {
		rows, err = s.db.Query(`SELECT id, project, version, started_at, passed
			FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(`SELECT id, project, version, started_at, passed
			FROM runs WHERE project = ? ORDER BY started_at DESC, id LIMIT ?`, project, limit)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// Get returns one run with its outcomes in execution order.
func (s *Store) Get(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT id, project, version, started_at, passed
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %q not found", id)
		}
		return nil, err
	}

	rows, err := s.db.Query(`SELECT name, passed, detail
		FROM results WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var o Outcome
		var passed int
		if err := rows.Scan(&o.Name, &passed, &o.Detail); err != nil {
			return nil, err
		}
		o.Passed = passed != 0
		run.Outcomes = append(run.Outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var startedAt string
	var passed int
	if err := row.Scan(&run.ID, &run.Project, &run.Version, &startedAt, &passed); err != nil {
		return Run{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	run.StartedAt = ts
	run.Passed = passed != 0
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
