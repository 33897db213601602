package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"classdiag/internal/model"
)

const driverName = "sqlite"

// Run is one recorded generation: what the diagram contained and the hash of
// the rendered output, so trends and no-op regenerations are queryable.
type Run struct {
	ID            string
	Timestamp     time.Time
	Title         string
	Classes       int
	Interfaces    int
	Enums         int
	Inheritances  int
	Realizations  int
	Associations  int
	Aggregations  int
	Dependencies  int
	OutputHash    string
	Duration      time.Duration
}

func (r Run) Entities() int {
	return r.Classes + r.Interfaces + r.Enums
}

func (r Run) Relationships() int {
	return r.Inheritances + r.Realizations + r.Associations + r.Aggregations + r.Dependencies
}

// NewRun tallies a run from assembled entities.
func NewRun(title string, entities []model.DiagramEntity, outputHash string, duration time.Duration) Run {
	run := Run{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Title:      title,
		OutputHash: outputHash,
		Duration:   duration,
	}
	for _, entity := range entities {
		switch entity.Kind {
		case model.KindClass:
			run.Classes++
		case model.KindInterface:
			run.Interfaces++
		case model.KindEnum:
			run.Enums++
		}
		for _, rel := range entity.Relationships {
			switch rel.Kind {
			case model.RelationInheritance:
				run.Inheritances++
			case model.RelationRealization:
				run.Realizations++
			case model.RelationAssociation:
				run.Associations++
			case model.RelationAggregation:
				run.Aggregations++
			case model.RelationDependency:
				run.Dependencies++
			}
		}
	}
	return run
}

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) RecordRun(run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}

	_, err := s.db.Exec(`
INSERT INTO runs (
  run_id, ts_utc, title, class_count, interface_count, enum_count,
  inheritance_count, realization_count, association_count, aggregation_count,
  dependency_count, output_hash, duration_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		run.ID,
		run.Timestamp.UTC().Format(time.RFC3339Nano),
		run.Title,
		run.Classes,
		run.Interfaces,
		run.Enums,
		run.Inheritances,
		run.Realizations,
		run.Associations,
		run.Aggregations,
		run.Dependencies,
		run.OutputHash,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
SELECT run_id, ts_utc, title, class_count, interface_count, enum_count,
       inheritance_count, realization_count, association_count, aggregation_count,
       dependency_count, output_hash, duration_ms
FROM runs
ORDER BY ts_utc DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var ts string
		var durationMS int64
		if err := rows.Scan(
			&run.ID, &ts, &run.Title,
			&run.Classes, &run.Interfaces, &run.Enums,
			&run.Inheritances, &run.Realizations, &run.Associations,
			&run.Aggregations, &run.Dependencies,
			&run.OutputHash, &durationMS,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			run.Timestamp = parsed
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Trend is the entity and relationship delta between the two latest runs.
type Trend struct {
	Entities      int
	Relationships int
}

// LatestTrend compares the two most recent runs. With fewer than two runs
// recorded the trend is zero.
func (s *Store) LatestTrend() (Trend, error) {
	runs, err := s.Recent(2)
	if err != nil {
		return Trend{}, err
	}
	if len(runs) < 2 {
		return Trend{}, nil
	}
	return Trend{
		Entities:      runs[0].Entities() - runs[1].Entities(),
		Relationships: runs[0].Relationships() - runs[1].Relationships(),
	}, nil
}
