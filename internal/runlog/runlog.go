package runlog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id        TEXT PRIMARY KEY,
	day           TEXT NOT NULL,
	observations  INTEGER NOT NULL,
	algorithm     TEXT NOT NULL,
	clusters      INTEGER NOT NULL,
	flow          REAL NOT NULL,
	predicted     TEXT,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_insights (
	run_id    TEXT NOT NULL,
	position  INTEGER NOT NULL,
	text      TEXT NOT NULL,
	PRIMARY KEY (run_id, position),
	FOREIGN KEY (run_id) REFERENCES analysis_runs(run_id)
);
`

// #endregion schema

// #region types

// Run is one batch analysis pass worth of provenance.
type Run struct {
	RunID        string
	Day          string
	Observations int
	Algorithm    string
	Clusters     int
	Flow         float64
	Predicted    string
	CreatedAt    time.Time
	Insights     []string
}

// #endregion types

// #region log

// Log persists analysis-run provenance in SQLite so dashboards can read
// run history without re-running the pipeline.
type Log struct {
	db *sql.DB
}

// Open opens (or creates) the run log database and runs migrations.
func Open(dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Log{db: db}, nil
}

// Close closes the underlying database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// #endregion log

// #region record

// Record inserts one run with its insight lines. A missing RunID or
// CreatedAt is filled in.
func (l *Log) Record(run Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO analysis_runs (run_id, day, observations, algorithm, clusters, flow, predicted, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Day, run.Observations, run.Algorithm, run.Clusters,
		run.Flow, run.Predicted, run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, text := range run.Insights {
		if _, err := tx.Exec(
			`INSERT INTO run_insights (run_id, position, text) VALUES (?, ?, ?)`,
			run.RunID, i, text,
		); err != nil {
			return fmt.Errorf("insert insight: %w", err)
		}
	}

	return tx.Commit()
}

// #endregion record

// #region recent

// Recent returns the latest n runs, newest first, with their insights.
func (l *Log) Recent(n int) ([]Run, error) {
	rows, err := l.db.Query(
		`SELECT run_id, day, observations, algorithm, clusters, flow, predicted, created_at
		 FROM analysis_runs ORDER BY created_at DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.RunID, &run.Day, &run.Observations, &run.Algorithm,
			&run.Clusters, &run.Flow, &run.Predicted, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for i := range runs {
		insights, err := l.insightsFor(runs[i].RunID)
		if err != nil {
			return nil, err
		}
		runs[i].Insights = insights
	}
	return runs, nil
}

func (l *Log) insightsFor(runID string) ([]string, error) {
	rows, err := l.db.Query(
		`SELECT text FROM run_insights WHERE run_id = ? ORDER BY position`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query insights: %w", err)
	}
	defer rows.Close()

	var insights []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan insight: %w", err)
		}
		insights = append(insights, text)
	}
	return insights, rows.Err()
}

// #endregion recent
