package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SyncRun is one ingestion run's log entry.
type SyncRun struct {
	ID          string     `json:"id"`
	TriggeredBy string     `json:"triggeredBy"` // manual, cron, watch
	Status      string     `json:"status"`      // running, success, error
	StartedAt   time.Time  `json:"startedAt"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	Airports    int        `json:"airports"`
	Navaids     int        `json:"navaids"`
	Airways     int        `json:"airways"`
	ILS         int        `json:"ils"`
	Error       string     `json:"error,omitempty"`
}

// RunStore persists sync run logs.
type RunStore struct {
	db *DB
}

// NewRunStore creates a new RunStore.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// StartRun records the beginning of a run and returns its id.
func (s *RunStore) StartRun(triggeredBy string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.conn.Exec(
		`INSERT INTO sync_runs (id, triggered_by, status, started_at) VALUES (?, ?, 'running', ?)`,
		id, triggeredBy, time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

// FinishRun records a run's outcome and entity counts.
func (s *RunStore) FinishRun(id, status, errMsg string, airports, navaids, airways, ils int) error {
	_, err := s.db.conn.Exec(
		`UPDATE sync_runs SET status=?, error=?, finished_at=?,
		 airports=?, navaids=?, airways=?, ils=? WHERE id=?`,
		status, errMsg, time.Now(), airports, navaids, airways, ils, id,
	)
	return err
}

// LatestRun returns the most recently started run, or nil if none exist.
func (s *RunStore) LatestRun() (*SyncRun, error) {
	run := &SyncRun{}
	err := s.db.conn.QueryRow(
		`SELECT id, triggered_by, status, started_at, finished_at,
		 airports, navaids, airways, ils, error
		 FROM sync_runs ORDER BY started_at DESC LIMIT 1`,
	).Scan(
		&run.ID, &run.TriggeredBy, &run.Status, &run.StartedAt, &run.FinishedAt,
		&run.Airports, &run.Navaids, &run.Airways, &run.ILS, &run.Error,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns run logs, newest first.
func (s *RunStore) ListRuns(limit int) ([]SyncRun, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, triggered_by, status, started_at, finished_at,
		 airports, navaids, airways, ils, error
		 FROM sync_runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []SyncRun
	for rows.Next() {
		var run SyncRun
		if err := rows.Scan(
			&run.ID, &run.TriggeredBy, &run.Status, &run.StartedAt, &run.FinishedAt,
			&run.Airports, &run.Navaids, &run.Airways, &run.ILS, &run.Error,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
