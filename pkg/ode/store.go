package ode

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Job is a submitted asynchronous query tracked locally, so that a user can
// come back later and poll or download without re-entering the bounding box.
type Job struct {
	ID          string
	ODEJobID    string
	Target      Target
	MinLat      float64
	MaxLat      float64
	WestLon     float64
	EastLon     float64
	State       string
	SubmittedAt time.Time
	UpdatedAt   time.Time
}

// JobStore persists submitted jobs in a local sqlite database.
type JobStore struct {
	db *sql.DB
}

const jobSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id           TEXT PRIMARY KEY,
	ode_job_id   TEXT NOT NULL,
	target       TEXT NOT NULL,
	minlat       REAL NOT NULL,
	maxlat       REAL NOT NULL,
	westernlon   REAL NOT NULL,
	easternlon   REAL NOT NULL,
	state        TEXT NOT NULL,
	submitted_at TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
);`

// OpenJobStore opens (creating if necessary) the job database at path.
// Use ":memory:" for an ephemeral store.
func OpenJobStore(path string) (*JobStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(jobSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing job store: %w", err)
	}
	return &JobStore{db: db}, nil
}

func (s *JobStore) Close() error {
	return s.db.Close()
}

// Record stores a freshly submitted job and returns its local id.
func (s *JobStore) Record(q Query, odeJobID, state string) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO jobs (id, ode_job_id, target, minlat, maxlat, westernlon, easternlon, state, submitted_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, odeJobID, string(q.Target), q.MinLat, q.MaxLat, q.WestLon, q.EastLon, state, now, now)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateState records the latest state reported by ODE for a job.
func (s *JobStore) UpdateState(odeJobID, state string) error {
	res, err := s.db.Exec(
		`UPDATE jobs SET state = ?, updated_at = ? WHERE ode_job_id = ?`,
		state, time.Now().UTC(), odeJobID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no job with ODE id %s", odeJobID)
	}
	return nil
}

// List returns all tracked jobs, most recent first.
func (s *JobStore) List() ([]Job, error) {
	rows, err := s.db.Query(
		`SELECT id, ode_job_id, target, minlat, maxlat, westernlon, easternlon, state, submitted_at, updated_at
		 FROM jobs ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		var target string
		if err := rows.Scan(&j.ID, &j.ODEJobID, &target, &j.MinLat, &j.MaxLat,
			&j.WestLon, &j.EastLon, &j.State, &j.SubmittedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		j.Target = Target(target)
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
