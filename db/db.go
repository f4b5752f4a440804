package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Job statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job kinds, one per intake endpoint.
const (
	KindClip           = "clip"
	KindTranscribeClip = "transcribe_clip"
)

var ErrJobNotFound = errors.New("job not found")

var DB *sql.DB

// Job is an accepted request waiting for, or handed to, the pipeline.
// Params holds the validated request as JSON.
type Job struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Params string `json:"params"`
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
}

func InitializeDB(dbPath string) error {
	logrus.WithField("path", dbPath).Info("Initializing database")

	// Ensure the directory for the database file exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("error creating directory for database: %w", err)
	}

	var err error
	DB, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(30 * time.Minute)

	_, err = DB.Exec(`CREATE TABLE IF NOT EXISTS jobs (
                    id TEXT PRIMARY KEY,
                    kind TEXT NOT NULL,
                    params TEXT NOT NULL,
                    status TEXT NOT NULL DEFAULT 'pending',
                    output TEXT NOT NULL DEFAULT '',
                    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	if err != nil {
		DB.Close()
		return fmt.Errorf("error creating table: %w", err)
	}

	return nil
}

// CreateJob stores a new pending job and returns it.
func CreateJob(ctx context.Context, kind string, params []byte) (*Job, error) {
	job := &Job{
		ID:     uuid.NewString(),
		Kind:   kind,
		Params: string(params),
		Status: StatusPending,
	}

	_, err := DB.ExecContext(ctx,
		"INSERT INTO jobs (id, kind, params, status) VALUES (?, ?, ?, ?)",
		job.ID, job.Kind, job.Params, job.Status)
	if err != nil {
		return nil, fmt.Errorf("error inserting job: %w", err)
	}

	return job, nil
}

func GetJob(ctx context.Context, id string) (*Job, error) {
	var job Job
	err := DB.QueryRowContext(ctx,
		"SELECT id, kind, params, status, output FROM jobs WHERE id = ?", id).
		Scan(&job.ID, &job.Kind, &job.Params, &job.Status, &job.Output)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	return &job, nil
}

func SetJobStatus(ctx context.Context, id, status string) error {
	return execInTx(ctx,
		"UPDATE jobs SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id)
}

// SetJobResult records the pipeline output and the final status.
func SetJobResult(ctx context.Context, id, status, output string) error {
	return execInTx(ctx,
		"UPDATE jobs SET status = ?, output = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, output, id)
}

func DeleteJob(ctx context.Context, id string) error {
	return execInTx(ctx, "DELETE FROM jobs WHERE id = ?", id)
}

func execInTx(ctx context.Context, query string, args ...any) error {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, args...)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error executing statement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
