package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/nijaru/clipsai/config"
	"github.com/nijaru/clipsai/db"
	"github.com/sirupsen/logrus"
)

var jobLocks sync.Map

type jobLock struct {
	mu sync.Mutex
}

func getJobLock(id string) *jobLock {
	lock, _ := jobLocks.LoadOrStore(id, &jobLock{})
	return lock.(*jobLock)
}

// Service hands validated jobs to the external transcribe-and-clip script.
type Service struct {
	ExecuteScriptFunc func(ctx context.Context, jobFile string) ([]byte, error)

	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	command string
	script  string
}

func NewService(cfg *config.Config) *Service {
	s := &Service{
		MaxRetries:     3,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     30 * time.Second,
		command:        cfg.PipelineCommand,
		script:         cfg.PipelineScript,
	}
	s.ExecuteScriptFunc = s.executeScript
	return s
}

type jobFile struct {
	ID     string          `json:"id"`
	Kind   string          `json:"kind"`
	Params json.RawMessage `json:"params"`
}

// Dispatch runs the pipeline for job and records the outcome in the job
// store. The script's last output line is stored as the job output.
func (s *Service) Dispatch(ctx context.Context, job *db.Job) error {
	lock := getJobLock(job.ID)
	lock.mu.Lock()
	defer lock.mu.Unlock()
	defer jobLocks.Delete(job.ID)

	log := logrus.WithFields(logrus.Fields{"job_id": job.ID, "kind": job.Kind})

	if err := db.SetJobStatus(ctx, job.ID, db.StatusInProgress); err != nil {
		log.WithError(err).Error("Failed to set job status to in_progress")
		return fmt.Errorf("error setting job status: %w", err)
	}

	filename, err := writeJobFile(job)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}
	defer func() {
		if err := os.Remove(filename); err != nil {
			log.WithError(err).WithField("filename", filename).Error("Failed to remove job file")
		}
	}()

	output, err := s.executeWithRetry(ctx, job.ID, filename)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}

	result, err := extractResult(output)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}

	if err := db.SetJobResult(ctx, job.ID, db.StatusCompleted, result); err != nil {
		log.WithError(err).Error("Failed to save job result")
		return fmt.Errorf("error saving job result: %w", err)
	}

	log.Info("Pipeline completed successfully")
	return nil
}

// fail records err on the job. It uses a fresh context so a cancelled
// dispatch still leaves the job marked failed.
func (s *Service) fail(id string, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if dbErr := db.SetJobResult(ctx, id, db.StatusFailed, err.Error()); dbErr != nil {
		logrus.WithError(dbErr).WithField("job_id", id).Error("Failed to mark job as failed")
	}
}

func writeJobFile(job *db.Job) (string, error) {
	payload, err := json.Marshal(jobFile{
		ID:     job.ID,
		Kind:   job.Kind,
		Params: json.RawMessage(job.Params),
	})
	if err != nil {
		return "", fmt.Errorf("error encoding job file: %w", err)
	}

	f, err := os.CreateTemp("", "clipsai-job-*.json")
	if err != nil {
		return "", fmt.Errorf("error creating job file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(payload); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("error writing job file: %w", err)
	}

	return f.Name(), nil
}

func (s *Service) executeWithRetry(ctx context.Context, id, filename string) ([]byte, error) {
	var (
		output []byte
		err    error
	)

	for attempt := 1; attempt <= s.MaxRetries; attempt++ {
		output, err = s.ExecuteScriptFunc(ctx, filename)
		if err == nil {
			break
		}

		logrus.WithFields(logrus.Fields{
			"attempt":    attempt,
			"maxRetries": s.MaxRetries,
			"job_id":     id,
			"error":      err,
		}).Error("Pipeline script failed")

		if attempt == s.MaxRetries {
			break
		}

		select {
		case <-time.After(s.backoff(attempt)):
		case <-ctx.Done():
			logrus.WithError(ctx.Err()).WithField("job_id", id).Error("Context cancelled during pipeline run")
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, fmt.Errorf("error running pipeline after %d attempts: %w", s.MaxRetries, err)
	}

	return output, nil
}

func (s *Service) backoff(attempt int) time.Duration {
	backoff := time.Duration(float64(s.InitialBackoff) * math.Pow(2.0, float64(attempt-1)))
	if backoff > s.MaxBackoff {
		backoff = s.MaxBackoff
	}
	if half := int64(backoff / 2); half > 0 {
		backoff += time.Duration(rand.Int63n(half))
	}
	return backoff
}

func (s *Service) executeScript(ctx context.Context, filename string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, s.command, "run", s.script, filename)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("error executing pipeline script: %v, output: %s", err, output)
	}
	return output, nil
}

func extractResult(output []byte) (string, error) {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	result := strings.TrimSpace(lines[len(lines)-1])

	if result == "" {
		logrus.Error("Pipeline script returned an empty result")
		return "", fmt.Errorf("error: pipeline script returned an empty result")
	}

	return result, nil
}
