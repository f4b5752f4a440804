package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetup_WritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")

	closer, err := Setup("debug", logFile)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	defer logrus.SetOutput(os.Stderr)

	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", logrus.GetLevel())
	}

	logrus.WithField("job_id", "abc").Info("Job accepted")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), `"job_id":"abc"`) {
		t.Errorf("log file missing field, got %s", content)
	}
}

func TestSetup_NoFile(t *testing.T) {
	closer, err := Setup("warn", "")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if closer != nil {
		t.Errorf("expected nil closer without a log file")
	}
	if logrus.GetLevel() != logrus.WarnLevel {
		t.Errorf("expected warn level, got %s", logrus.GetLevel())
	}
}

func TestSetup_InvalidLevel(t *testing.T) {
	if _, err := Setup("loud", ""); err == nil {
		t.Error("expected error for invalid level")
	}
}
