package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/sirupsen/logrus"
)

type Config struct {
	DBPath            string
	ServerPort        string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	PipelineTimeout   time.Duration
	RateLimit         int
	RateLimitInterval time.Duration
	LogFile           string
	LogLevel          string
	PipelineCommand   string
	PipelineScript    string
	MaxBodyBytes      int64
}

func LoadConfig() *Config {
	return &Config{
		DBPath:            GetEnv("DB_PATH", "./data/jobs.db"),
		ServerPort:        GetEnv("SERVER_PORT", "8080"),
		ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		PipelineTimeout:   getEnvAsDuration("PIPELINE_TIMEOUT", 60*time.Minute),
		RateLimit:         getEnvAsInt("RATE_LIMIT", 5),
		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 1*time.Second),
		LogFile:           GetEnv("LOG_FILE", ""),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		PipelineCommand:   GetEnv("PIPELINE_COMMAND", "uv"),
		PipelineScript:    GetEnv("PIPELINE_SCRIPT", "transcribe_clip.py"),
		MaxBodyBytes:      int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid integer, using default")
	}
	return defaultValue
}

func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return errors.New("server port is required")
	}
	if cfg.DBPath == "" {
		return errors.New("database path is required")
	}
	if cfg.PipelineCommand == "" {
		return errors.New("pipeline command is required")
	}
	if cfg.PipelineTimeout <= 0 {
		return errors.New("pipeline timeout must be greater than 0")
	}
	if cfg.ReadTimeout <= 0 {
		return errors.New("read timeout must be greater than 0")
	}
	if cfg.WriteTimeout <= 0 {
		return errors.New("write timeout must be greater than 0")
	}
	if cfg.IdleTimeout <= 0 {
		return errors.New("idle timeout must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		return errors.Errorf("rate limit must be greater than 0, got %d", cfg.RateLimit)
	}
	if cfg.MaxBodyBytes <= 0 {
		return errors.New("max body bytes must be greater than 0")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}
