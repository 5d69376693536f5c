// Package config loads collector settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/danpilch/sampled/pkg/queue"
)

// Config holds the fixed settings for one collector run.
type Config struct {
	OutputPath    string
	Interval      time.Duration
	QueueCapacity int
	LogLevel      string
	LogFormat     string
}

// Load reads settings from a .env file and the environment, falling back
// to defaults: samples.csv, one-second interval, default queue capacity.
func Load() *Config {
	godotenv.Load()

	output := os.Getenv("SAMPLED_OUTPUT")
	if output == "" {
		output = "samples.csv"
	}

	interval := time.Second
	if raw := os.Getenv("SAMPLED_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	capacity := queue.DefaultCapacity
	if raw := os.Getenv("SAMPLED_QUEUE_CAPACITY"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			capacity = parsed
		}
	}

	logLevel := os.Getenv("SAMPLED_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("SAMPLED_LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return &Config{
		OutputPath:    output,
		Interval:      interval,
		QueueCapacity: capacity,
		LogLevel:      logLevel,
		LogFormat:     logFormat,
	}
}
