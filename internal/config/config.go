// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/coursewalk/internal/challenge"
)

// Config holds all application configuration.
type Config struct {
	DBPath     string // empty means the default data dir
	CoursePath string // empty means the embedded course

	// Review disables every gate. It is meant for content review, so the
	// default is off.
	Review bool

	OptionCount      int
	ViewedDelay      time.Duration
	LockedPulse      time.Duration
	TransitionWindow time.Duration
	DragThreshold    int

	LogLevel slog.Level
	LogFile  string // empty means <data dir>/coursewalk.log
}

// Load reads configuration from COURSEWALK_* environment variables.
func Load() (*Config, error) {
	level, err := parseLevel(getEnv("COURSEWALK_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Config{
		DBPath:           getEnv("COURSEWALK_DB", ""),
		CoursePath:       getEnv("COURSEWALK_COURSE", ""),
		Review:           getEnvBool("COURSEWALK_REVIEW", false),
		OptionCount:      getEnvInt("COURSEWALK_OPTION_COUNT", challenge.DefaultOptionCount),
		ViewedDelay:      getEnvDuration("COURSEWALK_VIEWED_DELAY", 1100*time.Millisecond),
		LockedPulse:      getEnvDuration("COURSEWALK_LOCKED_PULSE", 700*time.Millisecond),
		TransitionWindow: getEnvDuration("COURSEWALK_TRANSITION_WINDOW", 450*time.Millisecond),
		DragThreshold:    getEnvInt("COURSEWALK_DRAG_THRESHOLD", 50),
		LogLevel:         level,
		LogFile:          getEnv("COURSEWALK_LOG_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.OptionCount < challenge.MinOptionCount {
		return fmt.Errorf("COURSEWALK_OPTION_COUNT must be >= %d", challenge.MinOptionCount)
	}
	if c.ViewedDelay <= 0 {
		return fmt.Errorf("COURSEWALK_VIEWED_DELAY must be > 0")
	}
	if c.LockedPulse <= 0 {
		return fmt.Errorf("COURSEWALK_LOCKED_PULSE must be > 0")
	}
	if c.TransitionWindow <= 0 {
		return fmt.Errorf("COURSEWALK_TRANSITION_WINDOW must be > 0")
	}
	if c.DragThreshold <= 0 {
		return fmt.Errorf("COURSEWALK_DRAG_THRESHOLD must be > 0")
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("COURSEWALK_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

// getEnvDuration accepts Go durations ("1.5s") or bare milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
