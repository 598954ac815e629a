package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Addr     string
	DBPath   string
	LogLevel string

	// Drill client
	ServerURL      string
	DrillType      string
	InputMethod    string
	Perspective    string
	RequestTimeout time.Duration
	WorkerCount    int
	QueueSize      int
	HeatmapANSI    bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:           envOr("ADDR", ":8080"),
		DBPath:         envOr("DB_PATH", "file:chessdrill.db"),
		LogLevel:       envOr("LOG_LEVEL", "INFO"),
		ServerURL:      envOr("SERVER_URL", "http://localhost:8080"),
		DrillType:      envOr("DRILL_TYPE", "name_square"),
		InputMethod:    envOr("INPUT_METHOD", "type"),
		Perspective:    envOr("PERSPECTIVE", "white"),
		RequestTimeout: envDurationOr("REQUEST_TIMEOUT", 10*time.Second),
		WorkerCount:    envIntOr("WORKER_COUNT", 2),
		QueueSize:      envIntOr("QUEUE_SIZE", 16),
		HeatmapANSI:    envBoolOr("HEATMAP_ANSI", false),
	}
}

var (
	validLogLevels   = []string{"DEBUG", "INFO", "WARN", "WARNING", "ERROR"}
	validDrillTypes  = []string{"name_square", "find_square", "piece_movement", "move_notation"}
	validInputs      = []string{"type", "click", "grid", "board_click"}
	validPerspective = []string{"white", "black"}
)

// Validate checks every setting and reports all problems in one error.
func (c Config) Validate() error {
	var problems []string
	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if !oneOf(strings.ToUpper(c.LogLevel), validLogLevels) {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.LogLevel))
	}
	if u, err := url.Parse(c.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("SERVER_URL must be an absolute URL, got %q", c.ServerURL))
	}
	if !oneOf(c.DrillType, validDrillTypes) {
		problems = append(problems, fmt.Sprintf("DRILL_TYPE must be one of %s, got %q", strings.Join(validDrillTypes, ", "), c.DrillType))
	}
	if !oneOf(c.InputMethod, validInputs) {
		problems = append(problems, fmt.Sprintf("INPUT_METHOD must be one of %s, got %q", strings.Join(validInputs, ", "), c.InputMethod))
	}
	if !oneOf(c.Perspective, validPerspective) {
		problems = append(problems, fmt.Sprintf("PERSPECTIVE must be white or black, got %q", c.Perspective))
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}
	if c.WorkerCount < 1 || c.WorkerCount > 32 {
		problems = append(problems, fmt.Sprintf("WORKER_COUNT must be between 1 and 32, got %d", c.WorkerCount))
	}
	if c.QueueSize < 1 {
		problems = append(problems, fmt.Sprintf("QUEUE_SIZE must be at least 1, got %d", c.QueueSize))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
