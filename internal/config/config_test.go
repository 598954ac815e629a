package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdrill/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:           ":8080",
		DBPath:         "test.db",
		LogLevel:       "INFO",
		ServerURL:      "http://localhost:8080",
		DrillType:      "find_square",
		InputMethod:    "board_click",
		Perspective:    "white",
		RequestTimeout: 5 * time.Second,
		WorkerCount:    2,
		QueueSize:      16,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{
			name:  "invalid level",
			level: "INVALID",
		},
		{
			name:  "empty level",
			level: "",
		},
		{
			name:  "lowercase valid level",
			level: "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.level == "debug" {
				// Lowercase should be accepted (converted to uppercase)
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_ServerURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "http", url: "http://localhost:8080", wantErr: false},
		{name: "https with path", url: "https://drill.example.com/base", wantErr: false},
		{name: "missing scheme", url: "localhost:8080", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ServerURL = tt.url

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "SERVER_URL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_DrillSettings(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "unknown drill type",
			mutate:        func(c *config.Config) { c.DrillType = "blindfold" },
			expectedError: "DRILL_TYPE",
		},
		{
			name:          "unknown input method",
			mutate:        func(c *config.Config) { c.InputMethod = "voice" },
			expectedError: "INPUT_METHOD",
		},
		{
			name:          "unknown perspective",
			mutate:        func(c *config.Config) { c.Perspective = "red" },
			expectedError: "PERSPECTIVE",
		},
		{
			name:          "zero timeout",
			mutate:        func(c *config.Config) { c.RequestTimeout = 0 },
			expectedError: "REQUEST_TIMEOUT",
		},
		{
			name:          "zero workers",
			mutate:        func(c *config.Config) { c.WorkerCount = 0 },
			expectedError: "WORKER_COUNT",
		},
		{
			name:          "too many workers",
			mutate:        func(c *config.Config) { c.WorkerCount = 33 },
			expectedError: "WORKER_COUNT",
		},
		{
			name:          "zero queue",
			mutate:        func(c *config.Config) { c.QueueSize = 0 },
			expectedError: "QUEUE_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		Addr:      "",
		DBPath:    "",
		LogLevel:  "INVALID",
		ServerURL: "nope",
		DrillType: "",
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "SERVER_URL")
	assert.Contains(t, errStr, "DRILL_TYPE")
	assert.Contains(t, errStr, "INPUT_METHOD")
	assert.Contains(t, errStr, "PERSPECTIVE")
	assert.Contains(t, errStr, "REQUEST_TIMEOUT")
	assert.Contains(t, errStr, "WORKER_COUNT")
	assert.Contains(t, errStr, "QUEUE_SIZE")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("DRILL_TYPE", "piece_movement")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("HEATMAP_ANSI", "true")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "piece_movement", cfg.DrillType)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.WorkerCount, "invalid integers fall back to the default")
	assert.True(t, cfg.HeatmapANSI)
}

func TestLoad_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("HEATMAP_ANSI", "sometimes")

	cfg := config.Load()

	assert.False(t, cfg.HeatmapANSI)
}
