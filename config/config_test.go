package config

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid defaults",
			config: Config{SeedFile: "debts.json", CacheTTL: time.Hour, LogLevel: "info", LogFormat: "text"},
		},
		{
			name: "valid with redis",
			config: Config{SeedFile: "debts.json", RedisAddr: "localhost:6379", CacheTTL: 0,
				LogLevel: "debug", LogFormat: "json"},
		},
		{
			name:        "empty seed file",
			config:      Config{SeedFile: " ", LogLevel: "info", LogFormat: "text"},
			wantErr:     true,
			errorString: "seed file path cannot be empty",
		},
		{
			name:        "invalid log level",
			config:      Config{SeedFile: "debts.json", LogLevel: "loud", LogFormat: "text"},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "invalid log format",
			config:      Config{SeedFile: "debts.json", LogLevel: "info", LogFormat: "xml"},
			wantErr:     true,
			errorString: "invalid log format 'xml': must be 'text' or 'json'",
		},
		{
			name:        "negative cache ttl",
			config:      Config{SeedFile: "debts.json", LogLevel: "info", LogFormat: "text", CacheTTL: -time.Second},
			wantErr:     true,
			errorString: "invalid cache TTL -1s: must not be negative",
		},
		{
			name:        "redis address without port",
			config:      Config{SeedFile: "debts.json", LogLevel: "info", LogFormat: "text", RedisAddr: "localhost"},
			wantErr:     true,
			errorString: "invalid Redis address 'localhost': expected host:port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("expected error containing %q, got %q", tt.errorString, err.Error())
			}
		})
	}
}

func TestConfig_ValidateCollectsAllProblems(t *testing.T) {
	cfg := Config{SeedFile: "", LogLevel: "loud", LogFormat: "xml"}

	err := cfg.Validate()

	if err == nil {
		t.Fatalf("expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("expected 3 problems, got %d: %s", got, err)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SEED_FILE", "/tmp/plan.json")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()

	if cfg.SeedFile != "/tmp/plan.json" || cfg.RedisAddr != "redis:6379" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("expected 15m TTL, got %v", cfg.CacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}

	logger := cfg.NewLogger()
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("expected JSON formatter, got %T", logger.Formatter)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SEED_FILE", "REDIS_ADDR", "CACHE_TTL", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg := Load()

	if cfg.SeedFile != "debts.example.json" || cfg.RedisAddr != "" || cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("expected default TTL 1h, got %v", cfg.CacheTTL)
	}
}
