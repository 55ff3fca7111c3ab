package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/nilszeilon/keystats/internal/domain"
)

// Config holds the environment driven configuration for the tracer.
type Config struct {
	Home string `env:"HOME,notEmpty"`

	// Storage
	DataDir      string `env:"KEYSTATS_DATA_DIR"` // defaults to $HOME/.local/share/keystats
	DBFile       string `env:"KEYSTATS_DB_FILE" envDefault:"keystats.db"`
	StoreBackend string `env:"KEYSTATS_STORE_BACKEND" envDefault:"sqlite"` // Options: "sqlite" or "file"

	// Pump and buffer
	BufferSize    int           `env:"KEYSTATS_BUFFER_SIZE" envDefault:"50"`
	FlushInterval time.Duration `env:"KEYSTATS_FLUSH_INTERVAL" envDefault:"100s"`
	PollTimeout   time.Duration `env:"KEYSTATS_POLL_TIMEOUT" envDefault:"100ms"`

	// Devices
	InputGroup string `env:"KEYSTATS_INPUT_GROUP" envDefault:"input"`
	InputDir   string `env:"KEYSTATS_INPUT_DIR" envDefault:"/dev/input"`
	SysfsDir   string `env:"KEYSTATS_SYSFS_DIR" envDefault:"/sys/class/input"`

	// Observability
	LogLevel    string `env:"KEYSTATS_LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"KEYSTATS_LOG_FORMAT" envDefault:"console"`
	MetricsFile string `env:"KEYSTATS_METRICS_FILE"`
}

// LoadEnvFiles overlays variables from the given .env files, ./.env when none are named.
// Missing files are ignored.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Overload(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load parses environment variables into Config. A missing HOME is an Environment error.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		if strings.TrimSpace(os.Getenv("HOME")) == "" {
			return nil, domain.EnvironmentError(err, "HOME environment variable not set")
		}
		return nil, domain.EnvironmentError(err, "parse env config")
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(cfg.Home, ".local", "share", "keystats")
	}
	if cfg.DBFile == "" {
		cfg.DBFile = "keystats.db"
	}

	if cfg.BufferSize <= 0 {
		return nil, domain.EnvironmentError(nil, "KEYSTATS_BUFFER_SIZE must be positive, got %d", cfg.BufferSize)
	}
	if cfg.FlushInterval <= 0 {
		return nil, domain.EnvironmentError(nil, "KEYSTATS_FLUSH_INTERVAL must be positive, got %s", cfg.FlushInterval)
	}
	if cfg.PollTimeout <= 0 {
		return nil, domain.EnvironmentError(nil, "KEYSTATS_POLL_TIMEOUT must be positive, got %s", cfg.PollTimeout)
	}
	return cfg, nil
}

// DBPath returns the store file location.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}
