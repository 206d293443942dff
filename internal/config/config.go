package config

import (
	"fmt"
	"os"
	"strconv"

	"dataclaw/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Paths    PathConfig
	Ingest   IngestConfig
	Database DatabaseConfig
}

// ServerConfig holds HTTP host settings
type ServerConfig struct {
	Port string
}

// PathConfig holds file system paths
type PathConfig struct {
	// OutputRoot is where cleaned files and charts are written.
	OutputRoot string
}

// IngestConfig holds ingestion and reporting settings
type IngestConfig struct {
	// NumericThreshold is the minimum fraction of parseable cells required
	// before a text column is committed to numeric type.
	NumericThreshold float64
	// SampleRows bounds how many rows the diagnostic reads.
	SampleRows int
	// MaxSummaryColumns bounds the statistical summary width.
	MaxSummaryColumns int
}

// DatabaseConfig holds the optional run-audit database settings
type DatabaseConfig struct {
	// URL is a Postgres DSN; empty disables auditing.
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Paths: PathConfig{
			OutputRoot: getEnv("OUTPUT_DIR", "outputs"),
		},
		Ingest: IngestConfig{
			NumericThreshold:  0.70,
			SampleRows:        1000,
			MaxSummaryColumns: 8,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	if v := os.Getenv("NUMERIC_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f > 1 {
			return nil, errors.New("CONFIG_INVALID", fmt.Sprintf("NUMERIC_THRESHOLD must be a fraction in (0,1], got %q", v))
		}
		cfg.Ingest.NumericThreshold = f
	}
	if v := os.Getenv("SAMPLE_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, errors.New("CONFIG_INVALID", fmt.Sprintf("SAMPLE_ROWS must be a positive integer, got %q", v))
		}
		cfg.Ingest.SampleRows = n
	}

	return cfg, nil
}

// EnsureOutputRoot creates the output directory if absent. Hosts call this
// once at startup; the core never touches ambient global state.
func (c *Config) EnsureOutputRoot() error {
	if err := os.MkdirAll(c.Paths.OutputRoot, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", c.Paths.OutputRoot)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
