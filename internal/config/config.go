package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the telemetry service.
// Environment variables are parsed from the DESKWATCH_ prefix, e.g.
// DESKWATCH_HTTP_PORT, DESKWATCH_MILVUS_ADDR.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8000"`

	// Metadata store selection and endpoints
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"deskwatch.db"`

	// Vector index endpoint and collection
	MilvusAddr       string `envconfig:"MILVUS_ADDR" default:"localhost:19530"`
	MilvusCollection string `envconfig:"MILVUS_COLLECTION" default:"app_usage_vectors"`

	// Embedding configuration
	EmbedProvider string `envconfig:"EMBED_PROVIDER" default:"ollama"`
	EmbedModel    string `envconfig:"EMBED_MODEL" default:"all-minilm"`
	EmbedDim      int    `envconfig:"EMBED_DIM" default:"384"`
	OllamaURL     string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`

	// Health monitoring
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	BootstrapTimeoutSeconds   int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"30"`
}

// ResolveDefaults validates driver selection and cross-field requirements.
func (c *Config) ResolveDefaults() error {
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("DESKWATCH_SQLITE_PATH is required when DB_DRIVER=sqlite")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("DESKWATCH_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.EmbedDim <= 0 {
		return fmt.Errorf("EMBED_DIM must be positive, got %d", c.EmbedDim)
	}
	return nil
}

// New creates a new Config by parsing DESKWATCH_-prefixed environment
// variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("DESKWATCH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// AgentConfig holds the configuration for the workstation agent.
// Environment variables are parsed from the DESKWATCH_AGENT_ prefix.
type AgentConfig struct {
	// ServerURL is the base URL of the telemetry service.
	ServerURL string `envconfig:"SERVER_URL" default:"http://localhost:8000"`

	// PollIntervalSeconds is the sampling cadence. The CPU sample window
	// blocks for CPUSampleSeconds inside each tick, so the interval cannot
	// usefully drop below it.
	PollIntervalSeconds int `envconfig:"POLL_INTERVAL_SECONDS" default:"5"`
	CPUSampleSeconds    int `envconfig:"CPU_SAMPLE_SECONDS" default:"2"`
}

// NewAgent creates an AgentConfig from the environment.
func NewAgent() (*AgentConfig, error) {
	var cfg AgentConfig
	if err := envconfig.Process("DESKWATCH_AGENT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.PollIntervalSeconds <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL_SECONDS must be positive, got %d", cfg.PollIntervalSeconds)
	}
	if cfg.CPUSampleSeconds < 0 || cfg.CPUSampleSeconds >= cfg.PollIntervalSeconds {
		return nil, fmt.Errorf("CPU_SAMPLE_SECONDS must be shorter than the poll interval")
	}
	return &cfg, nil
}
