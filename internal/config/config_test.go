package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "deskwatch.db", cfg.SQLitePath)
	assert.Equal(t, "localhost:19530", cfg.MilvusAddr)
	assert.Equal(t, "app_usage_vectors", cfg.MilvusCollection)
	assert.Equal(t, "all-minilm", cfg.EmbedModel)
	assert.Equal(t, 384, cfg.EmbedDim)
	assert.Equal(t, ":8000", cfg.GetHTTPAddr())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DESKWATCH_HTTP_PORT", "9090")
	t.Setenv("DESKWATCH_DB_DRIVER", "postgres")
	t.Setenv("DESKWATCH_POSTGRES_DSN", "postgres://localhost:5432/deskwatch")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestPostgresRequiresDSN(t *testing.T) {
	t.Setenv("DESKWATCH_DB_DRIVER", "postgres")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestUnsupportedDriverRejected(t *testing.T) {
	t.Setenv("DESKWATCH_DB_DRIVER", "mongo")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestAgentDefaults(t *testing.T) {
	cfg, err := NewAgent()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, 5, cfg.PollIntervalSeconds)
	assert.Equal(t, 2, cfg.CPUSampleSeconds)
}

func TestAgentCPUWindowMustFitInterval(t *testing.T) {
	t.Setenv("DESKWATCH_AGENT_POLL_INTERVAL_SECONDS", "2")
	t.Setenv("DESKWATCH_AGENT_CPU_SAMPLE_SECONDS", "3")

	_, err := NewAgent()
	require.Error(t, err)
}
