package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Session.ErrorClearDelay)
	assert.Equal(t, "octocat", cfg.Session.DefaultUsername)
	assert.Equal(t, "lookup.events", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadConfig_YAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
app:
  port: "9090"
github:
  base_url: http://github.local
session:
  ttl: 5m
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("GITHUB_USER_AGENT", "devfinder-test")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SESSION_ERROR_CLEAR_DELAY", "3s")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "http://github.local", cfg.GitHub.BaseURL)
	assert.Equal(t, "devfinder-test", cfg.GitHub.UserAgent)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 3*time.Second, cfg.Session.ErrorClearDelay)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("app:\n  port: \"9090\"\n"), 0o600))
	t.Setenv("APP_PORT", "7070")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.App.Port)
}
