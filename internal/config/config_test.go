package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/ValueCharts/internal/view"
)

var envVars = []string{
	"VALUECHARTS_PORT", "VALUECHARTS_METRICS_PORT", "VALUECHARTS_ADMIN_TOKEN",
	"VALUECHARTS_HERMES_URL", "VALUECHARTS_QUEUE_SIZE", "VALUECHARTS_RESCALE_ON_EDIT",
	"VALUECHARTS_LOG_LEVEL", "VALUECHARTS_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.Engine.QueueSize != 256 {
		t.Errorf("expected queue size 256, got %d", cfg.Engine.QueueSize)
	}
	if !cfg.Engine.RescaleOnEdit {
		t.Error("expected rescale_on_edit by default")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults %+v", cfg.Logging)
	}
	assert.Equal(t, view.DefaultConfig(), cfg.View)
	assert.Equal(t, view.DefaultInteractionConfig(), cfg.Interaction)

	if cfg.StatsInterval() != 30*time.Second {
		t.Errorf("expected StatsInterval 30s, got %v", cfg.StatsInterval())
	}
	if cfg.ReconnectWait() != 2*time.Second {
		t.Errorf("expected ReconnectWait 2s, got %v", cfg.ReconnectWait())
	}
	if cfg.IdleTimeout() != 30*time.Minute {
		t.Errorf("expected IdleTimeout 30m, got %v", cfg.IdleTimeout())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VALUECHARTS_PORT", "9000")
	t.Setenv("VALUECHARTS_METRICS_PORT", "9001")
	t.Setenv("VALUECHARTS_ADMIN_TOKEN", "secret-token")
	t.Setenv("VALUECHARTS_HERMES_URL", "nats://nats:4222")
	t.Setenv("VALUECHARTS_QUEUE_SIZE", "16")
	t.Setenv("VALUECHARTS_RESCALE_ON_EDIT", "false")
	t.Setenv("VALUECHARTS_LOG_LEVEL", "debug")
	t.Setenv("VALUECHARTS_LOG_FORMAT", "text")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 9001, cfg.Server.MetricsPort)
	assert.Equal(t, "secret-token", cfg.Server.AdminToken)
	assert.Equal(t, "nats://nats:4222", cfg.Hermes.URL)
	assert.Equal(t, 16, cfg.Engine.QueueSize)
	assert.False(t, cfg.Engine.RescaleOnEdit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "valuecharts.yaml")
	data := []byte(`
server:
  port: 8800
engine:
  queue_size: 32
  journal_limit: 10
view:
  orientation: horizontal
  display_scales: true
interaction:
  pump: increase
size:
  width: 640
  height: 480
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8800, cfg.Server.Port)
	assert.Equal(t, 8701, cfg.Server.MetricsPort, "unset keys keep defaults")
	assert.Equal(t, 32, cfg.Engine.QueueSize)
	assert.Equal(t, 10, cfg.Engine.JournalLimit)
	assert.Equal(t, view.Horizontal, cfg.View.Orientation)
	assert.True(t, cfg.View.DisplayScales)
	assert.True(t, cfg.View.DisplayWeights, "unset view keys keep defaults")
	assert.Equal(t, view.PumpIncrease, cfg.Interaction.Pump)
	assert.Equal(t, view.Size{Width: 640, Height: 480}, cfg.Size)
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view:\n  orientation: sideways\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)

	t.Setenv("VALUECHARTS_QUEUE_SIZE", "0")
	_, err = Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
