package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.NATS.Enabled)
	assert.Equal(t, "draft_outbox_events", cfg.Outbox.NotifyChannel)
	assert.Equal(t, 30*time.Second, cfg.Outbox.FallbackInterval)
	assert.Equal(t, int32(100), cfg.Outbox.BatchSize)
	assert.True(t, cfg.Gateway.Enabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  addr: ":9090"
nats:
  enabled: true
  url: nats://broker:4222
outbox:
  notify_channel: custom_channel
  batch_size: 50
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.NATS.Enabled)
	assert.Equal(t, "nats://broker:4222", cfg.NATS.URL)
	assert.Equal(t, "custom_channel", cfg.Outbox.NotifyChannel)
	assert.Equal(t, int32(50), cfg.Outbox.BatchSize)
	// Unset fields keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.Outbox.FallbackInterval)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("NATS_URL", "nats://env-broker:4222")
	t.Setenv("SERVER_ADDR", ":7070")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "nats://env-broker:4222", cfg.NATS.URL)
	assert.True(t, cfg.NATS.Enabled)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}
