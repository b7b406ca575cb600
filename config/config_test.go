package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  rate_limit_per_sec: 5
decoder:
  verify_frames: 3
database:
  dsn: "host=localhost user=ir dbname=irhub"
  max_open_conns: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5.0, cfg.Server.RateLimitPerSec)
	assert.Equal(t, 3, cfg.Decoder.VerifyFrames)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)

	// Unset fields fall back to defaults.
	assert.Equal(t, 20, cfg.Server.RateLimitBurst)
	assert.Equal(t, 300, cfg.Server.CacheTTLSeconds)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10.0, cfg.Server.RateLimitPerSec)
	assert.Equal(t, 2, cfg.Decoder.VerifyFrames)
	assert.Equal(t, "irhub.db", cfg.Database.DSN)
}

func TestLoadRejectsInvalidVerifyFrames(t *testing.T) {
	cfg, err := Load(writeConfig(t, "decoder:\n  verify_frames: 7\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Decoder.VerifyFrames)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
