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
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
postgres:
  dsn: "postgres://localhost/test"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, 30, cfg.Telegram.PollTimeout)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "auto", cfg.Verify.Mode)
	assert.InDelta(t, 0.7, cfg.Verify.PassRate, 1e-9)
	assert.Equal(t, "24h", cfg.Booking.WizardTTL)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
app:
  env: dev
telegram:
  token: "123:abc"
  admin_chat_id: 9000
storage:
  driver: memory
verify:
  mode: random
  pass_rate: 0.5
booking:
  min_problem_len: 10
  wizard_ttl: 48h
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, int64(9000), cfg.Telegram.AdminChatID)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "random", cfg.Verify.Mode)
	assert.InDelta(t, 0.5, cfg.Verify.PassRate, 1e-9)
	assert.Equal(t, 10, cfg.Booking.MinProblemLen)
	assert.Equal(t, "48h", cfg.Booking.WizardTTL)
}

func TestLoadRequiresToken(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: ""
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.token")
}
