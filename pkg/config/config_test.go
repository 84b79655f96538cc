package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GATEHOUSE_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.BindAddress)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gatehouse_session", cfg.SessionCookieName)
	assert.Equal(t, 3, cfg.LockoutAttemptLimit)
	assert.Equal(t, 300, cfg.LockoutDurationSeconds)
	assert.Equal(t, "default", cfg.Source("port"))
	assert.Equal(t, 5*time.Minute, cfg.LockoutDuration())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GATEHOUSE_CONFIG_PATH", dir)

	content := []byte("port: 9090\nlockout_attempt_limit: 5\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "file", cfg.Source("port"))
	assert.Equal(t, 5, cfg.LockoutAttemptLimit)
	assert.Equal(t, "default", cfg.Source("bind_address"))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GATEHOUSE_CONFIG_PATH", dir)
	t.Setenv("GATEHOUSE_PORT", "7070")

	content := []byte("port: 9090\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "environment", cfg.Source("port"))
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GATEHOUSE_CONFIG_PATH", dir)

	content := []byte("port: [not a number\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := newDefault()
	assert.NoError(t, cfg.Validate())

	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.LockoutAttemptLimit = 0
	assert.Error(t, cfg.Validate())
}

func TestSessionKey(t *testing.T) {
	key := make([]byte, 32)
	t.Setenv("GATEHOUSE_SESSION_KEY", base64.StdEncoding.EncodeToString(key))

	got, err := SessionKey()
	require.NoError(t, err)
	assert.Len(t, got, 32)
}

func TestSessionKeyTooShort(t *testing.T) {
	t.Setenv("GATEHOUSE_SESSION_KEY", base64.StdEncoding.EncodeToString([]byte("short")))

	_, err := SessionKey()
	assert.Error(t, err)
}

func TestSessionKeyNotBase64(t *testing.T) {
	t.Setenv("GATEHOUSE_SESSION_KEY", "not base64!!!")

	_, err := SessionKey()
	assert.Error(t, err)
}

func TestFormatText(t *testing.T) {
	cfg := newDefault()
	text := cfg.FormatText()
	assert.Contains(t, text, "bind_address")
	assert.Contains(t, text, "lockout_attempt_limit")
	assert.Contains(t, text, "default")
}
