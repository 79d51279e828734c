package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "::", cfg.SSH.Host)
	assert.Equal(t, "2222", cfg.SSH.Port)
	assert.Equal(t, "/app/keys/host_key", cfg.SSH.HostKeyPath)
	assert.Equal(t, 15*time.Second, cfg.SSH.ShutdownTimeout)
	assert.False(t, cfg.Graylog.Enabled)
	assert.Equal(t, "localhost:12201", cfg.Graylog.Address)
	assert.False(t, cfg.Influx.Enabled)
	assert.Equal(t, "http://localhost:8086", cfg.Influx.URL)
	assert.Equal(t, "hyperspace", cfg.Influx.Org)
	assert.Equal(t, "sessions", cfg.Influx.Bucket)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Metrics.Path)
	assert.Equal(t, 30*time.Second, cfg.Metrics.Interval)
	assert.Equal(t, time.Second/60, cfg.FrameTime())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	yaml := `
logLevel: debug
fps: 30
seed: 42
ssh:
  port: "2323"
  shutdownTimeout: 3s
influx:
  enabled: true
  token: secret
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hyperspace.yaml"), []byte(yaml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "2323", cfg.SSH.Port)
	assert.Equal(t, "::", cfg.SSH.Host)
	assert.Equal(t, 3*time.Second, cfg.SSH.ShutdownTimeout)
	assert.True(t, cfg.Influx.Enabled)
	assert.Equal(t, "secret", cfg.Influx.Token)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("HYPERSPACE_SSH_PORT", "2424")
	t.Setenv("HYPERSPACE_LOGLEVEL", "warn")
	t.Setenv("HYPERSPACE_GRAYLOG_ENABLED", "true")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "2424", cfg.SSH.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Graylog.Enabled)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hyperspace.yaml"), []byte("fps: [1, 2\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hyperspace.yaml"), []byte("fps: 0\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fps")
}

func TestValidate(t *testing.T) {
	valid := Config{FPS: 60, SSH: SSHConfig{Port: "22"}}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fps too high", func(c *Config) { c.FPS = 1000 }},
		{"empty port", func(c *Config) { c.SSH.Port = "" }},
		{"negative timeout", func(c *Config) { c.SSH.ShutdownTimeout = -time.Second }},
		{"graylog without address", func(c *Config) { c.Graylog.Enabled = true }},
		{"influx without url", func(c *Config) { c.Influx.Enabled = true; c.Influx.Bucket = "b" }},
		{"metrics without interval", func(c *Config) { c.Metrics.Enabled = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_FlagsOverrideFileAndEnv(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hyperspace.yaml"), []byte("fps: 30\nseed: 9\n"), 0644))
	t.Setenv("HYPERSPACE_FPS", "45")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(fs))
	require.NoError(t, fs.Parse([]string{"--fps=120", "--log-level=debug"}))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.FPS)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(9), cfg.Seed, "unset flag must not shadow the file")
}
