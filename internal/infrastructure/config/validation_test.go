package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Journal.Path = "/tmp/journal.sqlite"
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(validConfig()))
	assert.Error(t, Validate(nil))
}

func TestValidate_Table(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown engine", func(c *Config) { c.Engine.Kind = "trident" }, "engine.kind"},
		{"bad download url", func(c *Config) { c.Engine.DownloadURL = "ftp://example" }, "engine.download_url"},
		{"poll too fast", func(c *Config) { c.Timing.PollInterval = Duration(100 * time.Millisecond) }, "timing.poll_interval"},
		{"poll too slow", func(c *Config) { c.Timing.PollInterval = Duration(300 * time.Millisecond) }, "timing.poll_interval"},
		{"zero window", func(c *Config) { c.Timing.BoundsWindow = 0 }, "timing.bounds_window"},
		{"no env attempts", func(c *Config) { c.Timing.EnvironmentMaxAttempts = 0 }, "timing.environment_max_attempts"},
		{"zero refresh", func(c *Config) { c.Timing.ContainerRefreshEvery = 0 }, "timing.container_refresh_every"},
		{"negative recreates", func(c *Config) { c.Supervisor.MaxRecreates = -1 }, "supervisor.max_recreates"},
		{"journal without path", func(c *Config) { c.Journal.Path = "" }, "journal.path"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_PollBoundsInclusive(t *testing.T) {
	for _, d := range []time.Duration{150 * time.Millisecond, 250 * time.Millisecond} {
		cfg := validConfig()
		cfg.Timing.PollInterval = Duration(d)
		assert.NoError(t, Validate(cfg), d)
	}
}
