package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configName), []byte(body), filePerm))
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManagerAt(dir)
	require.NoError(t, err)

	require.NoError(t, m.Load())

	assert.FileExists(t, filepath.Join(dir, configName))
	assert.FileExists(t, filepath.Join(dir, schemaName))

	cfg := m.Get()
	assert.Equal(t, EngineAuto, cfg.Engine.Kind)
	assert.Equal(t, 200*time.Millisecond, cfg.Timing.PollInterval.Std())
	assert.Equal(t, 32*time.Millisecond, cfg.Timing.BoundsWindow.Std())
	assert.Equal(t, filepath.Join(dir, databaseName), cfg.Journal.Path)
	assert.True(t, cfg.View.JavaScriptEnabled)
	assert.False(t, cfg.View.AllowsFileAccess)
}

func TestManager_LoadReadsFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[engine]
kind = " Headless "

[timing]
poll_interval = "180ms"
bounds_window = "16ms"

[supervisor]
max_recreates = 1
`)
	m, err := NewManagerAt(dir)
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, EngineHeadless, cfg.Engine.Kind)
	assert.Equal(t, 180*time.Millisecond, cfg.Timing.PollInterval.Std())
	assert.Equal(t, 16*time.Millisecond, cfg.Timing.BoundsWindow.Std())
	assert.Equal(t, 1, cfg.Supervisor.MaxRecreates)
	assert.Equal(t, defaultEnvironmentMaxAttempts, cfg.Timing.EnvironmentMaxAttempts)
}

func TestManager_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[engine]\nkind = \"auto\"\n")
	t.Setenv("NATIVEVIEW_ENGINE_KIND", "headless")
	t.Setenv("NATIVEVIEW_LOG_LEVEL", "debug")

	m, err := NewManagerAt(dir)
	require.NoError(t, err)
	require.NoError(t, m.Load())

	assert.Equal(t, EngineHeadless, m.Get().Engine.Kind)
	assert.Equal(t, "debug", m.Get().Logging.Level)
}

func TestManager_LoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[engine]
kind = "gecko"

[timing]
poll_interval = "1s"
degraded_threshold = 0
`)
	m, err := NewManagerAt(dir)
	require.NoError(t, err)

	err = m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.kind")
	assert.Contains(t, err.Error(), "timing.poll_interval")
	assert.Contains(t, err.Error(), "timing.degraded_threshold")
}

func TestManager_LoadRejectsMalformedDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[timing]\npoll_interval = \"soon\"\n")
	m, err := NewManagerAt(dir)
	require.NoError(t, err)

	assert.Error(t, m.Load())
}

func TestManager_ReloadNotifiesCallbacks(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[timing]\npoll_interval = \"200ms\"\n")
	m, err := NewManagerAt(dir)
	require.NoError(t, err)
	require.NoError(t, m.Load())

	var got *Config
	m.OnConfigChange(func(c *Config) { got = c })

	writeConfig(t, dir, "[timing]\npoll_interval = \"240ms\"\n")
	require.NoError(t, m.Reload())

	require.NotNil(t, got)
	assert.Equal(t, 240*time.Millisecond, got.Timing.PollInterval.Std())
	assert.Equal(t, 240*time.Millisecond, m.Get().Timing.PollInterval.Std())
}

func TestManager_ReloadKeepsPreviousOnInvalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[timing]\npoll_interval = \"200ms\"\n")
	m, err := NewManagerAt(dir)
	require.NoError(t, err)
	require.NoError(t, m.Load())

	called := false
	m.OnConfigChange(func(*Config) { called = true })

	writeConfig(t, dir, "[timing]\npoll_interval = \"5ms\"\n")
	assert.Error(t, m.Reload())
	assert.False(t, called)
	assert.Equal(t, 200*time.Millisecond, m.Get().Timing.PollInterval.Std())
}

func TestManager_GetReturnsCopy(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	m.Get().Engine.Kind = EngineNative
	assert.Equal(t, EngineAuto, m.Get().Engine.Kind)
}
