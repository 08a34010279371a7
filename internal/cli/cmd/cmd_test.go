package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/nativeview/internal/domain/build"
)

// execute runs the root command against a config directory and returns stdout.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	app = nil
	simFlags = simulateFlags{}
	configForce = false
	configSchemaPath = ""
	journalSession, journalLimit, journalStats = "", 50, false
	genDocsOutputDir, genDocsFormat = "", "man"
	t.Setenv("NATIVEVIEW_ENGINE_KIND", "headless")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config-dir", dir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	out, err := execute(t, dir, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "exists", "loading the app writes the defaults")

	out, err = execute(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	require.NoError(t, os.WriteFile(path, []byte("[view]\ninitial_url = \"https://example.com/\"\n"), 0o644))
	out, err = execute(t, dir, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "https://example.com/")
	assert.Contains(t, string(data), "[timing]")

	out, err = execute(t, dir, "config", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "nativeview configuration")

	schemaPath := filepath.Join(dir, "schema.json")
	_, err = execute(t, dir, "config", "schema", "--output", schemaPath)
	require.NoError(t, err)
	assert.FileExists(t, schemaPath)
}

func TestSimulateThenJournal(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "simulate", "--block", "ads.",
		"load:https://example.com/", "sync",
		"load:https://ads.example/", "sync",
		"title:Hello", "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "https://example.com/")
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "https://ads.example/")
	assert.Contains(t, out, "done")

	out, err = execute(t, dir, "journal", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "url_committed")
	assert.Contains(t, out, "navigation_rejected")

	out, err = execute(t, dir, "journal", "--limit", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "simulator/")
}

func TestSimulate_RequiresSteps(t *testing.T) {
	_, err := execute(t, t.TempDir(), "simulate")
	assert.ErrorContains(t, err, "no steps given")
}

func TestSimulate_RejectsBadStep(t *testing.T) {
	_, err := execute(t, t.TempDir(), "simulate", "teleport")
	assert.Error(t, err)
}

func TestDoctor_ReportsHeadless(t *testing.T) {
	out, err := execute(t, t.TempDir(), "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "headless")
	assert.Contains(t, out, "native")
	assert.Contains(t, out, "selected")
}

func TestVersion(t *testing.T) {
	SetBuildInfo(build.Info{Version: "v0.0.0-test", Commit: "deadbeef", BuildDate: "2026-01-01", GoVersion: "go1.25"})
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "v0.0.0-test")
	assert.Contains(t, out, "headless")
}

func TestGenDocs_Markdown(t *testing.T) {
	out := filepath.Join(t.TempDir(), "docs")
	_, err := execute(t, t.TempDir(), "gen-docs", "--format", "markdown", "--output", out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "nativeview.md"))
	assert.FileExists(t, filepath.Join(out, "nativeview_simulate.md"))
}
