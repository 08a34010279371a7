package cli

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/nativeview/internal/bootstrap"
	"github.com/bnema/nativeview/internal/infrastructure/config"
)

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) add(ev Event) {
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
}

func (l *eventLog) kinds(kind EventKind) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Event
	for _, ev := range l.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func newSimulator(t *testing.T, kind config.EngineKind, block ...string) (*Simulator, *eventLog, *bootstrap.Runtime) {
	t.Helper()
	return newSimulatorWithConfig(t, "", kind, block...)
}

// newSimulatorWithConfig writes configTOML to config.toml before loading when non-empty.
func newSimulatorWithConfig(t *testing.T, configTOML string, kind config.EngineKind, block ...string) (*Simulator, *eventLog, *bootstrap.Runtime) {
	t.Helper()
	dir := t.TempDir()
	if configTOML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(configTOML), 0o644))
	}
	mgr, err := config.NewManagerAt(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	rt, err := bootstrap.New(context.Background(), mgr, bootstrap.Options{Kind: kind, Quiet: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	log := &eventLog{}
	sim, err := NewSimulator(rt, block, log.add)
	if err != nil {
		return nil, log, rt
	}
	return sim, log, rt
}

func mustSteps(t *testing.T, raw ...string) []Step {
	t.Helper()
	steps, err := ParseSteps(raw)
	require.NoError(t, err)
	return steps
}

func TestSimulator_LoadAndTitle(t *testing.T) {
	sim, log, rt := newSimulator(t, config.EngineHeadless)
	require.NotNil(t, sim)

	final, err := sim.Run(rt.Context(), mustSteps(t, "load:https://example.com/", "sync", "title:Example", "sync"))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/", final.CurrentURL)
	assert.Equal(t, "Example", final.PageTitle)
	assert.Len(t, log.kinds(EventStep), 4)
	assert.Len(t, log.kinds(EventDone), 1)
	assert.NotEmpty(t, log.kinds(EventURL))
}

func TestSimulator_BlockedNavigationIsRejected(t *testing.T) {
	sim, log, rt := newSimulator(t, config.EngineHeadless, "ads.")
	require.NotNil(t, sim)

	final, err := sim.Run(rt.Context(), mustSteps(t,
		"load:https://example.com/", "sync",
		"load:https://ads.example/banner", "sync"))
	require.NoError(t, err)

	rejected := log.kinds(EventRejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, "https://ads.example/banner", rejected[0].Detail)
	assert.Equal(t, "https://example.com/", final.CurrentURL)
	assert.Equal(t, "https://ads.example/banner", final.NavigatingURL)
}

func TestSimulator_CrashRecreatesView(t *testing.T) {
	sim, log, rt := newSimulator(t, config.EngineHeadless)
	require.NotNil(t, sim)

	_, err := sim.Run(rt.Context(), mustSteps(t, "load:https://example.com/", "sync", "crash", "sync"))
	require.NoError(t, err)

	assert.Len(t, log.kinds(EventRecreated), 1)
	assert.Empty(t, log.kinds(EventError))
}

func TestSimulator_ReadFailuresDegradeOnce(t *testing.T) {
	sim, log, rt := newSimulator(t, config.EngineHeadless)
	require.NotNil(t, sim)

	_, err := sim.Run(rt.Context(), mustSteps(t,
		"load:https://example.com/", "sync",
		"fail:on", "sync", "sync", "sync", "sync",
		"fail:off", "sync"))
	require.NoError(t, err)

	degraded := log.kinds(EventDegraded)
	require.Len(t, degraded, 1)
	assert.Contains(t, degraded[0].Detail, "injected read failure")
}

func TestSimulator_RedirectThenLoad(t *testing.T) {
	sim, log, rt := newSimulator(t, config.EngineHeadless)
	require.NotNil(t, sim)

	final, err := sim.Run(rt.Context(), mustSteps(t, "redirect:https://nowhere.example/", "load:https://example.com/", "sync"))
	require.NoError(t, err)

	assert.Empty(t, log.kinds(EventError))
	assert.Equal(t, "https://example.com/", final.CurrentURL)
}

func TestSimulator_StopsOnCancelledContext(t *testing.T) {
	sim, _, rt := newSimulator(t, config.EngineHeadless)
	require.NotNil(t, sim)

	ctx, cancel := context.WithCancel(rt.Context())
	cancel()
	_, err := sim.Run(ctx, mustSteps(t, "sync"))
	assert.Error(t, err)
}

func TestNewSimulator_RequiresHeadless(t *testing.T) {
	sim, _, _ := newSimulator(t, config.EngineNative)
	assert.Nil(t, sim)
}

func TestSimulator_FailedStepIsReportedAndRunContinues(t *testing.T) {
	sim, log, rt := newSimulatorWithConfig(t, "[supervisor]\nauto_recreate = false\n", config.EngineHeadless)
	require.NotNil(t, sim)

	// without recreation the second crash finds no live view
	_, err := sim.Run(rt.Context(), mustSteps(t, "load:https://example.com/", "sync", "crash", "crash", "sync"))
	require.NoError(t, err)

	assert.Len(t, log.kinds(EventStep), 5)
	assert.NotEmpty(t, log.kinds(EventError))
	assert.Len(t, log.kinds(EventDone), 1)
	assert.Empty(t, log.kinds(EventRecreated))
}
