package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/nativeview/internal/application/bridge"
	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/infrastructure/config"
	"github.com/bnema/nativeview/internal/infrastructure/persistence/sqlite"
)

func newTestRuntime(t *testing.T) (*Runtime, *config.Manager) {
	t.Helper()
	mgr, err := config.NewManagerAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	r, err := New(context.Background(), mgr, Options{Kind: config.EngineHeadless, Quiet: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, mgr
}

func TestRuntime_AssemblesHeadless(t *testing.T) {
	r, mgr := newTestRuntime(t)

	assert.Equal(t, config.EngineHeadless, r.Engine.Kind)
	assert.NotEmpty(t, r.SessionID)
	require.NotNil(t, r.Journal)
	assert.Equal(t, mgr.Get().Journal.Path, r.Journal.Path())
	assert.Equal(t, []string{"logging", "engine", "journal"}, r.Timer.Phases())
	assert.True(t, r.Bridge.Availability(r.Context()).Available)
}

func TestRuntime_ViewsJournalTheirNavigations(t *testing.T) {
	r, _ := newTestRuntime(t)
	ctx := r.Context()

	var created entity.WebViewHandle
	w := r.NewWebView(ctx, func(o *bridge.Options) {
		o.ViewID = "main"
		o.Callbacks.OnCreated = func(h entity.WebViewHandle) { created = h }
	})
	w.SetNavigationInterceptor(func(url string) bool { return url != "https://blocked.example/" })

	require.NoError(t, w.Open(ctx, port.RawSurface(1)))
	require.NoError(t, w.LoadURL(ctx, "https://ok.example/"))
	w.Sync()
	require.NoError(t, w.LoadURL(ctx, "https://blocked.example/"))
	assert.True(t, created.Valid())
	assert.Equal(t, "https://ok.example/", w.CurrentURL())
	require.NoError(t, w.Close())

	path := r.Journal.Path()
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	db, err := sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	defer func() { _ = sqlite.Close(db) }()
	counts, err := sqlite.NewJournalRepository(db).CountByKind(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[entity.JournalURLCommitted])
	assert.Equal(t, int64(1), counts[entity.JournalNavigationRejected])
}

func TestRuntime_ConfigReloadAppliesToNewViews(t *testing.T) {
	r, mgr := newTestRuntime(t)

	cfg := mgr.Get()
	cfg.View.InitialURL = "https://reloaded.example/"
	require.NoError(t, config.WriteConfigOrdered(cfg, mgr.File()))
	require.NoError(t, mgr.Reload())

	ctx := r.Context()
	w := r.NewWebView(ctx, nil)
	require.NoError(t, w.Open(ctx, port.RawSurface(1)))
	w.Sync()
	assert.Equal(t, "https://reloaded.example/", w.CurrentURL())
	require.NoError(t, w.Close())
}

func TestNew_NilManager(t *testing.T) {
	_, err := New(context.Background(), nil, Options{})
	assert.Error(t, err)
}
