package bridge

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
	repomocks "github.com/bnema/nativeview/internal/domain/repository/mocks"
)

const testHost = port.RawSurface(0x1000)

func newTestWebView(t *testing.T, engine port.Engine, configure func(*Options)) (*WebView, *EngineContext) {
	t.Helper()
	ectx := NewEngineContext(context.Background(), engine, RegistryOptions{
		EnvironmentPollInterval: time.Millisecond,
		EnvironmentMaxAttempts:  10,
	})
	opts := DefaultOptions()
	opts.Timing.PollInterval = MaxPollInterval
	opts.Timing.BoundsWindow = testWindow
	opts.Timing.ForceDisplaySettle = time.Millisecond
	if configure != nil {
		configure(&opts)
	}
	w := ectx.NewWebView(context.Background(), opts)
	t.Cleanup(func() {
		_ = w.Close()
		_ = ectx.Close()
	})
	return w, ectx
}

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) add(v string) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestWebView_InterceptorSeesTargetBeforeCommit(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	w, _ := newTestWebView(t, engine, nil)

	const blocked = "https://blocked.example/"
	type decision struct{ target, current, navigating string }
	var decisions []decision
	w.SetNavigationInterceptor(func(url string) bool {
		decisions = append(decisions, decision{target: url, current: w.CurrentURL(), navigating: w.NavigatingURL()})
		return url != blocked
	})

	require.NoError(t, w.Open(ctx, testHost))
	require.NoError(t, w.LoadURL(ctx, "https://allowed.example/"))
	w.Sync()
	assert.Equal(t, "https://allowed.example/", w.CurrentURL())

	require.NoError(t, w.LoadURL(ctx, blocked))
	w.Sync()

	require.Len(t, decisions, 2)
	assert.Equal(t, decision{target: "https://allowed.example/", current: "", navigating: "https://allowed.example/"}, decisions[0])
	assert.Equal(t, "https://allowed.example/", decisions[1].current)
	assert.Equal(t, blocked, decisions[1].navigating)

	assert.Equal(t, "https://allowed.example/", w.CurrentURL(), "rejected navigation leaves current url")
	assert.Equal(t, blocked, w.NavigatingURL(), "rejected url stays recorded")
}

func TestWebView_InterceptorSetBeforeAttachIsActive(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.InitialURL = "https://first.example/"
	})

	seen := &recorder{}
	w.SetNavigationInterceptor(func(url string) bool {
		seen.add(url)
		return false
	})

	require.NoError(t, w.Open(ctx, testHost))
	w.Sync()

	assert.Equal(t, []string{"https://first.example/"}, seen.get())
	assert.Empty(t, w.CurrentURL())
	assert.Equal(t, "https://first.example/", w.NavigatingURL())
	assert.Empty(t, engine.urlOf(engine.lastNative()))
}

func TestWebView_FileAccessDenied(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	journal := repomocks.NewMockNavigationJournalRepository(t)
	journal.EXPECT().
		Record(mock.Anything, mock.MatchedBy(func(e *entity.JournalEntry) bool {
			return e.Kind == entity.JournalNativeFailure && e.URL == "file:///etc/passwd"
		})).
		Return(nil).
		Once()

	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.View.AllowsFileAccess = false
		o.Journal = journal
		o.SessionID = "20260101_000000_abcd"
	})
	require.NoError(t, w.Open(ctx, testHost))

	err := w.LoadURL(ctx, "file:///etc/passwd")
	require.Error(t, err)
	assert.ErrorIs(t, err, port.ErrNativeCallFailure)

	w.Sync()
	assert.False(t, w.CanGoBack())
	assert.Equal(t, entity.LifecycleAttached, w.Lifecycle())

	require.NoError(t, w.Close())
}

func TestWebView_ExternalURLChangeFiresOnce(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	changes := &recorder{}
	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.Callbacks.OnURLChanged = changes.add
	})
	require.NoError(t, w.Open(ctx, testHost))

	engine.redirect(engine.lastNative(), "https://external.example/")
	w.Sync()

	assert.Equal(t, "https://external.example/", w.NavigatingURL())
	assert.Equal(t, "https://external.example/", w.CurrentURL())

	w.Sync()
	w.Sync()
	assert.Equal(t, []string{"https://external.example/"}, changes.get())
}

func TestWebView_PollerPicksUpChangeWithinOneTick(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	changes := &recorder{}
	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.Timing.PollInterval = DefaultPollInterval
		o.Callbacks.OnURLChanged = changes.add
	})
	require.NoError(t, w.Open(ctx, testHost))

	engine.redirect(engine.lastNative(), "https://tick.example/")
	require.Eventually(t, func() bool {
		return len(changes.get()) == 1
	}, 2*DefaultPollInterval+50*time.Millisecond, 10*time.Millisecond)

	assert.Equal(t, "https://tick.example/", w.NavigatingURL())
	time.Sleep(2 * DefaultPollInterval)
	assert.Len(t, changes.get(), 1)
}

func TestWebView_CloseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	disposed := 0
	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.Callbacks.OnDisposed = func() { disposed++ }
	})
	require.NoError(t, w.Open(ctx, testHost))
	native := engine.lastNative()

	for i := 0; i < 3; i++ {
		require.NoError(t, w.Close())
	}

	assert.Equal(t, 1, engine.destroyCount(native))
	assert.Equal(t, 1, disposed)
	assert.Equal(t, entity.NoHandle, w.Handle())
	assert.Equal(t, entity.LifecycleDestroyed, w.Lifecycle())

	loads := engine.count("load_url")
	assert.NoError(t, w.LoadURL(ctx, "https://after.example/"))
	assert.NoError(t, w.GoBack(ctx))
	assert.NoError(t, w.EvaluateJavaScript(ctx, "1+1"))
	assert.Equal(t, loads, engine.count("load_url"))
	assert.ErrorIs(t, w.Open(ctx, testHost), port.ErrInvalidHandle)
}

func TestWebView_CommandsBeforeCreateAreNoOps(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	w, _ := newTestWebView(t, engine, nil)

	assert.NoError(t, w.LoadURL(ctx, "https://a.example/"))
	assert.NoError(t, w.Reload(ctx))
	assert.NoError(t, w.StopLoading(ctx))
	assert.NoError(t, w.GoForward(ctx))
	assert.NoError(t, w.SetVisible(ctx, true))
	assert.NoError(t, w.ForceDisplay(ctx))
	assert.ErrorIs(t, w.Attach(ctx, testHost), port.ErrInvalidHandle)
	assert.Equal(t, 0, engine.count("load_url"))
	assert.Equal(t, entity.LifecycleUninitialized, w.Lifecycle())
}

func TestWebView_CrashRecreatesAndReplaysURL(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	type pair struct{ prev, cur entity.WebViewHandle }
	var recreated []pair
	w, ectx := newTestWebView(t, engine, func(o *Options) {
		o.InitialURL = "https://a.example/"
		o.Callbacks.OnRecreated = func(prev, cur entity.WebViewHandle) {
			recreated = append(recreated, pair{prev, cur})
		}
	})
	require.NoError(t, w.Open(ctx, testHost))
	w.Sync()
	require.Equal(t, "https://a.example/", w.CurrentURL())

	old := w.Handle()
	oldNative := engine.lastNative()
	engine.crashView(oldNative)

	assert.Equal(t, entity.LifecycleDestroyed, ectx.Registry().State(old))
	assert.Equal(t, 0, engine.destroyCount(oldNative), "dead view is not destroyed natively")
	require.NoError(t, w.AwaitRecovery(ctx))

	current := w.Handle()
	require.True(t, current.Valid())
	assert.NotEqual(t, old, current)
	assert.Equal(t, entity.LifecycleAttached, w.Lifecycle())
	assert.Equal(t, "https://a.example/", engine.urlOf(engine.lastNative()))
	assert.Equal(t, []pair{{old, current}}, recreated)

	engine.crashView(oldNative)
	assert.Equal(t, 1, w.Recreates())
	assert.Equal(t, current, w.Handle())
}

func TestWebView_CrashStopsNativeCallsUntilRecreated(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.AutoRecreate = false
	})
	require.NoError(t, w.Open(ctx, testHost))
	native := engine.lastNative()

	w.UpdateBounds(entity.BoundsRect{Width: 100, Height: 100})
	require.Eventually(t, func() bool { return len(engine.boundsCalls()) == 1 }, time.Second, 5*time.Millisecond)

	w.UpdateBounds(entity.BoundsRect{Width: 200, Height: 200})
	engine.crashView(native)
	reads := engine.readsFor(native)

	w.UpdateBounds(entity.BoundsRect{Width: 300, Height: 300})
	w.Sync()
	time.Sleep(3 * testWindow)

	assert.Len(t, engine.boundsCalls(), 1)
	assert.Equal(t, reads, engine.readsFor(native))
	assert.Equal(t, entity.NoHandle, w.Handle())
	assert.NoError(t, w.LoadURL(ctx, "https://x.example/"))
	assert.Equal(t, 0, engine.count("load_url"))
}

func TestWebView_DisposeSuppressesPendingRecreate(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	q := &queueDispatcher{}
	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.Dispatcher = q
	})
	require.NoError(t, w.Open(ctx, testHost))

	engine.crashView(engine.lastNative())
	creates := engine.count("create")
	require.Eventually(t, func() bool { return q.pending() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, w.Close())
	q.run()

	require.NoError(t, w.AwaitRecovery(ctx))
	assert.Equal(t, creates, engine.count("create"))
	assert.Equal(t, entity.NoHandle, w.Handle())
}

func TestWebView_RecreateRunsAfterCrashCallbackReturns(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	w, _ := newTestWebView(t, engine, nil)
	require.NoError(t, w.Open(ctx, testHost))

	gate := make(chan struct{})
	engine.holdCreates(gate)
	returned := make(chan struct{})
	go func() {
		engine.crashView(engine.lastNative())
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		close(gate)
		t.Fatal("crash callback blocked on building the replacement view")
	}
	assert.Equal(t, 1, engine.count("create"))
	assert.Equal(t, entity.NoHandle, w.Handle())

	close(gate)
	require.NoError(t, w.AwaitRecovery(ctx))
	assert.Equal(t, 2, engine.count("create"))
	assert.Equal(t, entity.LifecycleAttached, w.Lifecycle())
}

func TestWebView_CloseAbortsEnvironmentWait(t *testing.T) {
	engine := &envEngine{fakeEngine: newFakeEngine(), readyAfter: -1}
	ectx := NewEngineContext(context.Background(), engine, RegistryOptions{
		EnvironmentPollInterval: time.Hour,
		EnvironmentMaxAttempts:  5,
	})
	t.Cleanup(func() { _ = ectx.Close() })
	w := ectx.NewWebView(context.Background(), DefaultOptions())

	errc := make(chan error, 1)
	go func() { errc <- w.Create(context.Background()) }()
	require.Eventually(t, func() bool {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		return engine.checks > 0
	}, time.Second, time.Millisecond)

	require.NoError(t, w.Close())
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, port.ErrInvalidHandle)
	case <-time.After(time.Second):
		t.Fatal("create kept waiting for the environment after close")
	}
	assert.Equal(t, 0, engine.count("create"))
	assert.Equal(t, 0, ectx.Registry().Len())
}

func TestWebView_RecreateBudget(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.MaxRecreates = 1
	})
	require.NoError(t, w.Open(ctx, testHost))

	engine.crashView(engine.lastNative())
	require.NoError(t, w.AwaitRecovery(ctx))
	require.Equal(t, entity.LifecycleAttached, w.Lifecycle())

	engine.crashView(engine.lastNative())
	require.NoError(t, w.AwaitRecovery(ctx))
	assert.Equal(t, entity.NoHandle, w.Handle())
	assert.Equal(t, 1, w.Recreates())
	assert.Equal(t, 2, engine.count("create"))
}

func TestWebView_UnavailableEngine(t *testing.T) {
	engine := newFakeEngine()
	engine.unavailable = true
	var got entity.Availability
	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.Callbacks.OnUnavailable = func(av entity.Availability) { got = av }
	})

	err := w.Open(context.Background(), testHost)
	assert.ErrorIs(t, err, port.ErrEngineUnavailable)
	assert.Equal(t, "https://example.com/runtime", got.DownloadURL)
	assert.Equal(t, 0, engine.count("create"))
}

func TestWebView_EnvironmentPendingThenAttach(t *testing.T) {
	engine := &envEngine{fakeEngine: newFakeEngine(), readyAfter: 2}
	created := 0
	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.Callbacks.OnCreated = func(entity.WebViewHandle) { created++ }
	})

	require.NoError(t, w.Open(context.Background(), testHost))
	assert.Equal(t, entity.LifecycleAttached, w.Lifecycle())
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, engine.started)
}

func TestWebView_ForceDisplay(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	w, _ := newTestWebView(t, engine, nil)

	w.UpdateBounds(entity.BoundsRect{X: 10, Y: 20, Width: 300, Height: 200})
	require.NoError(t, w.Open(ctx, testHost))
	require.Len(t, engine.boundsCalls(), 1, "pending bounds are applied on attach")

	require.NoError(t, w.ForceDisplay(ctx))
	require.NoError(t, w.ForceDisplay(ctx))

	assert.Equal(t, []bool{false, true, false, true}, engine.visibilityCalls())
	assert.Len(t, engine.boundsCalls(), 5)
}

func TestWebView_ScheduledForceDisplayForQuirkyEngines(t *testing.T) {
	engine := quirkEngine{fakeEngine: newFakeEngine()}
	w, _ := newTestWebView(t, engine, nil)
	require.NoError(t, w.Open(context.Background(), testHost))

	require.Eventually(t, func() bool {
		return len(engine.visibilityCalls()) >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestWebView_StateChangedOnPreNavigation(t *testing.T) {
	ctx := context.Background()
	engine := newFakeEngine()
	var states []entity.WebViewState
	var mu sync.Mutex
	w, _ := newTestWebView(t, engine, func(o *Options) {
		o.Callbacks.OnStateChanged = func(st entity.WebViewState) {
			mu.Lock()
			states = append(states, st)
			mu.Unlock()
		}
	})
	require.NoError(t, w.Open(ctx, testHost))
	require.NoError(t, w.LoadURL(ctx, "https://state.example/"))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, states)
	assert.Equal(t, "https://state.example/", states[0].NavigatingURL)
	assert.Empty(t, states[0].CurrentURL)
}
