package bridge

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/logging"
)

// WebView is the uniform, engine-independent view controller used by the host UI.
// Commands on a view without a live handle are silent no-ops.
type WebView struct {
	ectx       *EngineContext
	engine     port.Engine
	registry   *Registry
	opts       Options
	dispatcher port.Dispatcher
	logger     zerolog.Logger

	store       *stateStore
	interceptor *Interceptor
	bounds      *boundsDebouncer
	supervisor  *supervisor
	journal     *journalRecorder

	mu          sync.Mutex
	handle      entity.WebViewHandle
	host        port.HostSurface
	poller      *poller
	baseCtx     context.Context
	cancel      context.CancelFunc
	initialDone bool

	disposed atomic.Bool
}

// NewWebView creates a controller bound to this engine context. No native
// resources are allocated until Create or Open.
func (c *EngineContext) NewWebView(ctx context.Context, opts Options) *WebView {
	if opts.Dispatcher == nil {
		opts.Dispatcher = port.InlineDispatcher
	}
	opts.Timing = opts.Timing.normalized()
	if opts.ViewID == "" {
		opts.ViewID = fmt.Sprintf("view-%d", time.Now().UnixNano())
	}

	logger := logging.FromContext(ctx).With().
		Str("component", "webview").
		Str("view_id", opts.ViewID).
		Logger()

	w := &WebView{
		ectx:       c,
		engine:     c.engine,
		registry:   c.registry,
		opts:       opts,
		dispatcher: opts.Dispatcher,
		logger:     logger,
		store:      newStateStore(),
	}
	w.interceptor = newInterceptor(logger, w.beforeNavigation, w.navigationRejected)
	w.bounds = newBoundsDebouncer(c.registry, c.engine, opts.Timing.BoundsWindow,
		logger.With().Str("component", "bounds").Logger())
	w.supervisor = &supervisor{
		registry:      c.registry,
		dispatcher:    opts.Dispatcher,
		autoRecreate:  opts.AutoRecreate,
		maxRecreates:  opts.MaxRecreates,
		logger:        logger.With().Str("component", "supervisor").Logger(),
		onInvalidated: w.invalidated,
		onRecreate:    w.recreate,
		lastURL:       func() string { return w.store.Snapshot().DisplayURL() },
	}
	w.journal = newJournalRecorder(opts.Journal, opts.SessionID, opts.ViewID, logger)
	return w
}

// Open creates the native view and attaches it to host.
func (w *WebView) Open(ctx context.Context, host port.HostSurface) error {
	if err := w.Create(ctx); err != nil {
		return err
	}
	return w.Attach(ctx, host)
}

// Create allocates the native view. It is a no-op when a handle already exists.
func (w *WebView) Create(ctx context.Context) error {
	w.mu.Lock()
	if w.handle.Valid() {
		w.mu.Unlock()
		return nil
	}
	if w.disposed.Load() {
		w.mu.Unlock()
		return port.ErrInvalidHandle
	}
	if w.baseCtx == nil {
		w.baseCtx, w.cancel = context.WithCancel(context.WithoutCancel(ctx))
		w.journal.start(context.WithoutCancel(ctx))
	}
	baseCtx := w.baseCtx
	w.mu.Unlock()

	// Close cancels baseCtx and must cut an environment wait short.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(baseCtx, cancel)
	defer stop()

	av := w.ectx.Availability(ctx)
	if !av.Available {
		if cb := w.opts.Callbacks.OnUnavailable; cb != nil {
			w.dispatcher.Dispatch(func() { cb(av) })
		}
		return fmt.Errorf("%w: %s", port.ErrEngineUnavailable, av.ErrorMessage)
	}

	h, err := w.registry.Create(ctx, w.opts.View, w.createOptions())
	if err != nil {
		if w.disposed.Load() {
			w.logger.Debug().Err(err).Msg("create abandoned, view closed")
			return port.ErrInvalidHandle
		}
		w.logger.Error().Err(err).Msg("create native view failed")
		return err
	}

	w.mu.Lock()
	if w.disposed.Load() {
		w.mu.Unlock()
		w.registry.Destroy(h)
		return port.ErrInvalidHandle
	}
	w.handle = h
	w.mu.Unlock()

	w.logger.Debug().Stringer("handle", h).Msg("webview created")
	if cb := w.opts.Callbacks.OnCreated; cb != nil {
		cb(h)
	}
	return nil
}

func (w *WebView) createOptions() CreateOptions {
	return CreateOptions{
		Trampoline: w.interceptor.Trampoline(),
		OnCrash:    w.supervisor.handleCrash,
	}
}

// Attach binds the view to host, then starts polling and applies pending
// bounds and the initial URL. Attaching twice is a no-op.
func (w *WebView) Attach(ctx context.Context, host port.HostSurface) error {
	h := w.Handle()
	if !h.Valid() {
		return port.ErrInvalidHandle
	}
	if w.registry.State(h) == entity.LifecycleAttached {
		return nil
	}

	if err := w.registry.Attach(h, host); err != nil {
		if !port.IsFatal(err) {
			w.journal.record(h, entity.JournalNativeFailure, "", err.Error())
		}
		return err
	}

	w.mu.Lock()
	w.host = host
	loadInitial := !w.initialDone && w.opts.InitialURL != ""
	w.initialDone = true
	baseCtx := w.baseCtx
	w.mu.Unlock()

	w.bounds.rebind(h, host)
	w.bounds.refreshContainerHeight()
	w.bounds.reapply()
	w.startPoller(baseCtx, h)

	if quirks, ok := w.engine.(port.RenderQuirks); ok && quirks.NeedsForceDisplay() {
		w.scheduleForceDisplay(baseCtx, h)
	}
	if loadInitial {
		if err := w.LoadURL(ctx, w.opts.InitialURL); err != nil {
			w.logger.Warn().Err(err).Str("url", w.opts.InitialURL).Msg("initial load failed")
		}
	}
	return nil
}

func (w *WebView) startPoller(ctx context.Context, h entity.WebViewHandle) {
	cb := w.opts.Callbacks
	p := &poller{
		registry:          w.registry,
		engine:            w.engine,
		handle:            h,
		store:             w.store,
		dispatcher:        w.dispatcher,
		logger:            w.logger.With().Str("component", "poller").Stringer("handle", h).Logger(),
		interval:          w.opts.Timing.PollInterval,
		degradedThreshold: w.opts.Timing.DegradedThreshold,
		refreshEvery:      w.opts.Timing.ContainerRefreshEvery,
		refresh:           w.bounds.refreshContainerHeight,
		onStateChanged:    cb.OnStateChanged,
		onDegraded:        cb.OnDegraded,
		onURLChanged: func(url string) {
			w.journal.record(h, entity.JournalURLCommitted, url, "")
			if cb.OnURLChanged != nil {
				cb.OnURLChanged(url)
			}
		},
	}

	w.mu.Lock()
	old := w.poller
	w.poller = p
	w.mu.Unlock()

	if old != nil {
		old.stop()
	}
	p.start(ctx)
}

func (w *WebView) scheduleForceDisplay(ctx context.Context, h entity.WebViewHandle) {
	go func() {
		start := time.Now()
		for _, at := range forceDisplaySchedule {
			timer := time.NewTimer(time.Until(start.Add(at)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			if w.Handle() != h {
				return
			}
			w.dispatcher.Dispatch(func() {
				if err := w.ForceDisplay(ctx); err != nil {
					w.logger.Debug().Err(err).Msg("scheduled force display failed")
				}
			})
		}
	}()
}

// Close disposes the view. It is safe to call any number of times; only the
// first call destroys the native view.
func (w *WebView) Close() error {
	if w.disposed.Swap(true) {
		return nil
	}
	w.supervisor.suppress()

	w.mu.Lock()
	p := w.poller
	w.poller = nil
	h := w.handle
	w.handle = entity.NoHandle
	cancel := w.cancel
	w.mu.Unlock()

	if p != nil {
		p.stop()
	}
	w.bounds.close()
	if cancel != nil {
		cancel()
	}

	destroyed := w.registry.Destroy(h)
	w.journal.close()

	w.logger.Debug().Stringer("handle", h).Bool("destroyed", destroyed).Msg("webview disposed")
	if cb := w.opts.Callbacks.OnDisposed; cb != nil {
		cb()
	}
	return nil
}

// invalidated runs on the engine thread after the supervisor retired h.
func (w *WebView) invalidated(h entity.WebViewHandle, reason entity.CrashReason) {
	w.mu.Lock()
	if w.handle != h {
		w.mu.Unlock()
		return
	}
	w.handle = entity.NoHandle
	p := w.poller
	w.poller = nil
	w.mu.Unlock()

	if p != nil {
		p.stop()
	}
	w.bounds.cancel()
	w.store.resetHistory()
	w.journal.record(h, entity.JournalCrashed, w.store.Snapshot().DisplayURL(), string(reason))
}

// recreate builds a replacement for a crashed view on the dispatcher.
func (w *WebView) recreate(req RecreateRequest) {
	if w.disposed.Load() {
		return
	}

	w.mu.Lock()
	if w.handle.Valid() {
		w.mu.Unlock()
		return
	}
	host := w.host
	ctx := w.baseCtx
	w.mu.Unlock()

	if err := w.Create(ctx); err != nil {
		w.logger.Error().Err(err).Int("attempt", req.Attempt).Msg("recreate failed")
		return
	}
	if host != nil {
		if err := w.Attach(ctx, host); err != nil {
			w.logger.Error().Err(err).Int("attempt", req.Attempt).Msg("reattach after recreate failed")
			return
		}
	}
	if req.LastURL != "" {
		if err := w.LoadURL(ctx, req.LastURL); err != nil {
			w.logger.Warn().Err(err).Str("url", req.LastURL).Msg("replay of last url failed")
		}
	}

	h := w.Handle()
	w.journal.record(h, entity.JournalRecreated, req.LastURL, fmt.Sprintf("previous=%s attempt=%d", req.Previous, req.Attempt))
	w.logger.Info().Stringer("previous", req.Previous).Stringer("handle", h).Msg("webview recreated")
	if cb := w.opts.Callbacks.OnRecreated; cb != nil {
		cb(req.Previous, h)
	}
}

// beforeNavigation is the pre-navigation hook, called on the engine thread.
func (w *WebView) beforeNavigation(req entity.NavigationRequest) {
	next, changed := w.store.beginNavigation(req.TargetURL)
	if changed {
		if cb := w.opts.Callbacks.OnStateChanged; cb != nil {
			w.dispatcher.Dispatch(func() { cb(next) })
		}
	}
}

func (w *WebView) navigationRejected(req entity.NavigationRequest) {
	w.journal.record(req.Handle, entity.JournalNavigationRejected, req.TargetURL, "")
}

// command runs call against the live native view, turning engine errors into
// NativeCallErrors. Without a live handle it does nothing.
func (w *WebView) command(op, subject string, atLeast entity.LifecycleState, call func(port.NativeID) error) error {
	h := w.Handle()
	native, release, ok := w.registry.lease(h, atLeast)
	if !ok {
		w.logger.Trace().Str("op", op).Stringer("handle", h).Msg("command ignored, no live view")
		return nil
	}
	defer release()

	if err := call(native); err != nil {
		err = port.NewNativeCallError(op, h, err)
		w.logger.Warn().Err(err).Str("op", op).Msg("native call failed")
		w.journal.record(h, entity.JournalNativeFailure, subject, err.Error())
		return err
	}
	return nil
}

// SetNavigationInterceptor sets the navigation policy. It may be called before
// the view exists; the policy is in force from the first navigation.
func (w *WebView) SetNavigationInterceptor(fn InterceptorFunc) {
	w.interceptor.Set(fn)
}

// LoadURL navigates to url.
func (w *WebView) LoadURL(_ context.Context, url string) error {
	return w.command("load_url", url, entity.LifecycleCreated, func(id port.NativeID) error {
		return w.engine.LoadURL(id, url)
	})
}

// LoadHTML renders html with an optional base URL.
func (w *WebView) LoadHTML(_ context.Context, html, baseURL string) error {
	return w.command("load_html", baseURL, entity.LifecycleCreated, func(id port.NativeID) error {
		return w.engine.LoadHTML(id, html, baseURL)
	})
}

// GoBack navigates back in history.
func (w *WebView) GoBack(_ context.Context) error {
	return w.command("go_back", "", entity.LifecycleCreated, w.engine.GoBack)
}

// GoForward navigates forward in history.
func (w *WebView) GoForward(_ context.Context) error {
	return w.command("go_forward", "", entity.LifecycleCreated, w.engine.GoForward)
}

// Reload reloads the current page.
func (w *WebView) Reload(_ context.Context) error {
	return w.command("reload", "", entity.LifecycleCreated, w.engine.Reload)
}

// StopLoading stops the current load.
func (w *WebView) StopLoading(_ context.Context) error {
	return w.command("stop_loading", "", entity.LifecycleCreated, w.engine.StopLoading)
}

// EvaluateJavaScript runs script in the page, fire and forget.
func (w *WebView) EvaluateJavaScript(_ context.Context, script string) error {
	return w.command("evaluate_script", "", entity.LifecycleCreated, func(id port.NativeID) error {
		return w.engine.EvaluateScript(id, script)
	})
}

// SetVisible shows or hides the native view.
func (w *WebView) SetVisible(_ context.Context, visible bool) error {
	return w.command("set_visible", "", entity.LifecycleAttached, func(id port.NativeID) error {
		return w.engine.SetVisible(id, visible)
	})
}

// UpdateBounds reports a new placement from host layout. Updates are coalesced.
func (w *WebView) UpdateBounds(rect entity.BoundsRect) {
	w.bounds.submit(rect)
}

// ForceDisplay re-applies bounds and toggles visibility to recover a blank surface.
func (w *WebView) ForceDisplay(ctx context.Context) error {
	rect, hasRect := w.bounds.last()
	return w.command("force_display", "", entity.LifecycleAttached, func(id port.NativeID) error {
		apply := func() error {
			if !hasRect || rect.Empty() {
				return nil
			}
			return w.engine.SetBounds(id, w.bounds.prepare(rect))
		}
		if err := apply(); err != nil {
			return err
		}
		if err := w.engine.SetVisible(id, false); err != nil {
			return err
		}

		timer := time.NewTimer(w.opts.Timing.ForceDisplaySettle)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}

		if err := w.engine.SetVisible(id, true); err != nil {
			return err
		}
		return apply()
	})
}

func (w *WebView) presentation(op string, call func(port.Presentation, port.NativeID) error) error {
	p, ok := w.engine.(port.Presentation)
	if !ok {
		return nil
	}
	return w.command(op, "", entity.LifecycleCreated, func(id port.NativeID) error {
		return call(p, id)
	})
}

// SetUserAgent overrides the user agent where the engine supports it.
func (w *WebView) SetUserAgent(_ context.Context, userAgent string) error {
	return w.presentation("set_user_agent", func(p port.Presentation, id port.NativeID) error {
		return p.SetUserAgent(id, userAgent)
	})
}

// SetAlpha sets view opacity where the engine supports it.
func (w *WebView) SetAlpha(_ context.Context, alpha float64) error {
	return w.presentation("set_alpha", func(p port.Presentation, id port.NativeID) error {
		return p.SetAlpha(id, alpha)
	})
}

// BringToFront raises the view above sibling views where supported.
func (w *WebView) BringToFront(_ context.Context) error {
	return w.presentation("bring_to_front", func(p port.Presentation, id port.NativeID) error {
		return p.BringToFront(id)
	})
}

// SendToBack lowers the view below sibling views where supported.
func (w *WebView) SendToBack(_ context.Context) error {
	return w.presentation("send_to_back", func(p port.Presentation, id port.NativeID) error {
		return p.SendToBack(id)
	})
}

// Handle returns the live handle, or NoHandle.
func (w *WebView) Handle() entity.WebViewHandle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.handle
}

// Lifecycle returns the lifecycle state of the current handle.
func (w *WebView) Lifecycle() entity.LifecycleState {
	if w.disposed.Load() {
		return entity.LifecycleDestroyed
	}
	return w.registry.State(w.Handle())
}

// State returns the last published state snapshot.
func (w *WebView) State() entity.WebViewState { return w.store.Snapshot() }

// CurrentURL returns the last committed URL.
func (w *WebView) CurrentURL() string { return w.store.Snapshot().CurrentURL }

// NavigatingURL returns the target of the latest navigation request, which
// may have been rejected.
func (w *WebView) NavigatingURL() string { return w.store.Snapshot().NavigatingURL }

// IsLoading reports whether a page load is in progress.
func (w *WebView) IsLoading() bool { return w.store.Snapshot().IsLoading }

// CanGoBack reports whether back navigation is possible.
func (w *WebView) CanGoBack() bool { return w.store.Snapshot().CanGoBack }

// CanGoForward reports whether forward navigation is possible.
func (w *WebView) CanGoForward() bool { return w.store.Snapshot().CanGoForward }

// PageTitle returns the document title.
func (w *WebView) PageTitle() string { return w.store.Snapshot().PageTitle }

// LoadingProgress returns load progress in [0, 1].
func (w *WebView) LoadingProgress() float64 { return w.store.Snapshot().LoadingProgress }

// Recreates returns how many crash recoveries were started.
func (w *WebView) Recreates() int { return w.supervisor.recreates() }

// AwaitRecovery waits until every recreate requested so far has finished or
// been dropped. Calling it on the dispatcher's thread deadlocks when the
// dispatcher queues work.
func (w *WebView) AwaitRecovery(ctx context.Context) error { return w.supervisor.wait(ctx) }

// Sync runs one poll tick immediately, outside the regular schedule.
func (w *WebView) Sync() {
	w.mu.Lock()
	p := w.poller
	w.mu.Unlock()
	if p != nil {
		p.tick()
	}
}
