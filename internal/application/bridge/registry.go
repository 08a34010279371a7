// Package bridge keeps native views and the uniform application model in sync.
//
// The Registry is the leaf: it owns every live native view of one engine and
// hands out short leases on them. The navigation interceptor, the poller and the
// bounds debouncer only ever touch a view through such a lease, and the crash
// supervisor can retire a view underneath them at any time.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/logging"
)

const (
	defaultEnvironmentPollInterval = 50 * time.Millisecond
	defaultEnvironmentMaxAttempts  = 100
)

// RegistryOptions tunes how the registry waits for an engine environment.
type RegistryOptions struct {
	EnvironmentPollInterval time.Duration
	EnvironmentMaxAttempts  int
}

// DefaultRegistryOptions returns a 50 ms x 100 environment wait.
func DefaultRegistryOptions() RegistryOptions {
	return RegistryOptions{
		EnvironmentPollInterval: defaultEnvironmentPollInterval,
		EnvironmentMaxAttempts:  defaultEnvironmentMaxAttempts,
	}
}

// CreateOptions binds per-view collaborators to a new handle.
type CreateOptions struct {
	// Trampoline is installed as the navigation callback when the view attaches
	// and released after the native view is gone.
	Trampoline *Trampoline
	// OnCrash replaces the default invalidation when the renderer dies.
	OnCrash func(h entity.WebViewHandle, reason entity.CrashReason)
}

type viewEntry struct {
	handle     entity.WebViewHandle
	native     port.NativeID
	state      entity.LifecycleState
	host       port.HostSurface
	trampoline *Trampoline
	onCrash    func(entity.WebViewHandle, entity.CrashReason)

	attaching bool
	dead      bool
	leases    int
	finalize  func()
}

// Registry maps handles to live native views and enforces lifecycle ordering.
type Registry struct {
	engine port.Engine
	opts   RegistryOptions
	logger zerolog.Logger

	counter atomic.Uint64

	mu       sync.Mutex
	views    map[entity.WebViewHandle]*viewEntry
	byNative map[port.NativeID]entity.WebViewHandle
}

// NewRegistry creates a registry for engine and subscribes to its crash events.
func NewRegistry(ctx context.Context, engine port.Engine, opts RegistryOptions) *Registry {
	if opts.EnvironmentPollInterval <= 0 {
		opts.EnvironmentPollInterval = defaultEnvironmentPollInterval
	}
	if opts.EnvironmentMaxAttempts <= 0 {
		opts.EnvironmentMaxAttempts = defaultEnvironmentMaxAttempts
	}

	r := &Registry{
		engine:   engine,
		opts:     opts,
		logger:   logging.FromContext(ctx).With().Str("component", "registry").Str("engine", engine.Name()).Logger(),
		views:    make(map[entity.WebViewHandle]*viewEntry),
		byNative: make(map[port.NativeID]entity.WebViewHandle),
	}
	if notifier, ok := engine.(port.CrashNotifier); ok {
		notifier.SetCrashHandler(r.handleCrash)
	}
	return r
}

// Create allocates a native view. For engines with an asynchronous environment
// the handle sits in EnvironmentPending until the environment reports ready.
func (r *Registry) Create(ctx context.Context, cfg entity.ViewConfig, opts CreateOptions) (entity.WebViewHandle, error) {
	h := entity.WebViewHandle(r.counter.Add(1))
	e := &viewEntry{
		handle:     h,
		state:      entity.LifecycleUninitialized,
		trampoline: opts.Trampoline,
		onCrash:    opts.OnCrash,
	}

	r.mu.Lock()
	r.views[h] = e
	r.mu.Unlock()

	if err := r.awaitEnvironment(ctx, e); err != nil {
		r.forget(e)
		return entity.NoHandle, err
	}

	native, err := r.engine.Create(ctx, cfg)
	if err == nil && native == 0 {
		err = errors.New("engine returned a zero view id")
	}
	if err != nil {
		r.forget(e)
		if errors.Is(err, port.ErrEngineUnavailable) || port.IsFatal(err) {
			return entity.NoHandle, err
		}
		return entity.NoHandle, port.NewNativeCallError("create", h, err)
	}

	r.mu.Lock()
	if e.dead {
		r.mu.Unlock()
		r.logger.Debug().Stringer("handle", h).Msg("handle destroyed during creation, releasing native view")
		if derr := r.engine.Destroy(native); derr != nil {
			r.logger.Warn().Err(derr).Stringer("handle", h).Msg("destroy after aborted create failed")
		}
		return entity.NoHandle, port.ErrInvalidHandle
	}
	e.native = native
	e.state = entity.LifecycleCreated
	r.byNative[native] = h
	r.mu.Unlock()

	r.logger.Debug().Stringer("handle", h).Int64("native_id", int64(native)).Msg("view created")
	return h, nil
}

func (r *Registry) awaitEnvironment(ctx context.Context, e *viewEntry) error {
	initializer, ok := r.engine.(port.EnvironmentInitializer)
	if !ok {
		return nil
	}

	pending, err := initializer.InitEnvironment(ctx)
	if err != nil {
		return &port.EnvironmentError{Err: err}
	}
	if !pending {
		return nil
	}

	r.mu.Lock()
	e.state = entity.LifecycleEnvironmentPending
	r.mu.Unlock()

	for attempt := 1; attempt <= r.opts.EnvironmentMaxAttempts; attempt++ {
		if initializer.EnvironmentReady() {
			r.logger.Debug().Int("attempts", attempt).Msg("engine environment ready")
			return nil
		}

		timer := time.NewTimer(r.opts.EnvironmentPollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		r.mu.Lock()
		dead := e.dead
		r.mu.Unlock()
		if dead {
			return port.ErrInvalidHandle
		}
	}

	if initializer.EnvironmentReady() {
		return nil
	}
	r.logger.Error().Int("attempts", r.opts.EnvironmentMaxAttempts).Msg("engine environment never became ready")
	return &port.EnvironmentError{Attempts: r.opts.EnvironmentMaxAttempts}
}

// Attach binds a created view to host. Attaching an attached view is a no-op.
// The navigation trampoline is installed before the view can navigate.
func (r *Registry) Attach(h entity.WebViewHandle, host port.HostSurface) error {
	if host == nil {
		return fmt.Errorf("attach %s: nil host surface", h)
	}

	r.mu.Lock()
	e, ok := r.views[h]
	if !ok || e.dead {
		r.mu.Unlock()
		return port.ErrInvalidHandle
	}
	if e.state == entity.LifecycleAttached || e.attaching {
		r.mu.Unlock()
		return nil
	}
	if e.state != entity.LifecycleCreated {
		r.mu.Unlock()
		return port.ErrInvalidHandle
	}
	e.attaching = true
	e.leases++
	native := e.native
	installTrampoline := e.trampoline != nil
	r.mu.Unlock()

	var err error
	if installTrampoline {
		if cerr := r.engine.SetNavigationCallback(native, r.dispatchNavigation); cerr != nil {
			err = fmt.Errorf("install navigation callback: %w", cerr)
		}
	}
	if err == nil {
		err = r.engine.Attach(native, host)
	}

	r.mu.Lock()
	e.attaching = false
	dead := e.dead
	if err == nil && !dead {
		e.state = entity.LifecycleAttached
		e.host = host
	}
	fin := r.releaseLocked(e)
	r.mu.Unlock()
	if fin != nil {
		fin()
	}

	switch {
	case err != nil:
		return port.NewNativeCallError("attach", h, err)
	case dead:
		return port.ErrInvalidHandle
	}
	r.logger.Debug().Stringer("handle", h).Msg("view attached")
	return nil
}

// Destroy releases the native view behind h. It reports whether this call did
// the work; later calls and calls with stale handles return false.
func (r *Registry) Destroy(h entity.WebViewHandle) bool {
	return r.retire(h, true)
}

// Invalidate retires h after its renderer died. The native view is detached
// but not destroyed. It reports true exactly once per handle.
func (r *Registry) Invalidate(h entity.WebViewHandle) bool {
	return r.retire(h, false)
}

func (r *Registry) retire(h entity.WebViewHandle, destroyNative bool) bool {
	r.mu.Lock()
	e, ok := r.views[h]
	if !ok || e.dead {
		r.mu.Unlock()
		return false
	}
	prev := e.state
	e.dead = true
	e.state = entity.LifecycleDestroyed
	delete(r.views, h)
	if e.native != 0 {
		delete(r.byNative, e.native)
	}
	native := e.native

	fin := func() {
		if native != 0 {
			if destroyNative {
				if err := r.engine.Destroy(native); err != nil {
					r.logger.Warn().Err(err).Stringer("handle", h).Msg("native destroy failed")
				}
			} else if detacher, ok := r.engine.(port.Detacher); ok && prev == entity.LifecycleAttached {
				switch err := detacher.Detach(native); {
				case err == nil, errors.Is(err, port.ErrUnsupported):
				case errors.Is(err, port.ErrInvalidHandle):
					r.logger.Debug().Stringer("handle", h).Msg("engine already released the dead view")
				default:
					r.logger.Warn().Err(err).Stringer("handle", h).Msg("detach of dead view failed")
				}
			}
		}
		// The trampoline goes only after the native side can no longer call it.
		r.mu.Lock()
		e.trampoline = nil
		e.host = nil
		r.mu.Unlock()
		r.logger.Debug().Stringer("handle", h).Bool("native_destroy", destroyNative).Msg("view retired")
	}

	if e.leases > 0 {
		e.finalize = fin
		r.mu.Unlock()
		return true
	}
	r.mu.Unlock()
	fin()
	return true
}

// DestroyAll destroys every live view and returns how many were destroyed.
func (r *Registry) DestroyAll() int {
	r.mu.Lock()
	handles := make([]entity.WebViewHandle, 0, len(r.views))
	for h := range r.views {
		handles = append(handles, h)
	}
	r.mu.Unlock()

	n := 0
	for _, h := range handles {
		if r.Destroy(h) {
			n++
		}
	}
	return n
}

// State returns the lifecycle state of h. Handles that were issued and are no
// longer registered report Destroyed.
func (r *Registry) State(h entity.WebViewHandle) entity.LifecycleState {
	if !h.Valid() {
		return entity.LifecycleUninitialized
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.views[h]; ok {
		return e.state
	}
	if uint64(h) <= r.counter.Load() {
		return entity.LifecycleDestroyed
	}
	return entity.LifecycleUninitialized
}

// Live reports whether h is created or attached.
func (r *Registry) Live(h entity.WebViewHandle) bool {
	s := r.State(h)
	return s == entity.LifecycleCreated || s == entity.LifecycleAttached
}

// Host returns the surface h is attached to.
func (r *Registry) Host(h entity.WebViewHandle) (port.HostSurface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.views[h]
	if !ok || e.host == nil {
		return nil, false
	}
	return e.host, true
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// lease pins the native view of h while a native call is in flight. A destroy
// that races with the call is finalized by the last release.
func (r *Registry) lease(h entity.WebViewHandle, atLeast entity.LifecycleState) (port.NativeID, func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.views[h]
	if !ok || e.dead || e.state < atLeast || e.state == entity.LifecycleDestroyed || e.native == 0 {
		return 0, func() {}, false
	}
	e.leases++

	var once sync.Once
	release := func() {
		once.Do(func() {
			r.mu.Lock()
			fin := r.releaseLocked(e)
			r.mu.Unlock()
			if fin != nil {
				fin()
			}
		})
	}
	return e.native, release, true
}

func (r *Registry) releaseLocked(e *viewEntry) func() {
	e.leases--
	if e.leases > 0 || !e.dead || e.finalize == nil {
		return nil
	}
	fin := e.finalize
	e.finalize = nil
	return fin
}

func (r *Registry) forget(e *viewEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.dead = true
	e.state = entity.LifecycleDestroyed
	delete(r.views, e.handle)
}

// dispatchNavigation is the single navigation callback handed to the engine.
// It runs on the engine thread and must answer without blocking.
func (r *Registry) dispatchNavigation(native port.NativeID, url string) bool {
	r.mu.Lock()
	h, ok := r.byNative[native]
	var tr *Trampoline
	if ok {
		if e := r.views[h]; e != nil && !e.dead {
			tr = e.trampoline
		}
	}
	r.mu.Unlock()

	if tr == nil {
		return true
	}
	return bool(tr.Decide(entity.NavigationRequest{TargetURL: url, Handle: h}))
}

func (r *Registry) handleCrash(native port.NativeID, reason entity.CrashReason) {
	r.mu.Lock()
	h, ok := r.byNative[native]
	var onCrash func(entity.WebViewHandle, entity.CrashReason)
	if ok {
		if e := r.views[h]; e != nil {
			onCrash = e.onCrash
		}
	}
	r.mu.Unlock()

	if !ok {
		r.logger.Debug().Int64("native_id", int64(native)).Msg("crash for unknown view ignored")
		return
	}

	r.logger.Warn().Stringer("handle", h).Str("reason", string(reason)).Msg("renderer process gone")
	if onCrash != nil {
		onCrash(h, reason)
		return
	}
	r.Invalidate(h)
}
