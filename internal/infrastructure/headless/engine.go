// Package headless provides an in-memory engine that behaves like a native
// webview without a display: a history stack, file-access policy, script
// evaluation on sobek, simulated page loads, redirects and renderer crashes.
package headless

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/logging"
)

const (
	engineName      = "headless"
	defaultVersion  = "1.0.0"
	loadingProgress = 0.1
)

var (
	ErrUnknownView         = errors.New("headless: unknown view")
	ErrFileAccessDenied    = errors.New("headless: file access denied")
	ErrEnvironmentNotReady = errors.New("headless: environment not ready")
	ErrJavaScriptDisabled  = errors.New("headless: javascript disabled")
	ErrNotAttached         = errors.New("headless: view not attached")
	errInvalidAlpha        = errors.New("headless: alpha must be within [0, 1]")
	errReadFailureInjected = errors.New("headless: injected read failure")
)

// Options configures an Engine.
type Options struct {
	// Version is reported by Availability.
	Version string
	// EnvironmentDelay makes the engine require an asynchronous environment
	// that becomes ready this long after InitEnvironment.
	EnvironmentDelay time.Duration
	// FlipY gives the engine a bottom-left origin.
	FlipY bool
	// ContainerHeight is returned for every host when FlipY is set.
	ContainerHeight float64
	// ForceDisplay reports the blank-after-attach quirk.
	ForceDisplay bool
	// LoadLatency delays load completion; zero completes loads immediately.
	LoadLatency time.Duration
	// ScriptTimeout interrupts long-running scripts.
	ScriptTimeout time.Duration
}

// DefaultOptions returns options for an engine without quirks.
func DefaultOptions() Options {
	return Options{
		Version:       defaultVersion,
		ScriptTimeout: 2 * time.Second,
	}
}

type page struct {
	url   string
	title string
}

type view struct {
	cfg       entity.ViewConfig
	host      port.HostSurface
	history   []page
	index     int
	loading   bool
	progress  float64
	loadSeq   uint64
	visible   bool
	bounds    entity.BoundsRect
	alpha     float64
	userAgent string
	cb        port.NavigationCallback
	script    *scriptHost
}

func (v *view) current() *page {
	if len(v.history) == 0 {
		return nil
	}
	return &v.history[v.index]
}

// Engine is the headless engine. It is safe for concurrent use.
type Engine struct {
	opts   Options
	logger zerolog.Logger

	mu          sync.Mutex
	next        port.NativeID
	views       map[port.NativeID]*view
	zorder      []port.NativeID
	crash       port.CrashHandler
	envStart    time.Time
	readFailure error
	calls       map[string]int
}

var (
	_ port.Engine                 = (*Engine)(nil)
	_ port.CrashNotifier          = (*Engine)(nil)
	_ port.EnvironmentInitializer = (*Engine)(nil)
	_ port.ContainerMeasurer      = (*Engine)(nil)
	_ port.Detacher               = (*Engine)(nil)
	_ port.RenderQuirks           = (*Engine)(nil)
	_ port.Presentation           = (*Engine)(nil)
)

// New creates a headless engine logging through the context logger.
func New(ctx context.Context, opts Options) *Engine {
	if opts.Version == "" {
		opts.Version = defaultVersion
	}
	return &Engine{
		opts:   opts,
		logger: logging.FromContext(ctx).With().Str("component", "headless-engine").Logger(),
		views:  make(map[port.NativeID]*view),
		calls:  make(map[string]int),
	}
}

// Name implements port.Engine.
func (e *Engine) Name() string { return engineName }

// Availability implements port.Engine. The headless engine is always available.
func (e *Engine) Availability(context.Context) entity.Availability {
	return entity.Availability{
		Available: true,
		Engine:    engineName,
		Platform:  runtime.GOOS,
		Version:   e.opts.Version,
	}
}

// InitEnvironment implements port.EnvironmentInitializer.
func (e *Engine) InitEnvironment(context.Context) (bool, error) {
	if e.opts.EnvironmentDelay <= 0 {
		return false, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.envStart.IsZero() {
		e.envStart = time.Now()
		e.logger.Debug().Dur("delay", e.opts.EnvironmentDelay).Msg("environment bring-up started")
	}
	return true, nil
}

// EnvironmentReady implements port.EnvironmentInitializer.
func (e *Engine) EnvironmentReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.environmentReadyLocked()
}

func (e *Engine) environmentReadyLocked() bool {
	if e.opts.EnvironmentDelay <= 0 {
		return true
	}
	return !e.envStart.IsZero() && time.Since(e.envStart) >= e.opts.EnvironmentDelay
}

// SetCrashHandler implements port.CrashNotifier.
func (e *Engine) SetCrashHandler(fn port.CrashHandler) {
	e.mu.Lock()
	e.crash = fn
	e.mu.Unlock()
}

// FlipsY implements port.ContainerMeasurer.
func (e *Engine) FlipsY() bool { return e.opts.FlipY }

// ContainerHeight implements port.ContainerMeasurer.
func (e *Engine) ContainerHeight(host port.HostSurface) (float64, error) {
	if host == nil {
		return 0, ErrNotAttached
	}
	return e.opts.ContainerHeight, nil
}

// NeedsForceDisplay implements port.RenderQuirks.
func (e *Engine) NeedsForceDisplay() bool { return e.opts.ForceDisplay }

func (e *Engine) record(op string) { e.calls[op]++ }

// CallCount returns how many times op was called.
func (e *Engine) CallCount(op string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[op]
}

// Views returns the number of live native views.
func (e *Engine) Views() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.views)
}

func (e *Engine) lookup(id port.NativeID) (*view, error) {
	v, ok := e.views[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownView, id)
	}
	return v, nil
}

// Create implements port.Engine.
func (e *Engine) Create(_ context.Context, cfg entity.ViewConfig) (port.NativeID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("create")

	if !e.environmentReadyLocked() {
		return 0, ErrEnvironmentNotReady
	}
	e.next++
	e.views[e.next] = &view{cfg: cfg, alpha: 1, visible: true, userAgent: cfg.UserAgent}
	e.zorder = append(e.zorder, e.next)
	e.logger.Debug().Int64("native_id", int64(e.next)).Bool("js", cfg.JavaScriptEnabled).Msg("view created")
	return e.next, nil
}

// Attach implements port.Engine.
func (e *Engine) Attach(id port.NativeID, host port.HostSurface) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("attach")
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	v.host = host
	return nil
}

// Detach implements port.Detacher.
func (e *Engine) Detach(id port.NativeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("detach")
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	v.host = nil
	return nil
}

// Destroy implements port.Engine.
func (e *Engine) Destroy(id port.NativeID) error {
	e.mu.Lock()
	e.record("destroy")
	v, err := e.lookup(id)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.removeLocked(id)
	e.mu.Unlock()

	v.script.close()
	return nil
}

func (e *Engine) removeLocked(id port.NativeID) {
	delete(e.views, id)
	for i, z := range e.zorder {
		if z == id {
			e.zorder = append(e.zorder[:i], e.zorder[i+1:]...)
			break
		}
	}
}

// SetBounds implements port.Engine.
func (e *Engine) SetBounds(id port.NativeID, rect entity.BoundsRect) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("set_bounds")
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	v.bounds = rect
	return nil
}

// Bounds returns the last rect applied to id.
func (e *Engine) Bounds(id port.NativeID) (entity.BoundsRect, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, err := e.lookup(id)
	if err != nil {
		return entity.BoundsRect{}, err
	}
	return v.bounds, nil
}

// SetVisible implements port.Engine.
func (e *Engine) SetVisible(id port.NativeID, visible bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("set_visible")
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	v.visible = visible
	return nil
}

// SetNavigationCallback implements port.Engine.
func (e *Engine) SetNavigationCallback(id port.NativeID, cb port.NavigationCallback) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("set_navigation_callback")
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	v.cb = cb
	return nil
}

// SetReadFailure makes every state read fail with err until cleared with nil.
func (e *Engine) SetReadFailure(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil && !errors.Is(err, errReadFailureInjected) {
		err = fmt.Errorf("%w: %w", errReadFailureInjected, err)
	}
	e.readFailure = err
}

// Crash simulates renderer process death. The view is gone before the crash
// handler runs.
func (e *Engine) Crash(id port.NativeID, reason entity.CrashReason) error {
	e.mu.Lock()
	v, err := e.lookup(id)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.removeLocked(id)
	handler := e.crash
	e.mu.Unlock()

	v.script.close()
	e.logger.Warn().Int64("native_id", int64(id)).Str("reason", string(reason)).Msg("renderer crashed")
	if handler != nil {
		handler(id, reason)
	}
	return nil
}

func isFileURL(url string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(url)), "file:")
}
