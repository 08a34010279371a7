package native

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/logging"
)

const engineName = "native"

// Engine is a port.Engine over the native function table. The table has no
// error channel, so the engine tracks live ids itself and turns refusals into
// errors.
type Engine struct {
	t      *table
	lib    *library
	logger zerolog.Logger
	tramps *trampolineTable

	versionOnce sync.Once
	version     string

	mu   sync.Mutex
	live map[int64]struct{}
	// dead holds crashed ids still parented to a host; only Detach and
	// Destroy accept them.
	dead  map[int64]struct{}
	crash port.CrashHandler
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

// Open loads the native library and returns an engine over it. A missing or
// incomplete library yields a *port.LibraryError.
func Open(ctx context.Context, cfg LoaderConfig) (*Engine, error) {
	lib, err := loadLibrary(cfg)
	if err != nil {
		return nil, err
	}
	e := newEngine(ctx, &lib.table, trampolines)
	e.lib = lib
	e.logger.Info().Str("path", lib.path).Str("version", e.Version()).Msg("native library loaded")
	return e, nil
}

func newEngine(ctx context.Context, t *table, tramps *trampolineTable) *Engine {
	e := &Engine{
		t:      t,
		tramps: tramps,
		logger: logging.FromContext(ctx).With().Str("component", "native-engine").Logger(),
		live:   make(map[int64]struct{}),
		dead:   make(map[int64]struct{}),
	}
	if t.setCrashCallback != nil {
		_, crash := tramps.pointers()
		t.setCrashCallback(crash)
	}
	return e
}

// Probe reports whether the native library can be loaded, without keeping it.
func Probe(ctx context.Context, cfg LoaderConfig) entity.Availability {
	e, err := Open(ctx, cfg)
	if err != nil {
		return unavailable(err, cfg.DownloadURL)
	}
	defer func() { _ = e.Close() }()
	return e.Availability(ctx)
}

func unavailable(err error, downloadURL string) entity.Availability {
	return entity.Availability{
		Engine:       engineName,
		Platform:     runtime.GOOS,
		ErrorMessage: err.Error(),
		DownloadURL:  downloadURL,
	}
}

// Unavailable returns an engine reporting err through Availability, so the
// bridge takes its unavailable path instead of failing at startup.
func Unavailable(err error, downloadURL string) port.Engine {
	return port.NewUnavailableEngine(unavailable(err, downloadURL))
}

// Close unloads the library. Views must be destroyed first.
func (e *Engine) Close() error {
	if e.lib == nil {
		return nil
	}
	return e.lib.close()
}

// Name implements port.Engine.
func (e *Engine) Name() string { return engineName }

// Version returns the engine runtime version, or "" when not exported.
func (e *Engine) Version() string {
	e.versionOnce.Do(func() {
		if e.t.getVersion != nil {
			e.version = takeString(e.t.getVersion(), e.t.freeString)
		}
	})
	return e.version
}

// Availability implements port.Engine.
func (e *Engine) Availability(context.Context) entity.Availability {
	return entity.Availability{
		Available: true,
		Engine:    engineName,
		Platform:  runtime.GOOS,
		Version:   e.Version(),
	}
}

// InitEnvironment implements port.EnvironmentInitializer.
func (e *Engine) InitEnvironment(context.Context) (bool, error) {
	if e.t.initEnvironment == nil {
		return false, nil
	}
	if !e.t.initEnvironment() {
		return false, fmt.Errorf("%s returned false", symInitEnvironment)
	}
	return e.t.isEnvironmentReady != nil, nil
}

// EnvironmentReady implements port.EnvironmentInitializer.
func (e *Engine) EnvironmentReady() bool {
	if e.t.isEnvironmentReady == nil {
		return true
	}
	return e.t.isEnvironmentReady()
}

// SetCrashHandler implements port.CrashNotifier.
func (e *Engine) SetCrashHandler(fn port.CrashHandler) {
	e.mu.Lock()
	e.crash = fn
	e.mu.Unlock()
}

func (e *Engine) rendererGone(id port.NativeID, reason entity.CrashReason) {
	e.mu.Lock()
	_, ok := e.live[int64(id)]
	if ok {
		delete(e.live, int64(id))
		e.dead[int64(id)] = struct{}{}
	}
	handler := e.crash
	e.mu.Unlock()
	if !ok {
		return
	}

	e.tramps.forget(int64(id))
	e.logger.Warn().Int64("native_id", int64(id)).Str("reason", string(reason)).Msg("renderer process gone")
	if handler != nil {
		handler(id, reason)
	}
}

// FlipsY implements port.ContainerMeasurer. Libraries that can measure
// their container use a bottom-left origin.
func (e *Engine) FlipsY() bool { return e.t.containerHeight != nil }

// ContainerHeight implements port.ContainerMeasurer.
func (e *Engine) ContainerHeight(host port.HostSurface) (float64, error) {
	if e.t.containerHeight == nil {
		return 0, port.ErrUnsupported
	}
	if host == nil || host.Handle() == 0 {
		return 0, fmt.Errorf("container height: no host surface")
	}
	return float64(e.t.containerHeight(host.Handle())), nil
}

// NeedsForceDisplay implements port.RenderQuirks.
func (e *Engine) NeedsForceDisplay() bool {
	return e.t.needsForceDisplay != nil && e.t.needsForceDisplay()
}

func (e *Engine) alive(id port.NativeID) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.live[int64(id)]; !ok {
		return 0, fmt.Errorf("%w: native id %d", port.ErrInvalidHandle, id)
	}
	return int64(id), nil
}

// Create implements port.Engine.
func (e *Engine) Create(_ context.Context, cfg entity.ViewConfig) (port.NativeID, error) {
	var id int64
	defaults := entity.DefaultViewConfig()
	if cfg.JavaScriptEnabled == defaults.JavaScriptEnabled && cfg.AllowsFileAccess == defaults.AllowsFileAccess {
		id = e.t.create()
	} else {
		id = e.t.createWithSettings(cfg.JavaScriptEnabled, cfg.AllowsFileAccess)
	}
	if id <= 0 {
		return 0, fmt.Errorf("native create returned %d", id)
	}

	e.mu.Lock()
	e.live[id] = struct{}{}
	e.mu.Unlock()
	e.tramps.setCrashOwner(id, e)

	if cfg.UserAgent != "" && e.t.setUserAgent != nil {
		e.t.setUserAgent(id, cfg.UserAgent)
	}
	return port.NativeID(id), nil
}

// Attach implements port.Engine.
func (e *Engine) Attach(id port.NativeID, host port.HostSurface) error {
	nid, err := e.alive(id)
	if err != nil {
		return err
	}
	if host == nil || host.Handle() == 0 {
		return fmt.Errorf("attach: no host surface")
	}
	if !e.t.attach(nid, host.Handle()) {
		return fmt.Errorf("%s refused host %#x", symAttach, host.Handle())
	}
	return nil
}

// resolve looks id up in the live set, or consumes it from the dead set.
// Only teardown calls accept a dead id.
func (e *Engine) resolve(id port.NativeID) (int64, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	nid := int64(id)
	if _, ok := e.live[nid]; ok {
		return nid, false, nil
	}
	if _, ok := e.dead[nid]; ok {
		delete(e.dead, nid)
		return nid, true, nil
	}
	return 0, false, fmt.Errorf("%w: native id %d", port.ErrInvalidHandle, id)
}

// Detach implements port.Detacher. A crashed view can be detached once,
// which releases its id.
func (e *Engine) Detach(id port.NativeID) error {
	if e.t.detach == nil {
		return port.ErrUnsupported
	}
	nid, crashed, err := e.resolve(id)
	if err != nil {
		return err
	}
	e.t.detach(nid)
	if crashed {
		e.logger.Debug().Int64("native_id", nid).Msg("crashed view detached")
	}
	return nil
}

// Destroy implements port.Engine. The navigation trampoline entry goes
// after the native view.
func (e *Engine) Destroy(id port.NativeID) error {
	nid, _, err := e.resolve(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	delete(e.live, nid)
	e.mu.Unlock()

	e.t.destroy(nid)
	e.tramps.forget(nid)
	return nil
}

// SetBounds implements port.Engine. A rect carrying a container height goes
// to the flipped entry point, or is flipped here when the library lacks one.
func (e *Engine) SetBounds(id port.NativeID, rect entity.BoundsRect) error {
	nid, err := e.alive(id)
	if err != nil {
		return err
	}
	if rect.ContainerHeight > 0 {
		if e.t.setBoundsFlipped != nil {
			x, y, w, h, container := rect.Rounded()
			e.t.setBoundsFlipped(nid, x, y, w, h, container)
			return nil
		}
		rect = rect.FlipY()
	}
	x, y, w, h, _ := rect.Rounded()
	e.t.setBounds(nid, x, y, w, h)
	return nil
}

// SetVisible implements port.Engine.
func (e *Engine) SetVisible(id port.NativeID, visible bool) error {
	return e.call(id, func(nid int64) { e.t.setVisible(nid, visible) })
}

// LoadURL implements port.Engine.
func (e *Engine) LoadURL(id port.NativeID, url string) error {
	nid, err := e.alive(id)
	if err != nil {
		return err
	}
	if !e.t.loadURL(nid, url) {
		return fmt.Errorf("%s refused %q", symLoadURL, url)
	}
	return nil
}

// LoadHTML implements port.Engine.
func (e *Engine) LoadHTML(id port.NativeID, html, baseURL string) error {
	return e.call(id, func(nid int64) { e.t.loadHTML(nid, html, baseURL) })
}

// GoBack implements port.Engine.
func (e *Engine) GoBack(id port.NativeID) error { return e.call(id, e.t.goBack) }

// GoForward implements port.Engine.
func (e *Engine) GoForward(id port.NativeID) error { return e.call(id, e.t.goForward) }

// Reload implements port.Engine.
func (e *Engine) Reload(id port.NativeID) error { return e.call(id, e.t.reload) }

// StopLoading implements port.Engine.
func (e *Engine) StopLoading(id port.NativeID) error { return e.call(id, e.t.stopLoading) }

// EvaluateScript implements port.Engine.
func (e *Engine) EvaluateScript(id port.NativeID, script string) error {
	return e.call(id, func(nid int64) { e.t.evaluateScript(nid, script) })
}

func (e *Engine) call(id port.NativeID, fn func(int64)) error {
	nid, err := e.alive(id)
	if err != nil {
		return err
	}
	fn(nid)
	return nil
}

func readBool(e *Engine, id port.NativeID, fn func(int64) bool) (bool, error) {
	nid, err := e.alive(id)
	if err != nil {
		return false, err
	}
	return fn(nid), nil
}

// CanGoBack implements port.Engine.
func (e *Engine) CanGoBack(id port.NativeID) (bool, error) { return readBool(e, id, e.t.canGoBack) }

// CanGoForward implements port.Engine.
func (e *Engine) CanGoForward(id port.NativeID) (bool, error) {
	return readBool(e, id, e.t.canGoForward)
}

// IsLoading implements port.Engine.
func (e *Engine) IsLoading(id port.NativeID) (bool, error) { return readBool(e, id, e.t.isLoading) }

// Progress implements port.Engine. The library reports whole percents.
func (e *Engine) Progress(id port.NativeID) (float64, error) {
	nid, err := e.alive(id)
	if err != nil {
		return 0, err
	}
	pct := e.t.getProgress(nid)
	switch {
	case pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	return float64(pct) / 100, nil
}

// CurrentURL implements port.Engine.
func (e *Engine) CurrentURL(id port.NativeID) (string, error) {
	nid, err := e.alive(id)
	if err != nil {
		return "", err
	}
	return takeString(e.t.getCurrentURL(nid), e.t.freeString), nil
}

// Title implements port.Engine.
func (e *Engine) Title(id port.NativeID) (string, error) {
	nid, err := e.alive(id)
	if err != nil {
		return "", err
	}
	return takeString(e.t.getTitle(nid), e.t.freeString), nil
}

// SetNavigationCallback implements port.Engine. The native side receives the
// shared trampoline, or zero to remove it.
func (e *Engine) SetNavigationCallback(id port.NativeID, cb port.NavigationCallback) error {
	nid, err := e.alive(id)
	if err != nil {
		return err
	}
	e.tramps.setNavigation(nid, cb)
	if cb == nil {
		e.t.setNavigationCallback(nid, 0)
		return nil
	}
	nav, _ := e.tramps.pointers()
	e.t.setNavigationCallback(nid, nav)
	return nil
}

// SetUserAgent implements port.Presentation.
func (e *Engine) SetUserAgent(id port.NativeID, userAgent string) error {
	if e.t.setUserAgent == nil {
		return port.ErrUnsupported
	}
	return e.call(id, func(nid int64) { e.t.setUserAgent(nid, userAgent) })
}

// SetAlpha implements port.Presentation.
func (e *Engine) SetAlpha(id port.NativeID, alpha float64) error {
	if e.t.setAlpha == nil {
		return port.ErrUnsupported
	}
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("alpha %v out of range [0, 1]", alpha)
	}
	return e.call(id, func(nid int64) { e.t.setAlpha(nid, int32(alpha*100+0.5)) })
}

// BringToFront implements port.Presentation.
func (e *Engine) BringToFront(id port.NativeID) error {
	if e.t.bringToFront == nil {
		return port.ErrUnsupported
	}
	return e.call(id, e.t.bringToFront)
}

// SendToBack implements port.Presentation.
func (e *Engine) SendToBack(id port.NativeID) error {
	if e.t.sendToBack == nil {
		return port.ErrUnsupported
	}
	return e.call(id, e.t.sendToBack)
}
