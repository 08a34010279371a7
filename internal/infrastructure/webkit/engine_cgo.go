//go:build webkit_cgo

package webkit

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/logging"
)

// Host is the GTK container views are placed in. Bounds map to positions
// inside the Fixed.
type Host struct {
	Fixed *gtk.Fixed
}

// NewHost wraps a Fixed container as a host surface.
func NewHost(fixed *gtk.Fixed) *Host { return &Host{Fixed: fixed} }

// Handle implements port.HostSurface.
func (h *Host) Handle() uintptr {
	if h == nil || h.Fixed == nil {
		return 0
	}
	return coreglib.InternObject(h.Fixed).Native()
}

type view struct {
	wv         *webkit.WebView
	host       *gtk.Fixed
	nav        port.NavigationCallback
	policy     coreglib.SignalHandle
	terminated coreglib.SignalHandle
}

// Engine is a port.Engine over WebKitGTK. Every call is marshalled onto the
// GTK main loop.
type Engine struct {
	logger zerolog.Logger

	mu    sync.Mutex
	next  int64
	views map[int64]*view
	crash port.CrashHandler
}

var (
	_ port.Engine        = (*Engine)(nil)
	_ port.CrashNotifier = (*Engine)(nil)
	_ port.Detacher      = (*Engine)(nil)
	_ port.Presentation  = (*Engine)(nil)
)

// Open returns the WebKitGTK engine. GTK must be initialized by the host.
func Open(ctx context.Context) (port.Engine, error) {
	return &Engine{
		logger: logging.FromContext(ctx).With().Str("component", "webkit-engine").Logger(),
		views:  make(map[int64]*view),
	}, nil
}

// Probe reports the linked WebKitGTK version.
func Probe(context.Context) entity.Availability {
	return entity.Availability{
		Available: true,
		Engine:    engineName,
		Platform:  runtime.GOOS,
		Version: fmt.Sprintf("%d.%d.%d",
			webkit.GetMajorVersion(), webkit.GetMinorVersion(), webkit.GetMicroVersion()),
	}
}

// Name implements port.Engine.
func (e *Engine) Name() string { return engineName }

// Availability implements port.Engine.
func (e *Engine) Availability(ctx context.Context) entity.Availability { return Probe(ctx) }

// SetCrashHandler implements port.CrashNotifier.
func (e *Engine) SetCrashHandler(fn port.CrashHandler) {
	e.mu.Lock()
	e.crash = fn
	e.mu.Unlock()
}

func (e *Engine) lookup(id port.NativeID) (*view, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.views[int64(id)]
	if !ok {
		return nil, fmt.Errorf("%w: native id %d", port.ErrInvalidHandle, id)
	}
	return v, nil
}

func (e *Engine) with(id port.NativeID, fn func(v *view)) error {
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	onMain(func() { fn(v) })
	return nil
}

// Create implements port.Engine.
func (e *Engine) Create(_ context.Context, cfg entity.ViewConfig) (port.NativeID, error) {
	e.mu.Lock()
	e.next++
	id := e.next
	e.mu.Unlock()

	v := &view{}
	onMain(func() {
		v.wv = webkit.NewWebView()
		settings := v.wv.Settings()
		settings.SetEnableJavascript(cfg.JavaScriptEnabled)
		settings.SetAllowFileAccessFromFileURLs(cfg.AllowsFileAccess)
		settings.SetAllowUniversalAccessFromFileURLs(false)
		if cfg.UserAgent != "" {
			settings.SetUserAgent(cfg.UserAgent)
		}
		v.policy = v.wv.ConnectDecidePolicy(func(decision webkit.PolicyDecisioner, typ webkit.PolicyDecisionType) bool {
			return e.decide(id, decision, typ)
		})
		v.terminated = v.wv.ConnectWebProcessTerminated(func(reason webkit.WebProcessTerminationReason) {
			e.rendererGone(id, terminationReason(int(reason)))
		})
	})
	if v.wv == nil {
		return 0, fmt.Errorf("webkit_web_view_new returned NULL")
	}

	e.mu.Lock()
	e.views[id] = v
	e.mu.Unlock()
	return port.NativeID(id), nil
}

// decide runs inside decide-policy. Returning true claims the decision.
func (e *Engine) decide(id int64, decision webkit.PolicyDecisioner, typ webkit.PolicyDecisionType) bool {
	if typ != webkit.PolicyDecisionTypeNavigationAction {
		return false
	}
	nav, ok := decision.(*webkit.NavigationPolicyDecision)
	if !ok {
		return false
	}

	e.mu.Lock()
	var cb port.NavigationCallback
	if v := e.views[id]; v != nil {
		cb = v.nav
	}
	e.mu.Unlock()
	if cb == nil {
		return false
	}

	url := nav.NavigationAction().Request().URI()
	if cb(port.NativeID(id), url) {
		return false
	}
	nav.Ignore()
	return true
}

func (e *Engine) rendererGone(id int64, reason entity.CrashReason) {
	e.mu.Lock()
	v, ok := e.views[id]
	delete(e.views, id)
	handler := e.crash
	e.mu.Unlock()
	if !ok {
		return
	}

	e.release(v)
	e.logger.Warn().Int64("native_id", id).Str("reason", string(reason)).Msg("web process terminated")
	if handler != nil {
		handler(port.NativeID(id), reason)
	}
}

// release disconnects signals and unparents the widget. Runs on the main loop.
func (e *Engine) release(v *view) {
	v.wv.HandlerDisconnect(v.policy)
	v.wv.HandlerDisconnect(v.terminated)
	if v.host != nil {
		v.host.Remove(v.wv)
		v.host = nil
	}
}

// Attach implements port.Engine.
func (e *Engine) Attach(id port.NativeID, host port.HostSurface) error {
	h, ok := host.(*Host)
	if !ok || h.Handle() == 0 {
		return fmt.Errorf("attach: host %T is not a *webkit.Host", host)
	}
	return e.with(id, func(v *view) {
		if v.host == h.Fixed {
			return
		}
		if v.host != nil {
			v.host.Remove(v.wv)
		}
		h.Fixed.Put(v.wv, 0, 0)
		v.host = h.Fixed
	})
}

// Detach implements port.Detacher.
func (e *Engine) Detach(id port.NativeID) error {
	return e.with(id, func(v *view) {
		if v.host != nil {
			v.host.Remove(v.wv)
			v.host = nil
		}
	})
}

// Destroy implements port.Engine.
func (e *Engine) Destroy(id port.NativeID) error {
	e.mu.Lock()
	v, ok := e.views[int64(id)]
	delete(e.views, int64(id))
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: native id %d", port.ErrInvalidHandle, id)
	}
	onMain(func() {
		e.release(v)
		v.wv.TryClose()
	})
	return nil
}

// SetBounds implements port.Engine. GTK uses a top-left origin.
func (e *Engine) SetBounds(id port.NativeID, rect entity.BoundsRect) error {
	var err error
	werr := e.with(id, func(v *view) {
		if v.host == nil {
			err = errNoHost
			return
		}
		x, y, w, h, _ := rect.Rounded()
		v.host.Move(v.wv, float64(x), float64(y))
		v.wv.SetSizeRequest(int(w), int(h))
	})
	if werr != nil {
		return werr
	}
	return err
}

// SetVisible implements port.Engine.
func (e *Engine) SetVisible(id port.NativeID, visible bool) error {
	return e.with(id, func(v *view) { v.wv.SetVisible(visible) })
}

// LoadURL implements port.Engine.
func (e *Engine) LoadURL(id port.NativeID, url string) error {
	return e.with(id, func(v *view) { v.wv.LoadURI(url) })
}

// LoadHTML implements port.Engine.
func (e *Engine) LoadHTML(id port.NativeID, html, baseURL string) error {
	return e.with(id, func(v *view) { v.wv.LoadHTML(html, baseURL) })
}

// GoBack implements port.Engine.
func (e *Engine) GoBack(id port.NativeID) error {
	return e.with(id, func(v *view) { v.wv.GoBack() })
}

// GoForward implements port.Engine.
func (e *Engine) GoForward(id port.NativeID) error {
	return e.with(id, func(v *view) { v.wv.GoForward() })
}

// Reload implements port.Engine.
func (e *Engine) Reload(id port.NativeID) error {
	return e.with(id, func(v *view) { v.wv.Reload() })
}

// StopLoading implements port.Engine.
func (e *Engine) StopLoading(id port.NativeID) error {
	return e.with(id, func(v *view) { v.wv.StopLoading() })
}

// EvaluateScript implements port.Engine. The result is discarded.
func (e *Engine) EvaluateScript(id port.NativeID, script string) error {
	return e.with(id, func(v *view) {
		v.wv.EvaluateJavascript(context.Background(), script, -1, "", "", nil)
	})
}

func read[T any](e *Engine, id port.NativeID, fn func(*webkit.WebView) T) (T, error) {
	var out T
	err := e.with(id, func(v *view) { out = fn(v.wv) })
	return out, err
}

// CanGoBack implements port.Engine.
func (e *Engine) CanGoBack(id port.NativeID) (bool, error) {
	return read(e, id, (*webkit.WebView).CanGoBack)
}

// CanGoForward implements port.Engine.
func (e *Engine) CanGoForward(id port.NativeID) (bool, error) {
	return read(e, id, (*webkit.WebView).CanGoForward)
}

// IsLoading implements port.Engine.
func (e *Engine) IsLoading(id port.NativeID) (bool, error) {
	return read(e, id, (*webkit.WebView).IsLoading)
}

// Progress implements port.Engine.
func (e *Engine) Progress(id port.NativeID) (float64, error) {
	return read(e, id, (*webkit.WebView).EstimatedLoadProgress)
}

// CurrentURL implements port.Engine.
func (e *Engine) CurrentURL(id port.NativeID) (string, error) {
	return read(e, id, (*webkit.WebView).URI)
}

// Title implements port.Engine.
func (e *Engine) Title(id port.NativeID) (string, error) {
	return read(e, id, (*webkit.WebView).Title)
}

// SetNavigationCallback implements port.Engine. decide-policy stays connected
// and reads the callback on each decision.
func (e *Engine) SetNavigationCallback(id port.NativeID, cb port.NavigationCallback) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.views[int64(id)]
	if !ok {
		return fmt.Errorf("%w: native id %d", port.ErrInvalidHandle, id)
	}
	v.nav = cb
	return nil
}

// SetUserAgent implements port.Presentation.
func (e *Engine) SetUserAgent(id port.NativeID, userAgent string) error {
	return e.with(id, func(v *view) { v.wv.Settings().SetUserAgent(userAgent) })
}

// SetAlpha implements port.Presentation.
func (e *Engine) SetAlpha(id port.NativeID, alpha float64) error {
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("alpha %v out of range [0, 1]", alpha)
	}
	return e.with(id, func(v *view) { v.wv.SetOpacity(alpha) })
}

// BringToFront implements port.Presentation. The last child of the Fixed is
// drawn on top.
func (e *Engine) BringToFront(id port.NativeID) error {
	return e.restack(id, func(v *view) { v.wv.InsertBefore(v.host, nil) })
}

// SendToBack implements port.Presentation.
func (e *Engine) SendToBack(id port.NativeID) error {
	return e.restack(id, func(v *view) { v.wv.InsertAfter(v.host, nil) })
}

func (e *Engine) restack(id port.NativeID, fn func(v *view)) error {
	var err error
	werr := e.with(id, func(v *view) {
		if v.host == nil {
			err = errNoHost
			return
		}
		fn(v)
	})
	if werr != nil {
		return werr
	}
	return err
}
