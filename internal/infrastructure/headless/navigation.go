package headless

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/bnema/nativeview/internal/application/port"
)

const aboutBlank = "about:blank"

var titlePattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// titleFor derives the title a simulated page load ends with.
func titleFor(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}

func htmlTitle(html string) string {
	m := titlePattern.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// LoadURL implements port.Engine. The navigation callback is consulted before
// the URL commits; file URLs fail when the view disallows file access.
func (e *Engine) LoadURL(id port.NativeID, url string) error {
	e.mu.Lock()
	e.record("load_url")
	e.mu.Unlock()
	return e.navigate(id, url)
}

func (e *Engine) navigate(id port.NativeID, target string) error {
	e.mu.Lock()
	v, err := e.lookup(id)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if isFileURL(target) && !v.cfg.AllowsFileAccess {
		e.mu.Unlock()
		e.logger.Debug().Int64("native_id", int64(id)).Str("url", target).Msg("file navigation blocked")
		return fmt.Errorf("%w: %s", ErrFileAccessDenied, target)
	}
	cb := v.cb
	e.mu.Unlock()

	// The callback runs unlocked; it may read engine state.
	if cb != nil && !cb(id, target) {
		e.logger.Debug().Int64("native_id", int64(id)).Str("url", target).Msg("navigation cancelled by callback")
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	v, err = e.lookup(id)
	if err != nil {
		return err
	}
	e.commitLocked(id, v, page{url: target, title: titleFor(target)})
	return nil
}

func (e *Engine) commitLocked(id port.NativeID, v *view, p page) {
	if len(v.history) > 0 {
		v.history = v.history[:v.index+1]
	}
	v.history = append(v.history, p)
	v.index = len(v.history) - 1
	e.startLoadLocked(id, v)
}

// startLoadLocked begins a simulated load. A newer load or StopLoading
// invalidates the pending completion through loadSeq.
func (e *Engine) startLoadLocked(id port.NativeID, v *view) {
	v.loadSeq++
	seq := v.loadSeq
	v.loading = true
	v.progress = loadingProgress

	if e.opts.LoadLatency <= 0 {
		finishLoad(v)
		return
	}
	time.AfterFunc(e.opts.LoadLatency, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if cur, ok := e.views[id]; ok && cur == v && v.loadSeq == seq {
			finishLoad(v)
		}
	})
}

func finishLoad(v *view) {
	v.loading = false
	v.progress = 1
}

// LoadHTML implements port.Engine. The document commits at baseURL, or
// about:blank, without consulting the navigation callback.
func (e *Engine) LoadHTML(id port.NativeID, html, baseURL string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("load_html")
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	if baseURL == "" {
		baseURL = aboutBlank
	}
	e.commitLocked(id, v, page{url: baseURL, title: htmlTitle(html)})
	return nil
}

// GoBack implements port.Engine.
func (e *Engine) GoBack(id port.NativeID) error {
	return e.traverse(id, "go_back", -1)
}

// GoForward implements port.Engine.
func (e *Engine) GoForward(id port.NativeID) error {
	return e.traverse(id, "go_forward", 1)
}

func (e *Engine) traverse(id port.NativeID, op string, delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(op)
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	next := v.index + delta
	if len(v.history) == 0 || next < 0 || next >= len(v.history) {
		return nil
	}
	v.index = next
	e.startLoadLocked(id, v)
	return nil
}

// Reload implements port.Engine.
func (e *Engine) Reload(id port.NativeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("reload")
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	if v.current() != nil {
		e.startLoadLocked(id, v)
	}
	return nil
}

// StopLoading implements port.Engine.
func (e *Engine) StopLoading(id port.NativeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("stop_loading")
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	v.loadSeq++
	v.loading = false
	return nil
}

// Redirect replaces the committed URL of id without consulting the navigation
// callback, the way a server redirect or in-page navigation does.
func (e *Engine) Redirect(id port.NativeID, target string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	p := page{url: target, title: titleFor(target)}
	if cur := v.current(); cur != nil {
		*cur = p
	} else {
		v.history = []page{p}
		v.index = 0
	}
	return nil
}

// SetTitle changes the title of the current page.
func (e *Engine) SetTitle(id port.NativeID, title string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, err := e.lookup(id)
	if err != nil {
		return err
	}
	if cur := v.current(); cur != nil {
		cur.title = title
	}
	return nil
}

func (e *Engine) read(id port.NativeID) (*view, error) {
	e.calls["read"]++
	if e.readFailure != nil {
		return nil, e.readFailure
	}
	return e.lookup(id)
}

// CanGoBack implements port.Engine.
func (e *Engine) CanGoBack(id port.NativeID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, err := e.read(id)
	if err != nil {
		return false, err
	}
	return v.index > 0, nil
}

// CanGoForward implements port.Engine.
func (e *Engine) CanGoForward(id port.NativeID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, err := e.read(id)
	if err != nil {
		return false, err
	}
	return v.index < len(v.history)-1, nil
}

// IsLoading implements port.Engine.
func (e *Engine) IsLoading(id port.NativeID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, err := e.read(id)
	if err != nil {
		return false, err
	}
	return v.loading, nil
}

// Progress implements port.Engine.
func (e *Engine) Progress(id port.NativeID) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, err := e.read(id)
	if err != nil {
		return 0, err
	}
	return v.progress, nil
}

// CurrentURL implements port.Engine.
func (e *Engine) CurrentURL(id port.NativeID) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, err := e.read(id)
	if err != nil {
		return "", err
	}
	if cur := v.current(); cur != nil {
		return cur.url, nil
	}
	return "", nil
}

// Title implements port.Engine.
func (e *Engine) Title(id port.NativeID) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, err := e.read(id)
	if err != nil {
		return "", err
	}
	if cur := v.current(); cur != nil {
		return cur.title, nil
	}
	return "", nil
}
