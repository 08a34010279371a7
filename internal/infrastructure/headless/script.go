package headless

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/grafana/sobek"
	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/port"
)

var errScriptHostClosed = errors.New("headless: script host closed")

type actionKind int

const (
	actionNavigate actionKind = iota
	actionBack
	actionForward
	actionReload
)

// scriptAction is a navigation requested by a script. Actions run after the
// script returns so the navigation callback never re-enters the runtime.
type scriptAction struct {
	kind actionKind
	url  string
}

// scriptHost owns the sobek runtime of one view. sobek runtimes are not
// goroutine safe, so every run holds mu.
type scriptHost struct {
	mu      sync.Mutex
	vm      *sobek.Runtime
	engine  *Engine
	id      port.NativeID
	logger  zerolog.Logger
	pending []scriptAction
	closed  bool
}

func newScriptHost(e *Engine, id port.NativeID) (*scriptHost, error) {
	h := &scriptHost{
		vm:     sobek.New(),
		engine: e,
		id:     id,
		logger: e.logger.With().Int64("native_id", int64(id)).Logger(),
	}
	if err := h.install(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *scriptHost) install() error {
	vm := h.vm

	document := vm.NewObject()
	if err := document.DefineAccessorProperty("title",
		vm.ToValue(func(sobek.FunctionCall) sobek.Value {
			title, _ := h.engine.Title(h.id)
			return vm.ToValue(title)
		}),
		vm.ToValue(func(call sobek.FunctionCall) sobek.Value {
			_ = h.engine.SetTitle(h.id, call.Argument(0).String())
			return sobek.Undefined()
		}),
		sobek.FLAG_FALSE, sobek.FLAG_TRUE); err != nil {
		return err
	}

	location := vm.NewObject()
	if err := location.DefineAccessorProperty("href",
		vm.ToValue(func(sobek.FunctionCall) sobek.Value {
			url, _ := h.engine.CurrentURL(h.id)
			return vm.ToValue(url)
		}),
		vm.ToValue(func(call sobek.FunctionCall) sobek.Value {
			h.queue(scriptAction{kind: actionNavigate, url: call.Argument(0).String()})
			return sobek.Undefined()
		}),
		sobek.FLAG_FALSE, sobek.FLAG_TRUE); err != nil {
		return err
	}
	if err := location.Set("assign", func(call sobek.FunctionCall) sobek.Value {
		h.queue(scriptAction{kind: actionNavigate, url: call.Argument(0).String()})
		return sobek.Undefined()
	}); err != nil {
		return err
	}
	if err := location.Set("reload", func(sobek.FunctionCall) sobek.Value {
		h.queue(scriptAction{kind: actionReload})
		return sobek.Undefined()
	}); err != nil {
		return err
	}

	history := vm.NewObject()
	if err := history.Set("back", func(sobek.FunctionCall) sobek.Value {
		h.queue(scriptAction{kind: actionBack})
		return sobek.Undefined()
	}); err != nil {
		return err
	}
	if err := history.Set("forward", func(sobek.FunctionCall) sobek.Value {
		h.queue(scriptAction{kind: actionForward})
		return sobek.Undefined()
	}); err != nil {
		return err
	}

	navigator := vm.NewObject()
	if err := navigator.DefineAccessorProperty("userAgent",
		vm.ToValue(func(sobek.FunctionCall) sobek.Value {
			_, _, ua, _ := h.engine.Presentation(h.id)
			return vm.ToValue(ua)
		}),
		nil, sobek.FLAG_FALSE, sobek.FLAG_TRUE); err != nil {
		return err
	}

	console := vm.NewObject()
	if err := console.Set("log", func(call sobek.FunctionCall) sobek.Value {
		args := make([]any, len(call.Arguments))
		for i, a := range call.Arguments {
			args[i] = a.Export()
		}
		h.logger.Debug().Interface("args", args).Msg("console.log")
		return sobek.Undefined()
	}); err != nil {
		return err
	}

	window := vm.GlobalObject()
	for name, value := range map[string]any{
		"document":  document,
		"location":  location,
		"history":   history,
		"navigator": navigator,
		"console":   console,
		"window":    window,
	} {
		if err := vm.Set(name, value); err != nil {
			return fmt.Errorf("install %s: %w", name, err)
		}
	}
	return nil
}

func (h *scriptHost) queue(a scriptAction) {
	h.pending = append(h.pending, a)
}

// run evaluates src and returns its result with the navigations it requested.
func (h *scriptHost) run(src string, timeout time.Duration) (string, []scriptAction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return "", nil, errScriptHostClosed
	}

	h.pending = nil
	if timeout > 0 {
		timer := time.AfterFunc(timeout, func() { h.vm.Interrupt("script timeout") })
		defer timer.Stop()
	}
	defer h.vm.ClearInterrupt()

	value, err := h.vm.RunString(src)
	actions := h.pending
	h.pending = nil
	if err != nil {
		var interrupted *sobek.InterruptedError
		if errors.As(err, &interrupted) {
			return "", nil, fmt.Errorf("script interrupted: %v", interrupted.Value())
		}
		return "", nil, fmt.Errorf("script failed: %w", err)
	}
	return exportString(value), actions, nil
}

func exportString(v sobek.Value) string {
	if v == nil || sobek.IsUndefined(v) || sobek.IsNull(v) {
		return ""
	}
	return v.String()
}

// close interrupts a running script and disables the host.
func (h *scriptHost) close() {
	if h == nil {
		return
	}
	h.vm.Interrupt("view destroyed")
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// EvaluateScript implements port.Engine.
func (e *Engine) EvaluateScript(id port.NativeID, script string) error {
	_, err := e.Evaluate(id, script)
	return err
}

// Evaluate runs script in the page of id and returns its result as a string.
// Navigations requested by the script go through the navigation callback.
func (e *Engine) Evaluate(id port.NativeID, script string) (string, error) {
	e.mu.Lock()
	e.record("evaluate_script")
	v, err := e.lookup(id)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	if !v.cfg.JavaScriptEnabled {
		e.mu.Unlock()
		return "", ErrJavaScriptDisabled
	}
	if v.script == nil {
		host, hostErr := newScriptHost(e, id)
		if hostErr != nil {
			e.mu.Unlock()
			return "", fmt.Errorf("start script runtime: %w", hostErr)
		}
		v.script = host
	}
	host := v.script
	e.mu.Unlock()

	result, actions, err := host.run(script, e.opts.ScriptTimeout)
	if err != nil {
		return "", err
	}
	for _, a := range actions {
		if err := e.apply(id, a); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (e *Engine) apply(id port.NativeID, a scriptAction) error {
	switch a.kind {
	case actionNavigate:
		return e.navigate(id, a.url)
	case actionBack:
		return e.traverse(id, "go_back", -1)
	case actionForward:
		return e.traverse(id, "go_forward", 1)
	case actionReload:
		return e.Reload(id)
	}
	return nil
}
