package native

import (
	"sync"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
)

// Native callbacks created with purego are never released and their number is
// bounded, so the process owns exactly one navigation and one crash
// trampoline. Both dispatch on the native view id.
type trampolineTable struct {
	makeCallback func(fn any) uintptr

	once  sync.Once
	nav   uintptr
	crash uintptr

	mu         sync.RWMutex
	navigation map[int64]port.NavigationCallback
	crashes    map[int64]*Engine
}

var trampolines = newTrampolineTable(newCallback)

func newTrampolineTable(makeCallback func(fn any) uintptr) *trampolineTable {
	return &trampolineTable{
		makeCallback: makeCallback,
		navigation:   make(map[int64]port.NavigationCallback),
		crashes:      make(map[int64]*Engine),
	}
}

func (t *trampolineTable) pointers() (nav, crash uintptr) {
	t.once.Do(func() {
		t.nav = t.makeCallback(t.dispatchNavigation)
		t.crash = t.makeCallback(t.dispatchCrash)
	})
	return t.nav, t.crash
}

func (t *trampolineTable) setNavigation(id int64, cb port.NavigationCallback) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cb == nil {
		delete(t.navigation, id)
		return
	}
	t.navigation[id] = cb
}

func (t *trampolineTable) setCrashOwner(id int64, e *Engine) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e == nil {
		delete(t.crashes, id)
		return
	}
	t.crashes[id] = e
}

func (t *trampolineTable) forget(id int64) {
	t.mu.Lock()
	delete(t.navigation, id)
	delete(t.crashes, id)
	t.mu.Unlock()
}

// dispatchNavigation runs on the native UI thread before a navigation
// commits. url is borrowed from the library and must not be freed. It
// returns 1 to allow and 0 to cancel; unknown views are allowed.
func (t *trampolineTable) dispatchNavigation(id uintptr, url uintptr) uintptr {
	t.mu.RLock()
	cb := t.navigation[int64(id)]
	t.mu.RUnlock()

	if cb == nil || cb(port.NativeID(id), goString(url)) {
		return 1
	}
	return 0
}

func (t *trampolineTable) dispatchCrash(id uintptr, reason uintptr) uintptr {
	t.mu.RLock()
	e := t.crashes[int64(id)]
	t.mu.RUnlock()

	if e != nil {
		e.rendererGone(port.NativeID(id), crashReason(reason))
	}
	return 0
}

// crashReason maps the native reason code.
func crashReason(code uintptr) entity.CrashReason {
	switch code {
	case 0:
		return entity.CrashReasonCrashed
	case 1:
		return entity.CrashReasonExceededMemory
	case 2:
		return entity.CrashReasonTerminatedByAPI
	case 3:
		return entity.CrashReasonProcessUnhealthy
	default:
		return entity.CrashReasonUnknown
	}
}
