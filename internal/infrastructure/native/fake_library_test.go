package native

import (
	"context"
	"sync"
	"unsafe"
)

const (
	fakeNavTrampoline   uintptr = 0xA110
	fakeCrashTrampoline uintptr = 0xC0DE
)

// fakeLibrary plays the native side of the function table in Go. Navigations
// go through the registered trampoline the way the real library calls back.
type fakeLibrary struct {
	mu        sync.Mutex
	tramps    *trampolineTable
	next      int64
	urls      map[int64]string
	titles    map[int64]string
	callbacks map[int64]uintptr
	strings   map[uintptr][]byte
	freed     map[uintptr]int
	bounds    [][5]int32
	flipped   [][5]int32
	calls     map[string]int
	progress  int32
	crashCB   uintptr
	container int32
	gate      chan struct{}
}

func newFakeLibrary() *fakeLibrary {
	f := &fakeLibrary{
		urls:      make(map[int64]string),
		titles:    make(map[int64]string),
		callbacks: make(map[int64]uintptr),
		strings:   make(map[uintptr][]byte),
		freed:     make(map[uintptr]int),
		calls:     make(map[string]int),
		container: 800,
	}
	// pointers() creates the navigation trampoline first.
	made := 0
	f.tramps = newTrampolineTable(func(any) uintptr {
		made++
		if made == 1 {
			return fakeNavTrampoline
		}
		return fakeCrashTrampoline
	})
	return f
}

func (f *fakeLibrary) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// owned allocates a C string the engine must free; "" yields NULL.
func (f *fakeLibrary) owned(s string) uintptr {
	if s == "" {
		return 0
	}
	buf := append([]byte(s), 0)
	p := uintptr(unsafe.Pointer(&buf[0]))
	f.strings[p] = buf
	return p
}

func (f *fakeLibrary) freeCounts() map[uintptr]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uintptr]int, len(f.freed))
	for k, v := range f.freed {
		out[k] = v
	}
	return out
}

func (f *fakeLibrary) navigate(id int64, url string) bool {
	f.mu.Lock()
	cb := f.callbacks[id]
	buf := append([]byte(url), 0)
	f.mu.Unlock()

	if cb == fakeNavTrampoline {
		if f.tramps.dispatchNavigation(uintptr(id), uintptr(unsafe.Pointer(&buf[0]))) == 0 {
			return false
		}
	}
	f.mu.Lock()
	f.urls[id] = url
	f.mu.Unlock()
	return true
}

// holdCreates makes create block until gate is closed.
func (f *fakeLibrary) holdCreates(gate chan struct{}) {
	f.mu.Lock()
	f.gate = gate
	f.mu.Unlock()
}

func (f *fakeLibrary) crash(id int64, code uintptr) {
	f.tramps.dispatchCrash(uintptr(id), code)
}

func (f *fakeLibrary) table(optional bool) *table {
	rec := func(name string) {
		f.mu.Lock()
		f.calls[name]++
		f.mu.Unlock()
	}
	t := &table{
		create: func() int64 {
			f.mu.Lock()
			gate := f.gate
			f.mu.Unlock()
			if gate != nil {
				<-gate
			}
			rec("create")
			f.mu.Lock()
			defer f.mu.Unlock()
			f.next++
			return f.next
		},
		createWithSettings: func(bool, bool) int64 {
			rec("create_with_settings")
			f.mu.Lock()
			defer f.mu.Unlock()
			f.next++
			return f.next
		},
		destroy: func(int64) { rec("destroy") },
		attach:  func(_ int64, host uintptr) bool { rec("attach"); return host != 0 },
		setBounds: func(_ int64, x, y, w, h int32) {
			f.mu.Lock()
			f.bounds = append(f.bounds, [5]int32{x, y, w, h, 0})
			f.mu.Unlock()
		},
		setVisible: func(int64, bool) {
			rec("set_visible")
		},
		loadURL: func(id int64, url string) bool {
			rec("load_url")
			if url == "refused://" {
				return false
			}
			f.navigate(id, url)
			return true
		},
		loadHTML:     func(int64, string, string) { rec("load_html") },
		goBack:       func(int64) { rec("go_back") },
		goForward:    func(int64) { rec("go_forward") },
		reload:       func(int64) { rec("reload") },
		stopLoading:  func(int64) { rec("stop_loading") },
		canGoBack:    func(int64) bool { return true },
		canGoForward: func(int64) bool { return false },
		isLoading:    func(int64) bool { return false },
		getProgress: func(int64) int32 {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.progress
		},
		getCurrentURL: func(id int64) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.owned(f.urls[id])
		},
		getTitle: func(id int64) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.owned(f.titles[id])
		},
		evaluateScript: func(int64, string) { rec("evaluate_script") },
		setNavigationCallback: func(id int64, cb uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if cb == 0 {
				delete(f.callbacks, id)
				return
			}
			f.callbacks[id] = cb
		},
		freeString: func(p uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.freed[p]++
		},
	}
	if !optional {
		return t
	}

	t.setBoundsFlipped = func(_ int64, x, y, w, h, c int32) {
		f.mu.Lock()
		f.flipped = append(f.flipped, [5]int32{x, y, w, h, c})
		f.mu.Unlock()
	}
	t.initEnvironment = func() bool { rec("init_environment"); return true }
	t.isEnvironmentReady = func() bool { return f.count("init_environment") > 0 }
	t.getVersion = func() uintptr {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.owned("121.0.2277.83")
	}
	t.containerHeight = func(uintptr) int32 { return f.container }
	t.detach = func(int64) { rec("detach") }
	t.needsForceDisplay = func() bool { return true }
	t.setUserAgent = func(int64, string) { rec("set_user_agent") }
	t.setAlpha = func(int64, int32) { rec("set_alpha") }
	t.bringToFront = func(int64) { rec("bring_to_front") }
	t.sendToBack = func(int64) { rec("send_to_back") }
	t.setCrashCallback = func(cb uintptr) {
		f.mu.Lock()
		f.crashCB = cb
		f.mu.Unlock()
	}
	return t
}

func (f *fakeLibrary) engine(optional bool) *Engine {
	return newEngine(context.Background(), f.table(optional), f.tramps)
}
