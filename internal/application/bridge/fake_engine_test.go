package bridge

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
)

var errFakeRead = errors.New("fake read failure")

type fakeView struct {
	cfg      entity.ViewConfig
	history  []string
	index    int
	title    string
	loading  bool
	progress float64
	cb       port.NavigationCallback
	host     port.HostSurface
}

// fakeEngine is a thread-safe in-memory engine recording every call.
type fakeEngine struct {
	mu          sync.Mutex
	next        port.NativeID
	views       map[port.NativeID]*fakeView
	calls       map[string]int
	destroyed   map[port.NativeID]int
	bounds      []entity.BoundsRect
	visibility  []bool
	crash       port.CrashHandler
	failReads   bool
	unavailable bool
	readNatives map[port.NativeID]int
	createGate  chan struct{}
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		views:       make(map[port.NativeID]*fakeView),
		calls:       make(map[string]int),
		destroyed:   make(map[port.NativeID]int),
		readNatives: make(map[port.NativeID]int),
	}
}

func (f *fakeEngine) record(name string) {
	f.calls[name]++
}

func (f *fakeEngine) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeEngine) destroyCount(id port.NativeID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed[id]
}

func (f *fakeEngine) readsFor(id port.NativeID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readNatives[id]
}

func (f *fakeEngine) boundsCalls() []entity.BoundsRect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.BoundsRect(nil), f.bounds...)
}

func (f *fakeEngine) visibilityCalls() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.visibility...)
}

func (f *fakeEngine) setFailReads(v bool) {
	f.mu.Lock()
	f.failReads = v
	f.mu.Unlock()
}

func (f *fakeEngine) lastNative() port.NativeID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next
}

func (f *fakeEngine) urlOf(id port.NativeID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.views[id]
	if v == nil || len(v.history) == 0 {
		return ""
	}
	return v.history[v.index]
}

// redirect changes the committed URL without asking the navigation callback.
func (f *fakeEngine) redirect(id port.NativeID, url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.views[id]
	if len(v.history) == 0 {
		v.history = []string{url}
		return
	}
	v.history[v.index] = url
}

func (f *fakeEngine) crashView(id port.NativeID) {
	f.mu.Lock()
	handler := f.crash
	f.mu.Unlock()
	if handler != nil {
		handler(id, entity.CrashReasonCrashed)
	}
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Availability(context.Context) entity.Availability {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unavailable {
		return entity.Availability{Engine: "fake", ErrorMessage: "runtime missing", DownloadURL: "https://example.com/runtime"}
	}
	return entity.Availability{Available: true, Engine: "fake", Version: "1.0"}
}

func (f *fakeEngine) SetCrashHandler(fn port.CrashHandler) {
	f.mu.Lock()
	f.crash = fn
	f.mu.Unlock()
}

// holdCreates makes Create block until gate is closed.
func (f *fakeEngine) holdCreates(gate chan struct{}) {
	f.mu.Lock()
	f.createGate = gate
	f.mu.Unlock()
}

func (f *fakeEngine) Create(_ context.Context, cfg entity.ViewConfig) (port.NativeID, error) {
	f.mu.Lock()
	gate := f.createGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create")
	f.next++
	f.views[f.next] = &fakeView{cfg: cfg}
	return f.next, nil
}

func (f *fakeEngine) view(id port.NativeID) (*fakeView, error) {
	v, ok := f.views[id]
	if !ok {
		return nil, errors.New("unknown view")
	}
	return v, nil
}

func (f *fakeEngine) Attach(id port.NativeID, host port.HostSurface) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("attach")
	v, err := f.view(id)
	if err != nil {
		return err
	}
	v.host = host
	return nil
}

func (f *fakeEngine) Destroy(id port.NativeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("destroy")
	f.destroyed[id]++
	delete(f.views, id)
	return nil
}

func (f *fakeEngine) SetBounds(_ port.NativeID, rect entity.BoundsRect) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("set_bounds")
	f.bounds = append(f.bounds, rect)
	return nil
}

func (f *fakeEngine) SetVisible(_ port.NativeID, visible bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("set_visible")
	f.visibility = append(f.visibility, visible)
	return nil
}

func (f *fakeEngine) LoadURL(id port.NativeID, url string) error {
	f.mu.Lock()
	f.record("load_url")
	v, err := f.view(id)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	cb := v.cb
	fileAccess := v.cfg.AllowsFileAccess
	f.mu.Unlock()

	if strings.HasPrefix(url, "file://") && !fileAccess {
		return errors.New("file access denied")
	}
	if cb != nil && !cb(id, url) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(v.history) > 0 {
		v.history = v.history[:v.index+1]
	}
	v.history = append(v.history, url)
	v.index = len(v.history) - 1
	return nil
}

func (f *fakeEngine) LoadHTML(id port.NativeID, _, baseURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("load_html")
	_, err := f.view(id)
	return err
}

func (f *fakeEngine) GoBack(id port.NativeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("go_back")
	v, err := f.view(id)
	if err != nil {
		return err
	}
	if v.index > 0 {
		v.index--
	}
	return nil
}

func (f *fakeEngine) GoForward(id port.NativeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("go_forward")
	v, err := f.view(id)
	if err != nil {
		return err
	}
	if v.index < len(v.history)-1 {
		v.index++
	}
	return nil
}

func (f *fakeEngine) Reload(port.NativeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("reload")
	return nil
}

func (f *fakeEngine) StopLoading(port.NativeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("stop_loading")
	return nil
}

func (f *fakeEngine) EvaluateScript(port.NativeID, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("evaluate_script")
	return nil
}

func (f *fakeEngine) read(id port.NativeID) (*fakeView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readNatives[id]++
	if f.failReads {
		return nil, errFakeRead
	}
	return f.view(id)
}

func (f *fakeEngine) CanGoBack(id port.NativeID) (bool, error) {
	v, err := f.read(id)
	if err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return v.index > 0, nil
}

func (f *fakeEngine) CanGoForward(id port.NativeID) (bool, error) {
	v, err := f.read(id)
	if err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return v.index < len(v.history)-1, nil
}

func (f *fakeEngine) IsLoading(id port.NativeID) (bool, error) {
	v, err := f.read(id)
	if err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return v.loading, nil
}

func (f *fakeEngine) Progress(id port.NativeID) (float64, error) {
	v, err := f.read(id)
	if err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return v.progress, nil
}

func (f *fakeEngine) CurrentURL(id port.NativeID) (string, error) {
	v, err := f.read(id)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(v.history) == 0 {
		return "", nil
	}
	return v.history[v.index], nil
}

func (f *fakeEngine) Title(id port.NativeID) (string, error) {
	v, err := f.read(id)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return v.title, nil
}

func (f *fakeEngine) SetNavigationCallback(id port.NativeID, cb port.NavigationCallback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("set_navigation_callback")
	v, err := f.view(id)
	if err != nil {
		return err
	}
	v.cb = cb
	return nil
}

// flipEngine adds a bottom-left origin and a measurable container.
type flipEngine struct {
	*fakeEngine
	height   float64
	measured int
}

func (f *flipEngine) FlipsY() bool { return true }

func (f *flipEngine) ContainerHeight(port.HostSurface) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.measured++
	return f.height, nil
}

func (f *flipEngine) measureCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.measured
}

// envEngine adds an asynchronous environment that is ready after readyAfter checks.
type envEngine struct {
	*fakeEngine
	readyAfter int
	checks     int
	started    int
}

func (e *envEngine) InitEnvironment(context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started++
	return true, nil
}

func (e *envEngine) EnvironmentReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checks++
	return e.readyAfter >= 0 && e.checks > e.readyAfter
}

// quirkEngine needs a force display after attach.
type quirkEngine struct {
	*fakeEngine
}

func (quirkEngine) NeedsForceDisplay() bool { return true }

// queueDispatcher holds work until run is called, like a UI loop.
type queueDispatcher struct {
	mu    sync.Mutex
	queue []func()
}

func (q *queueDispatcher) Dispatch(fn func()) {
	q.mu.Lock()
	q.queue = append(q.queue, fn)
	q.mu.Unlock()
}

func (q *queueDispatcher) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

func (q *queueDispatcher) run() int {
	q.mu.Lock()
	queue := q.queue
	q.queue = nil
	q.mu.Unlock()
	for _, fn := range queue {
		fn()
	}
	return len(queue)
}
