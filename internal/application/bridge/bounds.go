package bridge

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
)

// boundsDebouncer coalesces layout notifications: the first rect of a window
// arms a timer, later rects only replace the pending one, and the timer sends
// whatever is latest. A sequence number invalidates timers that were cancelled.
type boundsDebouncer struct {
	registry *Registry
	engine   port.Engine
	measurer port.ContainerMeasurer
	window   time.Duration
	logger   zerolog.Logger

	mu              sync.Mutex
	handle          entity.WebViewHandle
	host            port.HostSurface
	pending         *entity.BoundsRect
	latest          *entity.BoundsRect
	timer           *time.Timer
	seq             uint64
	containerHeight float64
	closed          bool
}

func newBoundsDebouncer(registry *Registry, engine port.Engine, window time.Duration, logger zerolog.Logger) *boundsDebouncer {
	d := &boundsDebouncer{
		registry: registry,
		engine:   engine,
		window:   window,
		logger:   logger,
	}
	if m, ok := engine.(port.ContainerMeasurer); ok && m.FlipsY() {
		d.measurer = m
	}
	return d
}

// submit queues rect for the current window.
func (d *boundsDebouncer) submit(rect entity.BoundsRect) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	r := rect
	d.pending = &r
	d.latest = &r
	if d.timer != nil {
		return
	}

	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.window, func() {
		d.flush(seq)
	})
}

func (d *boundsDebouncer) flush(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.pending == nil {
		d.mu.Unlock()
		return
	}
	rect := *d.pending
	d.pending = nil
	d.timer = nil
	h := d.handle
	d.mu.Unlock()

	d.send(h, rect)
}

// send applies rect immediately if h is attached.
func (d *boundsDebouncer) send(h entity.WebViewHandle, rect entity.BoundsRect) bool {
	if rect.Empty() {
		return false
	}
	native, release, ok := d.registry.lease(h, entity.LifecycleAttached)
	if !ok {
		return false
	}
	defer release()

	if err := d.engine.SetBounds(native, d.prepare(rect)); err != nil {
		d.logger.Warn().Err(err).Stringer("handle", h).Stringer("bounds", rect).Msg("set bounds failed")
		return false
	}
	return true
}

// prepare adds the cached container height for engines that flip Y.
func (d *boundsDebouncer) prepare(rect entity.BoundsRect) entity.BoundsRect {
	if d.measurer == nil {
		rect.ContainerHeight = 0
		return rect
	}
	d.mu.Lock()
	rect.ContainerHeight = d.containerHeight
	d.mu.Unlock()
	return rect
}

// reapply sends the latest known rect right away.
func (d *boundsDebouncer) reapply() bool {
	d.mu.Lock()
	if d.latest == nil || d.closed {
		d.mu.Unlock()
		return false
	}
	rect := *d.latest
	h := d.handle
	d.mu.Unlock()
	return d.send(h, rect)
}

func (d *boundsDebouncer) last() (entity.BoundsRect, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.latest == nil {
		return entity.BoundsRect{}, false
	}
	return *d.latest, true
}

// refreshContainerHeight re-measures the host. It runs off the bounds path,
// from attach and from the poll loop.
func (d *boundsDebouncer) refreshContainerHeight() {
	if d.measurer == nil {
		return
	}
	d.mu.Lock()
	host := d.host
	d.mu.Unlock()
	if host == nil {
		return
	}

	height, err := d.measurer.ContainerHeight(host)
	if err != nil {
		d.logger.Debug().Err(err).Msg("container height unavailable")
		return
	}
	d.mu.Lock()
	d.containerHeight = height
	d.mu.Unlock()
}

// cancel drops the queued rect and any armed timer.
func (d *boundsDebouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

func (d *boundsDebouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = nil
}

// rebind points the debouncer at a new handle after attach or recreate.
func (d *boundsDebouncer) rebind(h entity.WebViewHandle, host port.HostSurface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.handle = h
	d.host = host
}

func (d *boundsDebouncer) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.closed = true
	d.handle = entity.NoHandle
}
