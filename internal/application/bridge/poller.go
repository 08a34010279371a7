package bridge

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
)

// PollerDegraded is emitted once per streak of ticks in which every read failed.
type PollerDegraded struct {
	Handle              entity.WebViewHandle
	ConsecutiveFailures int
	Err                 error
}

type sampleField uint8

const (
	fieldCanGoBack sampleField = 1 << iota
	fieldCanGoForward
	fieldURL
	fieldTitle
	fieldLoading
	fieldProgress

	allSampleFields = fieldCanGoBack | fieldCanGoForward | fieldURL | fieldTitle | fieldLoading | fieldProgress
)

type pollSample struct {
	ok           sampleField
	canGoBack    bool
	canGoForward bool
	url          string
	title        string
	loading      bool
	progress     float64
}

func (s pollSample) has(f sampleField) bool { return s.ok&f != 0 }

// poller pulls engine state into the store at a fixed period while its handle
// is attached. Once stopped it never runs again; a new handle gets a new poller.
type poller struct {
	registry   *Registry
	engine     port.Engine
	handle     entity.WebViewHandle
	store      *stateStore
	dispatcher port.Dispatcher
	logger     zerolog.Logger

	interval          time.Duration
	degradedThreshold int
	refreshEvery      int

	refresh        func()
	onURLChanged   func(string)
	onStateChanged func(entity.WebViewState)
	onDegraded     func(PollerDegraded)

	stopped atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}

	tickMu       sync.Mutex
	ticks        int
	failures     int
	degradedSent bool
}

func (p *poller) start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.run(ctx)
}

func (p *poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.tick() {
				return
			}
		}
	}
}

// stop prevents any further tick from starting. A tick already reading from
// the engine finishes, but its result is discarded.
func (p *poller) stop() {
	if p.stopped.Swap(true) {
		return
	}
	if p.cancel != nil {
		p.cancel()
	}
}

// tick samples the engine once and reports whether polling should continue.
func (p *poller) tick() bool {
	p.tickMu.Lock()
	defer p.tickMu.Unlock()

	if p.stopped.Load() {
		return false
	}

	native, release, ok := p.registry.lease(p.handle, entity.LifecycleAttached)
	if !ok {
		if p.registry.State(p.handle) == entity.LifecycleDestroyed {
			p.logger.Debug().Stringer("handle", p.handle).Msg("handle destroyed, poller stopping")
			p.stopped.Store(true)
			return false
		}
		return true
	}
	sample, err := p.sample(native)
	release()

	p.ticks++
	if p.refresh != nil && p.refreshEvery > 0 && p.ticks%p.refreshEvery == 0 {
		p.refresh()
	}

	if sample.ok == 0 {
		p.failures++
		p.logger.Debug().Err(err).Int("failures", p.failures).Msg("poll tick failed")
		if p.failures >= p.degradedThreshold && !p.degradedSent {
			p.degradedSent = true
			ev := PollerDegraded{Handle: p.handle, ConsecutiveFailures: p.failures, Err: err}
			p.logger.Warn().Err(err).Int("failures", p.failures).Msg("poller degraded")
			if p.onDegraded != nil {
				p.dispatcher.Dispatch(func() { p.onDegraded(ev) })
			}
		}
		return true
	}

	p.failures = 0
	p.degradedSent = false
	p.dispatcher.Dispatch(func() { p.apply(sample) })
	return true
}

// sample reads every field, keeping whichever reads succeed.
func (p *poller) sample(native port.NativeID) (pollSample, error) {
	var s pollSample
	var errs []error

	read := func(f sampleField, fn func() error) {
		if err := fn(); err != nil {
			errs = append(errs, err)
			return
		}
		s.ok |= f
	}

	read(fieldCanGoBack, func() (err error) { s.canGoBack, err = p.engine.CanGoBack(native); return })
	read(fieldCanGoForward, func() (err error) { s.canGoForward, err = p.engine.CanGoForward(native); return })
	read(fieldURL, func() (err error) { s.url, err = p.engine.CurrentURL(native); return })
	read(fieldTitle, func() (err error) { s.title, err = p.engine.Title(native); return })
	read(fieldLoading, func() (err error) { s.loading, err = p.engine.IsLoading(native); return })
	read(fieldProgress, func() (err error) { s.progress, err = p.engine.Progress(native); return })

	if len(errs) > 0 {
		return s, port.NewNativeCallError("poll", p.handle, errors.Join(errs...))
	}
	return s, nil
}

// apply publishes a sample. It runs on the dispatcher and drops results that
// arrive after the handle went away.
func (p *poller) apply(s pollSample) {
	if p.stopped.Load() || !p.registry.Live(p.handle) {
		return
	}

	var committed string
	next, changed := p.store.mutate(func(st *entity.WebViewState) {
		if s.has(fieldCanGoBack) {
			st.CanGoBack = s.canGoBack
		}
		if s.has(fieldCanGoForward) {
			st.CanGoForward = s.canGoForward
		}
		if s.has(fieldTitle) {
			st.PageTitle = s.title
		}
		if s.has(fieldLoading) {
			st.IsLoading = s.loading
		}
		if s.has(fieldProgress) {
			st.LoadingProgress = s.progress
		}
		if s.has(fieldURL) && s.url != "" && s.url != st.CurrentURL {
			st.NavigatingURL = s.url
			st.CurrentURL = s.url
			committed = s.url
		}
	})

	if changed && p.onStateChanged != nil {
		p.onStateChanged(next)
	}
	if committed != "" && p.store.markReported(committed) && p.onURLChanged != nil {
		p.onURLChanged(committed)
	}
}
