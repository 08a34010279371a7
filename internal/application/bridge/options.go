package bridge

import (
	"time"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/domain/repository"
)

// Poll intervals outside [MinPollInterval, MaxPollInterval] are clamped.
const (
	DefaultPollInterval = 200 * time.Millisecond
	MinPollInterval     = 150 * time.Millisecond
	MaxPollInterval     = 250 * time.Millisecond
)

const (
	// DefaultBoundsWindow is how long bounds updates are coalesced.
	DefaultBoundsWindow = 32 * time.Millisecond
	// DefaultForceDisplaySettle is the pause between hiding and re-showing a view.
	DefaultForceDisplaySettle = 10 * time.Millisecond
	// DefaultDegradedThreshold is how many consecutive failed polls report a degraded view.
	DefaultDegradedThreshold = 3
	// DefaultContainerRefreshEvery is how many poll ticks pass between container height reads.
	DefaultContainerRefreshEvery = 5
	// DefaultMaxRecreates caps crash recoveries per view.
	DefaultMaxRecreates = 3
)

// forceDisplaySchedule is when a view with render quirks gets re-shown after
// attach, measured from the attach.
var forceDisplaySchedule = []time.Duration{
	100 * time.Millisecond,
	200 * time.Millisecond,
	300 * time.Millisecond,
	500 * time.Millisecond,
	700 * time.Millisecond,
	1000 * time.Millisecond,
	1500 * time.Millisecond,
	2000 * time.Millisecond,
}

// Timing groups the periods used by a WebView.
type Timing struct {
	PollInterval          time.Duration
	BoundsWindow          time.Duration
	ForceDisplaySettle    time.Duration
	DegradedThreshold     int
	ContainerRefreshEvery int
}

// DefaultTiming returns the standard periods.
func DefaultTiming() Timing {
	return Timing{
		PollInterval:          DefaultPollInterval,
		BoundsWindow:          DefaultBoundsWindow,
		ForceDisplaySettle:    DefaultForceDisplaySettle,
		DegradedThreshold:     DefaultDegradedThreshold,
		ContainerRefreshEvery: DefaultContainerRefreshEvery,
	}
}

func (t Timing) normalized() Timing {
	def := DefaultTiming()
	switch {
	case t.PollInterval <= 0:
		t.PollInterval = def.PollInterval
	case t.PollInterval < MinPollInterval:
		t.PollInterval = MinPollInterval
	case t.PollInterval > MaxPollInterval:
		t.PollInterval = MaxPollInterval
	}
	if t.BoundsWindow <= 0 {
		t.BoundsWindow = def.BoundsWindow
	}
	if t.ForceDisplaySettle <= 0 {
		t.ForceDisplaySettle = def.ForceDisplaySettle
	}
	if t.DegradedThreshold <= 0 {
		t.DegradedThreshold = def.DegradedThreshold
	}
	if t.ContainerRefreshEvery < 0 {
		t.ContainerRefreshEvery = 0
	}
	return t
}

// Callbacks are invoked on the dispatcher unless noted otherwise.
type Callbacks struct {
	OnCreated      func(h entity.WebViewHandle)
	OnDisposed     func()
	OnURLChanged   func(url string)
	OnStateChanged func(state entity.WebViewState)
	OnUnavailable  func(av entity.Availability)
	OnDegraded     func(ev PollerDegraded)
	OnRecreated    func(previous, current entity.WebViewHandle)
}

// Options configures a WebView.
type Options struct {
	View       entity.ViewConfig
	InitialURL string
	Timing     Timing

	AutoRecreate bool
	MaxRecreates int

	Dispatcher port.Dispatcher
	Journal    repository.NavigationJournalRepository
	SessionID  string
	ViewID     string

	Callbacks Callbacks
}

// DefaultOptions returns options for a view with JavaScript on, file access off
// and crash recovery enabled.
func DefaultOptions() Options {
	return Options{
		View:         entity.DefaultViewConfig(),
		Timing:       DefaultTiming(),
		AutoRecreate: true,
		MaxRecreates: DefaultMaxRecreates,
		Dispatcher:   port.InlineDispatcher,
	}
}
