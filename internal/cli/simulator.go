package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/nativeview/internal/application/bridge"
	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/bootstrap"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/infrastructure/headless"
	"github.com/bnema/nativeview/internal/logging"
)

// EventKind classifies what the simulator observed.
type EventKind string

const (
	EventStep        EventKind = "step"
	EventState       EventKind = "state"
	EventURL         EventKind = "url"
	EventRejected    EventKind = "rejected"
	EventDegraded    EventKind = "degraded"
	EventRecreated   EventKind = "recreated"
	EventUnavailable EventKind = "unavailable"
	EventError       EventKind = "error"
	EventDone        EventKind = "done"
)

// Event is one observation streamed by the simulator.
type Event struct {
	At     time.Duration
	Kind   EventKind
	Step   string
	Detail string
	State  entity.WebViewState
}

var errInjectedRead = errors.New("injected read failure")

// recoveryTimeout bounds how long a crash step waits for the replacement view.
const recoveryTimeout = 10 * time.Second

// Simulator drives the headless engine through the bridge.
type Simulator struct {
	rt     *bootstrap.Runtime
	engine *headless.Engine
	block  []string
	emit   func(Event)
	start  time.Time
}

// NewSimulator requires a runtime backed by the headless engine. block lists
// substrings; navigations to matching URLs are rejected.
func NewSimulator(rt *bootstrap.Runtime, block []string, emit func(Event)) (*Simulator, error) {
	eng, ok := rt.Engine.Engine.(*headless.Engine)
	if !ok {
		return nil, fmt.Errorf("simulate needs the headless engine, have %s", rt.Engine.Engine.Name())
	}
	if emit == nil {
		emit = func(Event) {}
	}
	return &Simulator{rt: rt, engine: eng, block: block, emit: emit}, nil
}

func (s *Simulator) send(kind EventKind, step, detail string, st entity.WebViewState) {
	s.emit(Event{At: time.Since(s.start), Kind: kind, Step: step, Detail: detail, State: st})
}

func (s *Simulator) allow(url string) bool {
	for _, b := range s.block {
		if b != "" && strings.Contains(url, b) {
			return false
		}
	}
	return true
}

// Run opens one view, executes steps in order and closes the view. A failing
// step is reported as an event and does not stop the run.
func (s *Simulator) Run(ctx context.Context, steps []Step) (entity.WebViewState, error) {
	s.start = time.Now()
	ctx = logging.WithComponent(ctx, "simulator")
	log := logging.FromContext(ctx)

	var w *bridge.WebView
	w = s.rt.NewWebView(ctx, func(o *bridge.Options) {
		o.ViewID = "simulator"
		o.Callbacks = bridge.Callbacks{
			OnStateChanged: func(st entity.WebViewState) { s.send(EventState, "", "", st) },
			OnURLChanged:   func(url string) { s.send(EventURL, "", url, w.State()) },
			OnDegraded: func(ev bridge.PollerDegraded) {
				s.send(EventDegraded, "", fmt.Sprintf("%d failures: %v", ev.ConsecutiveFailures, ev.Err), w.State())
			},
			OnRecreated: func(prev, cur entity.WebViewHandle) {
				s.send(EventRecreated, "", fmt.Sprintf("%s -> %s", prev, cur), w.State())
			},
			OnUnavailable: func(av entity.Availability) {
				s.send(EventUnavailable, "", av.ErrorMessage, entity.WebViewState{})
			},
		}
	})
	w.SetNavigationInterceptor(func(url string) bool {
		ok := s.allow(url)
		if !ok {
			s.send(EventRejected, "", url, w.State())
		}
		return ok
	})
	defer func() { _ = w.Close() }()

	if err := w.Open(ctx, port.RawSurface(1)); err != nil {
		return w.State(), fmt.Errorf("open view: %w", err)
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return w.State(), err
		}
		s.send(EventStep, step.String(), "", w.State())
		if err := s.apply(ctx, w, step); err != nil {
			log.Debug().Err(err).Str("step", step.String()).Msg("step failed")
			s.send(EventError, step.String(), err.Error(), w.State())
		}
		w.Sync()
	}

	final := w.State()
	s.send(EventDone, "", "", final)
	return final, nil
}

// native returns the engine id of the frontmost view.
func (s *Simulator) native() (port.NativeID, error) {
	ids := s.engine.Stacking()
	if len(ids) == 0 {
		return 0, port.ErrInvalidHandle
	}
	return ids[len(ids)-1], nil
}

func (s *Simulator) apply(ctx context.Context, w *bridge.WebView, step Step) error {
	switch step.Kind {
	case StepLoad:
		return w.LoadURL(ctx, step.Arg)
	case StepHTML:
		return w.LoadHTML(ctx, step.Arg, "")
	case StepBack:
		return w.GoBack(ctx)
	case StepForward:
		return w.GoForward(ctx)
	case StepReload:
		return w.Reload(ctx)
	case StepStop:
		return w.StopLoading(ctx)
	case StepJS:
		return w.EvaluateJavaScript(ctx, step.Arg)
	case StepShow, StepHide:
		return w.SetVisible(ctx, step.Kind == StepShow)
	case StepAlpha:
		return w.SetAlpha(ctx, step.Alpha)
	case StepBounds:
		w.UpdateBounds(step.Rect)
		return nil
	case StepSync:
		return nil
	case StepWait:
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step.Wait):
			return nil
		}
	case StepFail:
		if step.On {
			s.engine.SetReadFailure(errInjectedRead)
		} else {
			s.engine.SetReadFailure(nil)
		}
		return nil
	}

	id, err := s.native()
	if err != nil {
		return err
	}
	switch step.Kind {
	case StepRedirect:
		return s.engine.Redirect(id, step.Arg)
	case StepTitle:
		return s.engine.SetTitle(id, step.Arg)
	case StepCrash:
		if err := s.engine.Crash(id, entity.CrashReason(step.Arg)); err != nil {
			return err
		}
		waitCtx, cancel := context.WithTimeout(ctx, recoveryTimeout)
		defer cancel()
		return w.AwaitRecovery(waitCtx)
	}
	return fmt.Errorf("unhandled step %s", step.Kind)
}
