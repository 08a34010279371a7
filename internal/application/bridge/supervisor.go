package bridge

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
)

// RecreateRequest asks the owner of a crashed view to build a replacement.
type RecreateRequest struct {
	Previous entity.WebViewHandle
	Reason   entity.CrashReason
	LastURL  string
	Attempt  int
}

// supervisor turns renderer failures into handle invalidation and, unless the
// view was disposed or the budget is spent, a recreate request.
type supervisor struct {
	registry     *Registry
	dispatcher   port.Dispatcher
	autoRecreate bool
	maxRecreates int
	logger       zerolog.Logger

	// onInvalidated runs on the engine thread right after the handle is retired.
	onInvalidated func(h entity.WebViewHandle, reason entity.CrashReason)
	onRecreate    func(RecreateRequest)
	lastURL       func() string

	mu         sync.Mutex
	suppressed bool
	attempts   int
	inflight   int
	settled    chan struct{}
}

func (s *supervisor) handleCrash(h entity.WebViewHandle, reason entity.CrashReason) {
	if !s.registry.Invalidate(h) {
		return
	}
	if s.onInvalidated != nil {
		s.onInvalidated(h, reason)
	}

	s.mu.Lock()
	if s.suppressed || !s.autoRecreate || s.onRecreate == nil {
		s.mu.Unlock()
		return
	}
	if s.maxRecreates > 0 && s.attempts >= s.maxRecreates {
		s.mu.Unlock()
		s.logger.Error().Stringer("handle", h).Int("max_recreates", s.maxRecreates).Msg("recreate budget exhausted, view stays down")
		return
	}
	s.attempts++
	req := RecreateRequest{Previous: h, Reason: reason, Attempt: s.attempts}
	if s.inflight == 0 {
		s.settled = make(chan struct{})
	}
	s.inflight++
	s.mu.Unlock()

	if s.lastURL != nil {
		req.LastURL = s.lastURL()
	}
	s.logger.Info().Stringer("handle", h).Int("attempt", req.Attempt).Str("reason", string(reason)).Msg("requesting view recreation")

	// The crash arrives on the engine's callback thread, which must be left
	// before the replacement view is built.
	go s.dispatcher.Dispatch(func() {
		defer s.done()
		if s.isSuppressed() {
			return
		}
		s.onRecreate(req)
	})
}

func (s *supervisor) done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.inflight == 0 {
		close(s.settled)
	}
}

// wait blocks until every recreate requested so far has run or been dropped.
func (s *supervisor) wait(ctx context.Context) error {
	s.mu.Lock()
	if s.inflight == 0 {
		s.mu.Unlock()
		return nil
	}
	settled := s.settled
	s.mu.Unlock()

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// suppress cancels any recreate that has not started yet.
func (s *supervisor) suppress() {
	s.mu.Lock()
	s.suppressed = true
	s.mu.Unlock()
}

func (s *supervisor) isSuppressed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suppressed
}

func (s *supervisor) recreates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}
