package bridge

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/domain/entity"
)

// InterceptorFunc decides whether a navigation to url may proceed.
// It runs synchronously on the engine thread.
type InterceptorFunc func(url string) bool

// Trampoline is the Go side of the native navigation callback for one handle.
// The registry keeps it for exactly as long as the handle is live.
type Trampoline struct {
	decide func(entity.NavigationRequest) entity.NavigationDecision
}

// NewTrampoline wraps a decision function.
func NewTrampoline(decide func(entity.NavigationRequest) entity.NavigationDecision) *Trampoline {
	return &Trampoline{decide: decide}
}

// Decide answers a navigation request. A nil trampoline allows everything.
func (t *Trampoline) Decide(req entity.NavigationRequest) entity.NavigationDecision {
	if t == nil || t.decide == nil {
		return entity.NavigationAllow
	}
	return t.decide(req)
}

// Interceptor holds the navigation policy of one WebView. The policy can be
// set at any time, including before a handle exists: the trampoline installed
// at attach always consults the current policy.
type Interceptor struct {
	policy atomic.Pointer[InterceptorFunc]

	// onBegin runs before policy is consulted (the pre-navigation hook).
	onBegin func(entity.NavigationRequest)
	// onReject runs after policy cancelled a navigation.
	onReject func(entity.NavigationRequest)

	logger zerolog.Logger
}

func newInterceptor(logger zerolog.Logger, onBegin, onReject func(entity.NavigationRequest)) *Interceptor {
	return &Interceptor{
		onBegin:  onBegin,
		onReject: onReject,
		logger:   logger,
	}
}

// Set replaces the policy. The new policy is visible to the next decision;
// a decision already running keeps the policy it loaded. nil removes it.
func (i *Interceptor) Set(fn InterceptorFunc) {
	if fn == nil {
		i.policy.Store(nil)
		return
	}
	i.policy.Store(&fn)
}

// Active reports whether a policy is set.
func (i *Interceptor) Active() bool {
	return i.policy.Load() != nil
}

// Decide runs the pre-navigation hook, then the policy.
func (i *Interceptor) Decide(req entity.NavigationRequest) (decision entity.NavigationDecision) {
	if i.onBegin != nil {
		i.onBegin(req)
	}

	p := i.policy.Load()
	if p == nil {
		return entity.NavigationAllow
	}

	defer func() {
		if r := recover(); r != nil {
			i.logger.Error().Interface("panic", r).Str("url", req.TargetURL).Msg("navigation interceptor panicked, cancelling")
			decision = entity.NavigationCancel
			if i.onReject != nil {
				i.onReject(req)
			}
		}
	}()

	if (*p)(req.TargetURL) {
		return entity.NavigationAllow
	}

	i.logger.Debug().Str("url", req.TargetURL).Stringer("handle", req.Handle).Msg("navigation cancelled by interceptor")
	if i.onReject != nil {
		i.onReject(req)
	}
	return entity.NavigationCancel
}

// Trampoline returns a trampoline bound to this interceptor.
func (i *Interceptor) Trampoline() *Trampoline {
	return NewTrampoline(i.Decide)
}
