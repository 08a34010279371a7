package bridge

import (
	"sync"
	"sync/atomic"

	"github.com/bnema/nativeview/internal/domain/entity"
)

// stateStore is the single-writer cache of engine state. Writers (the poller
// publish step and the pre-navigation hook) serialize on mu; readers load the
// published snapshot without locking.
type stateStore struct {
	mu          sync.Mutex
	current     atomic.Pointer[entity.WebViewState]
	reportedURL string
}

func newStateStore() *stateStore {
	s := &stateStore{}
	s.current.Store(&entity.WebViewState{})
	return s
}

func (s *stateStore) Snapshot() entity.WebViewState {
	return *s.current.Load()
}

// mutate applies fn to a copy of the state and publishes it.
func (s *stateStore) mutate(fn func(*entity.WebViewState)) (entity.WebViewState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := *s.current.Load()
	next := prev
	fn(&next)
	if next == prev {
		return prev, false
	}
	s.current.Store(&next)
	return next, true
}

// beginNavigation records the target of a navigation that is about to start.
func (s *stateStore) beginNavigation(url string) (entity.WebViewState, bool) {
	return s.mutate(func(st *entity.WebViewState) {
		st.NavigatingURL = url
	})
}

// markReported reports whether url has not been announced yet and remembers it.
func (s *stateStore) markReported(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if url == "" || url == s.reportedURL {
		return false
	}
	s.reportedURL = url
	return true
}

// resetHistory clears the fields that belong to a dead native view.
func (s *stateStore) resetHistory() {
	s.mutate(func(st *entity.WebViewState) {
		st.CanGoBack = false
		st.CanGoForward = false
		st.IsLoading = false
		st.LoadingProgress = 0
	})
}
