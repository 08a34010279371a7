// Package bootstrap assembles configuration, logging, the engine and the
// journal into a runtime the CLI drives.
package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/logging"
)

type startupPhase struct {
	name string
	took time.Duration
}

// StartupTimer records how long each runtime construction step took.
type StartupTimer struct {
	mu     sync.Mutex
	start  time.Time
	last   time.Time
	phases []startupPhase
}

// NewStartupTimer starts timing from now.
func NewStartupTimer() *StartupTimer {
	now := time.Now()
	return &StartupTimer{start: now, last: now}
}

// Mark closes the current phase under the given name.
func (t *StartupTimer) Mark(phase string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.phases = append(t.phases, startupPhase{name: phase, took: now.Sub(t.last)})
	t.last = now
}

// Phases returns the recorded phase names in order.
func (t *StartupTimer) Phases() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, len(t.phases))
	for i, p := range t.phases {
		names[i] = p.name
	}
	return names
}

// Log writes the phases and the total as one event at the given level.
func (t *StartupTimer) Log(ctx context.Context, level zerolog.Level) {
	t.mu.Lock()
	defer t.mu.Unlock()
	event := logging.FromContext(ctx).WithLevel(level).Dur("total", t.last.Sub(t.start))
	for _, p := range t.phases {
		event = event.Dur(p.name, p.took)
	}
	event.Msg("startup timing")
}
