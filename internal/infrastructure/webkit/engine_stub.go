//go:build !webkit_cgo

package webkit

import (
	"context"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
)

// Open returns an engine that reports ErrNotBuilt through Availability.
func Open(context.Context) (port.Engine, error) {
	return port.NewUnavailableEngine(unavailable(ErrNotBuilt)), ErrNotBuilt
}

// Probe reports the engine as unavailable.
func Probe(context.Context) entity.Availability {
	return unavailable(ErrNotBuilt)
}

// Dispatcher runs work inline; there is no GTK main loop in this build.
func Dispatcher() port.Dispatcher { return port.InlineDispatcher }
