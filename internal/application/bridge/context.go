package bridge

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/logging"
)

// EngineContext is one engine plus the registry of its views. Several contexts
// may exist side by side; nothing in this package is process-global.
type EngineContext struct {
	engine   port.Engine
	registry *Registry
	logger   zerolog.Logger

	availOnce sync.Once
	avail     entity.Availability
}

// NewEngineContext wires a registry to engine.
func NewEngineContext(ctx context.Context, engine port.Engine, opts RegistryOptions) *EngineContext {
	ctx = logging.WithComponent(ctx, "bridge")
	return &EngineContext{
		engine:   engine,
		registry: NewRegistry(ctx, engine, opts),
		logger:   *logging.FromContext(ctx),
	}
}

// Engine returns the engine behind this context.
func (c *EngineContext) Engine() port.Engine { return c.engine }

// Registry returns the handle registry.
func (c *EngineContext) Registry() *Registry { return c.registry }

// Availability probes the engine once and caches the answer.
func (c *EngineContext) Availability(ctx context.Context) entity.Availability {
	c.availOnce.Do(func() {
		c.avail = c.engine.Availability(ctx)
		if c.avail.Engine == "" {
			c.avail.Engine = c.engine.Name()
		}
		ev := c.logger.Debug()
		if !c.avail.Available {
			ev = c.logger.Warn()
		}
		ev.Str("engine", c.avail.Engine).
			Bool("available", c.avail.Available).
			Str("version", c.avail.Version).
			Str("error", c.avail.ErrorMessage).
			Msg("engine availability")
	})
	return c.avail
}

// Close destroys every view still registered.
func (c *EngineContext) Close() error {
	if n := c.registry.DestroyAll(); n > 0 {
		c.logger.Debug().Int("views", n).Msg("destroyed remaining views")
	}
	return nil
}
