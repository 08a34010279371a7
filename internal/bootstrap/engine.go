package bootstrap

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/nativeview/internal/application/port"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/infrastructure/config"
	"github.com/bnema/nativeview/internal/infrastructure/headless"
	"github.com/bnema/nativeview/internal/infrastructure/native"
	"github.com/bnema/nativeview/internal/infrastructure/webkit"
	"github.com/bnema/nativeview/internal/logging"
)

// EngineSelection is the engine chosen for this process.
type EngineSelection struct {
	Kind       config.EngineKind
	Engine     port.Engine
	Dispatcher port.Dispatcher
	// Skipped lists the engines tried before this one, in probe order.
	Skipped []entity.Availability

	closeOnce sync.Once
	close     func() error
}

// Close releases the engine. It is safe to call more than once.
func (s *EngineSelection) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.close != nil {
			err = s.close()
		}
	})
	return err
}

// engineFactories builds each engine kind; tests swap them out.
type engineFactories struct {
	native   func(ctx context.Context, cfg native.LoaderConfig) (port.Engine, func() error, error)
	webkit   func(ctx context.Context) (port.Engine, error)
	headless func(ctx context.Context, opts headless.Options) port.Engine
	dispatch func(kind config.EngineKind) port.Dispatcher
}

func defaultFactories() engineFactories {
	return engineFactories{
		native: func(ctx context.Context, cfg native.LoaderConfig) (port.Engine, func() error, error) {
			e, err := native.Open(ctx, cfg)
			if err != nil {
				return native.Unavailable(err, cfg.DownloadURL), nil, err
			}
			return e, e.Close, nil
		},
		webkit: webkit.Open,
		headless: func(ctx context.Context, opts headless.Options) port.Engine {
			return headless.New(ctx, opts)
		},
		dispatch: func(kind config.EngineKind) port.Dispatcher {
			if kind == config.EngineWebKitGTK {
				return webkit.Dispatcher()
			}
			return port.InlineDispatcher
		},
	}
}

// LoaderConfig converts the engine section for the native loader.
func LoaderConfig(cfg config.EngineConfig) native.LoaderConfig {
	return native.LoaderConfig{
		Path:        cfg.LibraryPath,
		DownloadURL: cfg.DownloadURL,
	}
}

// SelectEngine picks the engine named by kind. Auto tries native, then
// WebKitGTK, then falls back to headless. An explicitly named engine that
// cannot load is still returned, reporting itself unavailable, so views take
// the unavailable path instead of failing at startup.
func SelectEngine(ctx context.Context, kind config.EngineKind, cfg config.EngineConfig, opts headless.Options) *EngineSelection {
	return defaultFactories().selectEngine(ctx, kind, cfg, opts)
}

func (f engineFactories) selectEngine(ctx context.Context, kind config.EngineKind, cfg config.EngineConfig, opts headless.Options) *EngineSelection {
	log := logging.FromContext(ctx)
	if opts == (headless.Options{}) {
		opts = headless.DefaultOptions()
	}

	sel := &EngineSelection{Kind: kind}
	pick := func(k config.EngineKind, e port.Engine, closer func() error) *EngineSelection {
		sel.Kind = k
		sel.Engine = e
		sel.close = closer
		sel.Dispatcher = f.dispatch(k)
		log.Info().Str("engine", e.Name()).Str("kind", string(k)).Msg("engine selected")
		return sel
	}
	skip := func(e port.Engine, err error) {
		av := e.Availability(ctx)
		if av.ErrorMessage == "" && err != nil {
			av.ErrorMessage = err.Error()
		}
		sel.Skipped = append(sel.Skipped, av)
		log.Debug().Err(err).Str("engine", e.Name()).Msg("engine skipped")
	}

	switch kind {
	case config.EngineNative:
		e, closer, err := f.native(ctx, LoaderConfig(cfg))
		if err != nil {
			log.Warn().Err(err).Msg("native engine unavailable")
		}
		return pick(kind, e, closer)
	case config.EngineWebKitGTK:
		e, err := f.webkit(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("webkitgtk engine unavailable")
		}
		return pick(kind, e, nil)
	case config.EngineHeadless:
		return pick(kind, f.headless(ctx, opts), nil)
	}

	ne, closer, err := f.native(ctx, LoaderConfig(cfg))
	if err == nil {
		return pick(config.EngineNative, ne, closer)
	}
	skip(ne, err)

	we, err := f.webkit(ctx)
	if err == nil {
		return pick(config.EngineWebKitGTK, we, nil)
	}
	skip(we, err)
	return pick(config.EngineHeadless, f.headless(ctx, opts), nil)
}

// ProbeAll checks every engine kind concurrently, in EngineKinds order
// without auto.
func ProbeAll(ctx context.Context, cfg config.EngineConfig) ([]entity.Availability, error) {
	probes := []func(context.Context) entity.Availability{
		func(ctx context.Context) entity.Availability { return native.Probe(ctx, LoaderConfig(cfg)) },
		webkit.Probe,
		func(ctx context.Context) entity.Availability {
			return headless.New(ctx, headless.DefaultOptions()).Availability(ctx)
		},
	}
	return runProbes(ctx, probes)
}

func runProbes(ctx context.Context, probes []func(context.Context) entity.Availability) ([]entity.Availability, error) {
	out := make([]entity.Availability, len(probes))
	g, gctx := errgroup.WithContext(ctx)
	for i, probe := range probes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("probe %d: %w", i, err)
			}
			out[i] = probe(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
