package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/application/bridge"
	"github.com/bnema/nativeview/internal/infrastructure/config"
	"github.com/bnema/nativeview/internal/infrastructure/headless"
	"github.com/bnema/nativeview/internal/logging"
)

// Options adjusts a runtime beyond what the configuration says.
type Options struct {
	// Kind overrides engine.kind when set.
	Kind config.EngineKind
	// Headless configures the headless engine when it is selected.
	Headless headless.Options
	// Quiet keeps logs off stderr, for full-screen output.
	Quiet bool
	// SessionID names this process in logs and the journal; generated when empty.
	SessionID string
}

// Runtime owns the process-wide pieces views run on. Close releases them
// in reverse order of construction.
type Runtime struct {
	SessionID string
	Logger    zerolog.Logger
	Engine    *EngineSelection
	Bridge    *bridge.EngineContext
	Journal   *Journal
	Timer     *StartupTimer

	config     *config.Manager
	ctx        context.Context
	logCleanup func()

	closeOnce sync.Once
	closeErr  error
}

// New assembles a runtime from a loaded configuration manager.
func New(ctx context.Context, mgr *config.Manager, opts Options) (*Runtime, error) {
	if mgr == nil {
		return nil, errors.New("bootstrap: nil config manager")
	}
	timer := NewStartupTimer()
	cfg := mgr.Get()

	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = logging.GenerateSessionID()
	}
	logger, cleanup, err := NewLogger(cfg.Logging, sessionID, opts.Quiet)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	mgr.SetLogger(logger)
	ctx = logging.WithContext(ctx, logger)
	timer.Mark("logging")

	kind := cfg.Engine.Kind
	if opts.Kind != "" {
		kind = opts.Kind
	}
	sel := SelectEngine(ctx, kind, cfg.Engine, opts.Headless)
	ctx = logging.WithEngine(ctx, sel.Engine.Name())
	timer.Mark("engine")

	journal, err := OpenJournal(cfg.Journal)
	if err != nil {
		_ = sel.Close()
		cleanup()
		return nil, err
	}
	timer.Mark("journal")

	r := &Runtime{
		SessionID:  sessionID,
		Logger:     logger,
		Engine:     sel,
		Bridge:     bridge.NewEngineContext(ctx, sel.Engine, RegistryOptions(cfg.Timing)),
		Journal:    journal,
		Timer:      timer,
		config:     mgr,
		ctx:        ctx,
		logCleanup: cleanup,
	}
	timer.Log(ctx, zerolog.DebugLevel)
	return r, nil
}

// Context returns a context carrying the runtime logger.
func (r *Runtime) Context() context.Context { return r.ctx }

// Config returns a snapshot of the current configuration.
func (r *Runtime) Config() *config.Config { return r.config.Get() }

// NewWebView creates a view controller from the current configuration, so
// reloaded timing values apply to views created afterwards. customize may
// be nil.
func (r *Runtime) NewWebView(ctx context.Context, customize func(*bridge.Options)) *bridge.WebView {
	opts := WebViewOptions(r.config.Get())
	opts.Dispatcher = r.Engine.Dispatcher
	opts.Journal = r.Journal.Repository()
	opts.SessionID = r.SessionID
	if customize != nil {
		customize(&opts)
	}
	return r.Bridge.NewWebView(ctx, opts)
}

// Close tears the runtime down in reverse order of construction.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		var errs []error
		if err := r.Bridge.Close(); err != nil {
			errs = append(errs, fmt.Errorf("engine context: %w", err))
		}
		if err := r.Engine.Close(); err != nil {
			errs = append(errs, fmt.Errorf("engine: %w", err))
		}
		if err := r.Journal.Close(r.ctx); err != nil {
			errs = append(errs, fmt.Errorf("journal: %w", err))
		}
		r.Logger.Debug().Msg("runtime closed")
		r.logCleanup()
		r.closeErr = errors.Join(errs...)
	})
	return r.closeErr
}
