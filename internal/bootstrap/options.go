package bootstrap

import (
	"github.com/bnema/nativeview/internal/application/bridge"
	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/infrastructure/config"
)

// ViewConfig converts the view section into creation settings.
func ViewConfig(cfg config.ViewConfig) entity.ViewConfig {
	return entity.ViewConfig{
		JavaScriptEnabled: cfg.JavaScriptEnabled,
		AllowsFileAccess:  cfg.AllowsFileAccess,
		UserAgent:         cfg.UserAgent,
	}
}

// Timing converts the timing section for the bridge.
func Timing(cfg config.TimingConfig) bridge.Timing {
	return bridge.Timing{
		PollInterval:          cfg.PollInterval.Std(),
		BoundsWindow:          cfg.BoundsWindow.Std(),
		ForceDisplaySettle:    cfg.ForceDisplaySettle.Std(),
		DegradedThreshold:     cfg.DegradedThreshold,
		ContainerRefreshEvery: cfg.ContainerRefreshEvery,
	}
}

// RegistryOptions converts the environment wait settings.
func RegistryOptions(cfg config.TimingConfig) bridge.RegistryOptions {
	return bridge.RegistryOptions{
		EnvironmentPollInterval: cfg.EnvironmentPollInterval.Std(),
		EnvironmentMaxAttempts:  cfg.EnvironmentMaxAttempts,
	}
}

// WebViewOptions builds the options of a new view from the configuration.
// The caller still sets callbacks, the dispatcher and the journal.
func WebViewOptions(cfg *config.Config) bridge.Options {
	opts := bridge.DefaultOptions()
	opts.View = ViewConfig(cfg.View)
	opts.InitialURL = cfg.View.InitialURL
	opts.Timing = Timing(cfg.Timing)
	opts.AutoRecreate = cfg.Supervisor.AutoRecreate
	opts.MaxRecreates = cfg.Supervisor.MaxRecreates
	return opts
}
