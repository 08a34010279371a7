package config

import "time"

const (
	defaultPollInterval            = 200 * time.Millisecond
	minPollInterval                = 150 * time.Millisecond
	maxPollInterval                = 250 * time.Millisecond
	defaultBoundsWindow            = 32 * time.Millisecond
	maxBoundsWindow                = time.Second
	defaultEnvironmentPollInterval = 50 * time.Millisecond
	defaultEnvironmentMaxAttempts  = 100
	defaultForceDisplaySettle      = 10 * time.Millisecond
	defaultDegradedThreshold       = 3
	defaultContainerRefreshEvery   = 5
	defaultMaxRecreates            = 3
	defaultJournalMaxEntries       = 10000
	defaultLogMaxSizeMB            = 10
	defaultLogMaxBackups           = 3
	defaultLogMaxAgeDays           = 7
	defaultDownloadURL             = "https://developer.microsoft.com/microsoft-edge/webview2/"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Kind:        EngineAuto,
			DownloadURL: defaultDownloadURL,
		},
		View: ViewConfig{
			JavaScriptEnabled: true,
			AllowsFileAccess:  false,
		},
		Timing: TimingConfig{
			PollInterval:            Duration(defaultPollInterval),
			BoundsWindow:            Duration(defaultBoundsWindow),
			EnvironmentPollInterval: Duration(defaultEnvironmentPollInterval),
			EnvironmentMaxAttempts:  defaultEnvironmentMaxAttempts,
			ForceDisplaySettle:      Duration(defaultForceDisplaySettle),
			DegradedThreshold:       defaultDegradedThreshold,
			ContainerRefreshEvery:   defaultContainerRefreshEvery,
		},
		Supervisor: SupervisorConfig{
			AutoRecreate: true,
			MaxRecreates: defaultMaxRecreates,
		},
		Journal: JournalConfig{
			Enabled:    true,
			MaxEntries: defaultJournalMaxEntries,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
			Compress:   true,
		},
	}
}
