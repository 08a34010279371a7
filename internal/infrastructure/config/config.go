// Package config loads, validates and watches the nativeview configuration.
package config

import (
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
)

// Config represents the complete configuration for nativeview.
type Config struct {
	Engine     EngineConfig     `mapstructure:"engine" toml:"engine" json:"engine"`
	View       ViewConfig       `mapstructure:"view" toml:"view" json:"view"`
	Timing     TimingConfig     `mapstructure:"timing" toml:"timing" json:"timing"`
	Supervisor SupervisorConfig `mapstructure:"supervisor" toml:"supervisor" json:"supervisor"`
	Journal    JournalConfig    `mapstructure:"journal" toml:"journal" json:"journal"`
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging" json:"logging"`
}

// EngineKind selects which engine backs new views.
type EngineKind string

const (
	EngineAuto      EngineKind = "auto"
	EngineNative    EngineKind = "native"
	EngineWebKitGTK EngineKind = "webkitgtk"
	EngineHeadless  EngineKind = "headless"
)

// EngineKinds lists every accepted engine kind in probe order.
func EngineKinds() []EngineKind {
	return []EngineKind{EngineAuto, EngineNative, EngineWebKitGTK, EngineHeadless}
}

// EngineConfig selects and locates the native engine.
type EngineConfig struct {
	// Kind is one of auto, native, webkitgtk, headless.
	Kind EngineKind `mapstructure:"kind" toml:"kind" json:"kind" jsonschema:"enum=auto,enum=native,enum=webkitgtk,enum=headless"`
	// LibraryPath overrides the shared library searched by the native engine.
	LibraryPath string `mapstructure:"library_path" toml:"library_path" json:"library_path"`
	// DownloadURL is shown when the engine runtime is missing.
	DownloadURL string `mapstructure:"download_url" toml:"download_url" json:"download_url"`
}

// ViewConfig holds per-view creation settings.
type ViewConfig struct {
	JavaScriptEnabled bool   `mapstructure:"javascript_enabled" toml:"javascript_enabled" json:"javascript_enabled"`
	AllowsFileAccess  bool   `mapstructure:"allows_file_access" toml:"allows_file_access" json:"allows_file_access"`
	InitialURL        string `mapstructure:"initial_url" toml:"initial_url" json:"initial_url"`
	UserAgent         string `mapstructure:"user_agent" toml:"user_agent" json:"user_agent"`
}

// TimingConfig tunes the poller, debouncer and environment wait.
// Values are re-read each time a view is constructed.
type TimingConfig struct {
	PollInterval            Duration `mapstructure:"poll_interval" toml:"poll_interval" json:"poll_interval"`
	BoundsWindow            Duration `mapstructure:"bounds_window" toml:"bounds_window" json:"bounds_window"`
	EnvironmentPollInterval Duration `mapstructure:"environment_poll_interval" toml:"environment_poll_interval" json:"environment_poll_interval"`
	EnvironmentMaxAttempts  int      `mapstructure:"environment_max_attempts" toml:"environment_max_attempts" json:"environment_max_attempts"`
	ForceDisplaySettle      Duration `mapstructure:"force_display_settle" toml:"force_display_settle" json:"force_display_settle"`
	DegradedThreshold       int      `mapstructure:"degraded_threshold" toml:"degraded_threshold" json:"degraded_threshold"`
	ContainerRefreshEvery   int      `mapstructure:"container_refresh_every" toml:"container_refresh_every" json:"container_refresh_every"`
}

// SupervisorConfig controls crash recovery.
type SupervisorConfig struct {
	AutoRecreate bool `mapstructure:"auto_recreate" toml:"auto_recreate" json:"auto_recreate"`
	// MaxRecreates caps recreations over a view's lifetime; 0 disables recreation.
	MaxRecreates int `mapstructure:"max_recreates" toml:"max_recreates" json:"max_recreates"`
}

// JournalConfig controls the sqlite navigation journal.
type JournalConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	// Path defaults to the XDG data directory when empty.
	Path string `mapstructure:"path" toml:"path" json:"path"`
	// MaxEntries caps the journal on shutdown; 0 keeps everything.
	MaxEntries int `mapstructure:"max_entries" toml:"max_entries" json:"max_entries"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// FileDir enables session log files when set.
	FileDir    string `mapstructure:"file_dir" toml:"file_dir" json:"file_dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days"`
	Compress   bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// Duration is a time.Duration written as a Go duration string ("200ms").
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// JSONSchema describes Duration as a duration string.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
		Description: "Go duration string, e.g. 200ms",
	}
}
