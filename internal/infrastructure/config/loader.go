package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/bnema/nativeview/internal/logging"
)

const envPrefix = "NATIVEVIEW"

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	dir       string
	xdg       bool
	logger    zerolog.Logger
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a manager reading from the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	m, err := NewManagerAt(configDir)
	if err != nil {
		return nil, err
	}
	m.xdg = true
	m.viper.AddConfigPath(".")
	return m, nil
}

// NewManagerAt creates a manager reading config.toml from dir.
func NewManagerAt(dir string) (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	// NATIVEVIEW_TIMING_POLL_INTERVAL, NATIVEVIEW_ENGINE_KIND, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "NATIVEVIEW_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind NATIVEVIEW_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "NATIVEVIEW_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind NATIVEVIEW_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		dir:       dir,
		logger:    logging.NewFromEnv().With().Str("component", "config").Logger(),
		callbacks: make([]func(*Config), 0),
	}, nil
}

// SetLogger replaces the manager's logger.
func (m *Manager) SetLogger(logger zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger.With().Str("component", "config").Logger()
}

// Dir returns the directory the manager reads from.
func (m *Manager) Dir() string { return m.dir }

// File returns the path of the config file in use, or the one that would be created.
func (m *Manager) File() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.dir, configName)
}

// Load loads the configuration from file and environment variables,
// writing a default file when none exists.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.xdg {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.File(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.dir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return err
	}
	path := filepath.Join(m.dir, configName)
	if err := WriteConfigOrdered(DefaultConfig(), path); err != nil {
		return err
	}
	m.logger.Info().Str("path", path).Msg("created default config")

	if err := WriteSchemaFile(filepath.Join(m.dir, schemaName)); err != nil {
		m.logger.Warn().Err(err).Msg("failed to write config schema")
	}
	return nil
}

// decode unmarshals, normalizes and validates the viper state.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := m.viper.Unmarshal(config, hook); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.File(),
			err,
		)
	}

	if config.Journal.Path == "" {
		path, err := m.defaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		config.Journal.Path = path
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (m *Manager) defaultDatabasePath() (string, error) {
	if !m.xdg {
		return filepath.Join(m.dir, databaseName), nil
	}
	return GetDatabaseFile()
}

func normalizeConfig(config *Config) {
	kind := EngineKind(strings.ToLower(strings.TrimSpace(string(config.Engine.Kind))))
	if kind == "" {
		kind = EngineAuto
	}
	config.Engine.Kind = kind
	config.Engine.LibraryPath = strings.TrimSpace(config.Engine.LibraryPath)
	config.Engine.DownloadURL = strings.TrimSpace(config.Engine.DownloadURL)
	config.View.InitialURL = strings.TrimSpace(config.View.InitialURL)

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = "console"
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

func (m *Manager) setDefaults() {
	d := DefaultConfig()

	m.viper.SetDefault("engine.kind", string(d.Engine.Kind))
	m.viper.SetDefault("engine.library_path", d.Engine.LibraryPath)
	m.viper.SetDefault("engine.download_url", d.Engine.DownloadURL)

	m.viper.SetDefault("view.javascript_enabled", d.View.JavaScriptEnabled)
	m.viper.SetDefault("view.allows_file_access", d.View.AllowsFileAccess)
	m.viper.SetDefault("view.initial_url", d.View.InitialURL)
	m.viper.SetDefault("view.user_agent", d.View.UserAgent)

	m.viper.SetDefault("timing.poll_interval", d.Timing.PollInterval.String())
	m.viper.SetDefault("timing.bounds_window", d.Timing.BoundsWindow.String())
	m.viper.SetDefault("timing.environment_poll_interval", d.Timing.EnvironmentPollInterval.String())
	m.viper.SetDefault("timing.environment_max_attempts", d.Timing.EnvironmentMaxAttempts)
	m.viper.SetDefault("timing.force_display_settle", d.Timing.ForceDisplaySettle.String())
	m.viper.SetDefault("timing.degraded_threshold", d.Timing.DegradedThreshold)
	m.viper.SetDefault("timing.container_refresh_every", d.Timing.ContainerRefreshEvery)

	m.viper.SetDefault("supervisor.auto_recreate", d.Supervisor.AutoRecreate)
	m.viper.SetDefault("supervisor.max_recreates", d.Supervisor.MaxRecreates)

	m.viper.SetDefault("journal.enabled", d.Journal.Enabled)
	m.viper.SetDefault("journal.path", d.Journal.Path)
	m.viper.SetDefault("journal.max_entries", d.Journal.MaxEntries)

	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)
	m.viper.SetDefault("logging.file_dir", d.Logging.FileDir)
	m.viper.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", d.Logging.Compress)
}
