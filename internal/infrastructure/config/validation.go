package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateEngine(config)...)
	validationErrors = append(validationErrors, validateView(config)...)
	validationErrors = append(validationErrors, validateTiming(config)...)
	validationErrors = append(validationErrors, validateSupervisor(config)...)
	validationErrors = append(validationErrors, validateJournal(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

// Validate checks cfg without loading it.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	return validateConfig(cfg)
}

func validateEngine(config *Config) []string {
	var validationErrors []string
	if !slices.Contains(EngineKinds(), config.Engine.Kind) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("engine.kind must be one of auto, native, webkitgtk, headless (got %q)", config.Engine.Kind))
	}
	if config.Engine.DownloadURL != "" && !isHTTPURL(config.Engine.DownloadURL) {
		validationErrors = append(validationErrors, "engine.download_url must be an http(s) URL")
	}
	return validationErrors
}

func validateView(config *Config) []string {
	if config.View.InitialURL == "" {
		return nil
	}
	if _, err := url.Parse(config.View.InitialURL); err != nil {
		return []string{fmt.Sprintf("view.initial_url is not a valid URL: %v", err)}
	}
	return nil
}

func validateTiming(config *Config) []string {
	var validationErrors []string
	t := config.Timing

	if poll := t.PollInterval.Std(); poll < minPollInterval || poll > maxPollInterval {
		validationErrors = append(validationErrors,
			fmt.Sprintf("timing.poll_interval must be between %s and %s", minPollInterval, maxPollInterval))
	}
	if window := t.BoundsWindow.Std(); window <= 0 || window > maxBoundsWindow {
		validationErrors = append(validationErrors,
			fmt.Sprintf("timing.bounds_window must be greater than 0 and at most %s", maxBoundsWindow))
	}
	if t.EnvironmentPollInterval.Std() <= 0 {
		validationErrors = append(validationErrors, "timing.environment_poll_interval must be positive")
	}
	if t.EnvironmentMaxAttempts < 1 {
		validationErrors = append(validationErrors, "timing.environment_max_attempts must be at least 1")
	}
	if settle := t.ForceDisplaySettle.Std(); settle < 0 || settle > time.Second {
		validationErrors = append(validationErrors, "timing.force_display_settle must be between 0 and 1s")
	}
	if t.DegradedThreshold < 1 {
		validationErrors = append(validationErrors, "timing.degraded_threshold must be at least 1")
	}
	if t.ContainerRefreshEvery < 1 {
		validationErrors = append(validationErrors, "timing.container_refresh_every must be at least 1")
	}
	return validationErrors
}

func validateSupervisor(config *Config) []string {
	if config.Supervisor.MaxRecreates < 0 {
		return []string{"supervisor.max_recreates must be non-negative"}
	}
	return nil
}

func validateJournal(config *Config) []string {
	var validationErrors []string
	if config.Journal.MaxEntries < 0 {
		validationErrors = append(validationErrors, "journal.max_entries must be non-negative")
	}
	if config.Journal.Enabled && config.Journal.Path == "" {
		validationErrors = append(validationErrors, "journal.path cannot be empty when the journal is enabled")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	validLevels := []string{"trace", "debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of %s", strings.Join(validLevels, ", ")))
	}
	if config.Logging.Format != "console" && config.Logging.Format != "json" {
		validationErrors = append(validationErrors, "logging.format must be console or json")
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
