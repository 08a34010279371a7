package bootstrap

import (
	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/infrastructure/config"
	"github.com/bnema/nativeview/internal/logging"
)

// NewLogger builds the process logger from the logging section. Environment
// overrides apply on top. quiet drops the stderr output, leaving only the
// session file when one is configured.
func NewLogger(cfg config.LoggingConfig, sessionID string, quiet bool) (zerolog.Logger, func(), error) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Level)
	if cfg.Format != "" {
		logCfg.Format = cfg.Format
	}
	logCfg = logging.ApplyEnv(logCfg)

	return logging.NewWithFile(logCfg, logging.FileConfig{
		Enabled:       cfg.FileDir != "",
		Dir:           cfg.FileDir,
		SessionID:     sessionID,
		MaxSizeMB:     cfg.MaxSizeMB,
		MaxBackups:    cfg.MaxBackups,
		MaxAgeDays:    cfg.MaxAgeDays,
		Compress:      cfg.Compress,
		WriteToStderr: !quiet,
	})
}
