package config

import (
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the configuration whenever the file changes on disk.
// A reload that fails validation keeps the previous configuration.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching {
		return nil
	}

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		m.logger.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config file changed")
		if err := m.Reload(); err != nil {
			m.logger.Warn().Err(err).Msg("config reload rejected, keeping previous values")
		}
	})
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

// OnConfigChange registers a callback run after each successful reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

// Reload re-reads the config file and notifies callbacks on success.
// Callbacks run without the manager lock held, each with its own copy.
func (m *Manager) Reload() error {
	snapshot, callbacks, err := m.reload()
	if err != nil {
		return err
	}
	for _, callback := range callbacks {
		c := snapshot
		callback(&c)
	}
	return nil
}

func (m *Manager) reload() (Config, []func(*Config), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.viper.ReadInConfig(); err != nil {
		return Config{}, nil, err
	}
	cfg, err := m.decode()
	if err != nil {
		return Config{}, nil, err
	}
	m.config = cfg
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	return *cfg, callbacks, nil
}
