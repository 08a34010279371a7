package bootstrap

import (
	"context"
	"fmt"

	"github.com/bnema/nativeview/internal/domain/repository"
	"github.com/bnema/nativeview/internal/infrastructure/config"
	"github.com/bnema/nativeview/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/nativeview/internal/logging"
)

// Journal is the navigation journal backed by a lazily opened database.
// Nothing touches the disk until the first entry is recorded or read.
type Journal struct {
	Repo       repository.NavigationJournalRepository
	lazy       *sqlite.LazyDB
	maxEntries int
}

// OpenJournal prepares the journal, or returns nil when it is disabled.
func OpenJournal(cfg config.JournalConfig) (*Journal, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	path := cfg.Path
	if path == "" {
		var err error
		if path, err = config.GetDatabaseFile(); err != nil {
			return nil, fmt.Errorf("resolve journal path: %w", err)
		}
	}
	lazy := sqlite.NewLazyDB(path)
	return &Journal{
		Repo:       sqlite.NewLazyJournalRepository(lazy),
		lazy:       lazy,
		maxEntries: cfg.MaxEntries,
	}, nil
}

// Repository returns the repository, or nil for a disabled journal.
func (j *Journal) Repository() repository.NavigationJournalRepository {
	if j == nil {
		return nil
	}
	return j.Repo
}

// Path returns the database path.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.lazy.Path()
}

// Close prunes the journal to its size cap when it was used, then closes it.
func (j *Journal) Close(ctx context.Context) error {
	if j == nil {
		return nil
	}
	if j.lazy.IsInitialized() && j.maxEntries > 0 {
		removed, err := j.Repo.Prune(ctx, j.maxEntries)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("journal prune failed")
		} else if removed > 0 {
			logging.FromContext(ctx).Debug().Int64("removed", removed).Msg("journal pruned")
		}
	}
	return j.lazy.Close()
}
