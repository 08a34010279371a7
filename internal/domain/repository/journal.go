package repository

import (
	"context"

	"github.com/bnema/nativeview/internal/domain/entity"
)

// NavigationJournalRepository persists lifecycle and navigation events of views.
type NavigationJournalRepository interface {
	// Record appends an entry. ID and CreatedAt are filled in when zero.
	Record(ctx context.Context, entry *entity.JournalEntry) error

	// Recent returns the newest entries first.
	Recent(ctx context.Context, limit int) ([]*entity.JournalEntry, error)

	// BySession returns the entries of one process session, newest first.
	BySession(ctx context.Context, sessionID string, limit int) ([]*entity.JournalEntry, error)

	// CountByKind returns entry counts grouped by kind.
	CountByKind(ctx context.Context) (map[entity.JournalKind]int64, error)

	// Prune keeps the newest keep entries and returns how many were removed.
	Prune(ctx context.Context, keep int) (int64, error)
}
