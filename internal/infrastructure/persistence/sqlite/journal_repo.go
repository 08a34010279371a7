package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/domain/repository"
)

const (
	journalColumns = `id, session_id, view_id, handle, kind, url, detail, created_at`

	insertJournal = `INSERT INTO navigation_journal (session_id, view_id, handle, kind, url, detail, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectRecent = `SELECT ` + journalColumns + ` FROM navigation_journal
ORDER BY id DESC LIMIT ?`
	selectBySession = `SELECT ` + journalColumns + ` FROM navigation_journal
WHERE session_id = ? ORDER BY id DESC LIMIT ?`
	countByKind  = `SELECT kind, COUNT(*) FROM navigation_journal GROUP BY kind`
	pruneJournal = `DELETE FROM navigation_journal
WHERE id NOT IN (SELECT id FROM navigation_journal ORDER BY id DESC LIMIT ?)`

	defaultListLimit = 100
)

// dbProvider hands out the connection; satisfied by *LazyDB and an eager wrapper.
type dbProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
}

type eagerDB struct{ db *sql.DB }

func (e eagerDB) DB(context.Context) (*sql.DB, error) { return e.db, nil }

type journalRepo struct {
	provider dbProvider
	now      func() time.Time
}

// NewJournalRepository creates a SQLite-backed navigation journal.
func NewJournalRepository(db *sql.DB) repository.NavigationJournalRepository {
	return &journalRepo{provider: eagerDB{db: db}, now: time.Now}
}

// NewLazyJournalRepository creates a journal that opens its database on first use.
func NewLazyJournalRepository(lazy *LazyDB) repository.NavigationJournalRepository {
	return &journalRepo{provider: lazy, now: time.Now}
}

func (r *journalRepo) Record(ctx context.Context, entry *entity.JournalEntry) error {
	if entry == nil {
		return fmt.Errorf("journal entry is nil")
	}
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}

	res, err := db.ExecContext(ctx, insertJournal,
		entry.SessionID,
		entry.ViewID,
		int64(entry.Handle),
		string(entry.Kind),
		entry.URL,
		entry.Detail,
		entry.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record journal entry: %w", err)
	}
	if entry.ID == 0 {
		if id, idErr := res.LastInsertId(); idErr == nil {
			entry.ID = id
		}
	}
	return nil
}

func (r *journalRepo) Recent(ctx context.Context, limit int) ([]*entity.JournalEntry, error) {
	return r.list(ctx, selectRecent, normalizeLimit(limit))
}

func (r *journalRepo) BySession(ctx context.Context, sessionID string, limit int) ([]*entity.JournalEntry, error) {
	return r.list(ctx, selectBySession, sessionID, normalizeLimit(limit))
}

func (r *journalRepo) list(ctx context.Context, query string, args ...any) ([]*entity.JournalEntry, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	entries := []*entity.JournalEntry{}
	for rows.Next() {
		var (
			e         entity.JournalEntry
			handle    int64
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.ViewID, &handle, &kind, &e.URL, &e.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.Handle = entity.WebViewHandle(handle)
		e.Kind = entity.JournalKind(kind)
		e.CreatedAt = time.UnixMilli(createdAt)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *journalRepo) CountByKind(ctx context.Context) (map[entity.JournalKind]int64, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, countByKind)
	if err != nil {
		return nil, fmt.Errorf("failed to count journal entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.JournalKind]int64)
	for rows.Next() {
		var (
			kind  string
			count int64
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		counts[entity.JournalKind(kind)] = count
	}
	return counts, rows.Err()
}

func (r *journalRepo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative, got %d", keep)
	}
	db, err := r.provider.DB(ctx)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, pruneJournal, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}
	return res.RowsAffected()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
