package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/domain/repository"
)

const journalQueueSize = 64

// journalRecorder writes journal entries from a background goroutine so that
// engine threads never wait on storage.
type journalRecorder struct {
	repo      repository.NavigationJournalRepository
	sessionID string
	viewID    string
	logger    zerolog.Logger

	once  sync.Once
	mu    sync.Mutex
	queue chan *entity.JournalEntry
	done  chan struct{}
}

func newJournalRecorder(repo repository.NavigationJournalRepository, sessionID, viewID string, logger zerolog.Logger) *journalRecorder {
	return &journalRecorder{
		repo:      repo,
		sessionID: sessionID,
		viewID:    viewID,
		logger:    logger,
	}
}

func (j *journalRecorder) start(ctx context.Context) {
	if j == nil || j.repo == nil {
		return
	}
	j.once.Do(func() {
		j.mu.Lock()
		j.queue = make(chan *entity.JournalEntry, journalQueueSize)
		j.done = make(chan struct{})
		queue, done := j.queue, j.done
		j.mu.Unlock()

		go func() {
			defer close(done)
			for entry := range queue {
				if err := j.repo.Record(ctx, entry); err != nil {
					j.logger.Warn().Err(err).Str("kind", string(entry.Kind)).Msg("journal write failed")
				}
			}
		}()
	})
}

func (j *journalRecorder) record(h entity.WebViewHandle, kind entity.JournalKind, url, detail string) {
	if j == nil || j.repo == nil {
		return
	}
	entry := &entity.JournalEntry{
		SessionID: j.sessionID,
		ViewID:    j.viewID,
		Handle:    h,
		Kind:      kind,
		URL:       url,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.queue == nil {
		return
	}
	select {
	case j.queue <- entry:
	default:
		j.logger.Warn().Str("kind", string(kind)).Msg("journal queue full, entry dropped")
	}
}

// close drains pending entries and stops the writer.
func (j *journalRecorder) close() {
	if j == nil {
		return
	}
	j.mu.Lock()
	queue, done := j.queue, j.done
	j.queue = nil
	j.mu.Unlock()

	if queue == nil {
		return
	}
	close(queue)
	<-done
}
