package entity

import "time"

// JournalKind classifies a navigation journal entry.
type JournalKind string

const (
	JournalURLCommitted       JournalKind = "url_committed"
	JournalNavigationRejected JournalKind = "navigation_rejected"
	JournalNativeFailure      JournalKind = "native_failure"
	JournalCrashed            JournalKind = "crashed"
	JournalRecreated          JournalKind = "recreated"
)

// JournalEntry is one recorded event for a view.
type JournalEntry struct {
	ID        int64
	SessionID string
	ViewID    string
	Handle    WebViewHandle
	Kind      JournalKind
	URL       string
	Detail    string
	CreatedAt time.Time
}
