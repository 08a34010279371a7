package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/nativeview/internal/domain/entity"
	"github.com/bnema/nativeview/internal/logging"
)

const journalTimeFormat = "2006-01-02 15:04:05"

// JournalRenderer renders navigation journal entries.
type JournalRenderer struct {
	theme *Theme
}

func NewJournalRenderer(theme *Theme) *JournalRenderer {
	return &JournalRenderer{theme: theme}
}

// RenderEntries renders one line per entry, newest first as given.
func (r *JournalRenderer) RenderEntries(entries []*entity.JournalEntry) string {
	if len(entries) == 0 {
		return r.theme.Subtle.Render("No journal entries.")
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, r.theme.Title.Render(fmt.Sprintf("%s Journal", IconLogs))+" "+
		r.theme.Subtle.Render(fmt.Sprintf("(%d)", len(entries))))
	for _, e := range entries {
		lines = append(lines, r.renderEntry(e))
	}
	return strings.Join(lines, "\n")
}

func (r *JournalRenderer) renderEntry(e *entity.JournalEntry) string {
	ts := r.theme.Subtle.Render(e.CreatedAt.Local().Format(journalTimeFormat))
	session := r.theme.BadgeMuted.Render(logging.ShortSessionID(e.SessionID))
	kind := r.kindStyle(e.Kind).Width(20).Render(string(e.Kind))
	view := r.theme.Normal.Render(e.ViewID + "/" + e.Handle.String())

	line := fmt.Sprintf("%s %s %s %s", ts, session, kind, view)
	if e.URL != "" {
		line += " " + r.theme.Highlight.Render(e.URL)
	}
	if e.Detail != "" {
		line += " " + r.theme.Subtle.Render(e.Detail)
	}
	return line
}

func (r *JournalRenderer) kindStyle(kind entity.JournalKind) lipgloss.Style {
	switch kind {
	case entity.JournalURLCommitted:
		return r.theme.SuccessStyle
	case entity.JournalNavigationRejected:
		return r.theme.WarningStyle
	case entity.JournalCrashed, entity.JournalNativeFailure:
		return r.theme.ErrorStyle
	default:
		return r.theme.Highlight
	}
}

// RenderStats renders entry counts per kind, sorted by kind.
func (r *JournalRenderer) RenderStats(counts map[entity.JournalKind]int64) string {
	if len(counts) == 0 {
		return r.theme.Subtle.Render("No journal entries.")
	}

	kinds := make([]string, 0, len(counts))
	var total int64
	for k, n := range counts {
		kinds = append(kinds, string(k))
		total += n
	}
	sort.Strings(kinds)

	lines := make([]string, 0, len(kinds)+1)
	for _, k := range kinds {
		kind := entity.JournalKind(k)
		lines = append(lines, fmt.Sprintf("%s %s",
			r.kindStyle(kind).Width(20).Render(k),
			r.theme.Normal.Render(fmt.Sprintf("%d", counts[kind]))))
	}
	lines = append(lines, fmt.Sprintf("%s %s",
		r.theme.Subtitle.Width(20).Render("total"),
		r.theme.Title.Render(fmt.Sprintf("%d", total))))

	header := r.theme.BoxHeader.Render(fmt.Sprintf("%s Journal stats", r.theme.Highlight.Render(IconDatabase)))
	return r.theme.Box.Render(header + "\n" + strings.Join(lines, "\n"))
}
