package styles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/nativeview/internal/domain/build"
	"github.com/bnema/nativeview/internal/domain/entity"
)

func TestDoctorRenderer_ShowsInstallHintForMissingEngine(t *testing.T) {
	r := NewDoctorRenderer(NewTheme())
	report := DoctorReport{
		Selected: "headless",
		Engines: []entity.Availability{
			{Engine: "native", Platform: "linux", ErrorMessage: "library not found", DownloadURL: "https://example.com/runtime"},
			{Engine: "headless", Available: true, Version: "1"},
		},
		ConfigFile: "/tmp/nv/config.toml",
	}

	out := r.Render(report)

	assert.True(t, report.OK())
	assert.Contains(t, out, "library not found")
	assert.Contains(t, out, "https://example.com/runtime")
	assert.Contains(t, out, "selected")
	assert.Contains(t, out, "/tmp/nv/config.toml")
}

func TestDoctorReport_NotOKWithoutEngines(t *testing.T) {
	report := DoctorReport{Engines: []entity.Availability{{Engine: "native"}}}
	assert.False(t, report.OK())
	assert.Contains(t, NewDoctorRenderer(NewTheme()).Render(report), "No engine available")
}

func TestJournalRenderer(t *testing.T) {
	r := NewJournalRenderer(NewTheme())

	t.Run("empty", func(t *testing.T) {
		assert.Contains(t, r.RenderEntries(nil), "No journal entries")
		assert.Contains(t, r.RenderStats(nil), "No journal entries")
	})

	t.Run("entries", func(t *testing.T) {
		out := r.RenderEntries([]*entity.JournalEntry{{
			SessionID: "20260101_120000_beef",
			ViewID:    "main",
			Handle:    entity.WebViewHandle(3),
			Kind:      entity.JournalNavigationRejected,
			URL:       "https://blocked.example/",
			CreatedAt: time.Now(),
		}})
		assert.Contains(t, out, "navigation_rejected")
		assert.Contains(t, out, "main/wv-3")
		assert.Contains(t, out, "beef")
		assert.Contains(t, out, "https://blocked.example/")
	})

	t.Run("stats total", func(t *testing.T) {
		out := r.RenderStats(map[entity.JournalKind]int64{
			entity.JournalURLCommitted: 4,
			entity.JournalCrashed:      1,
		})
		assert.Contains(t, out, "url_committed")
		assert.Contains(t, out, "5")
	})
}

func TestEventRenderer(t *testing.T) {
	out := NewEventRenderer(NewTheme()).Render(EventLine{
		At:     1500 * time.Millisecond,
		Kind:   "rejected",
		Detail: "https://ads.example/",
	})
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "https://ads.example/")
}

func TestAboutRenderer_EngineVersionOptional(t *testing.T) {
	r := NewAboutRenderer(NewTheme())
	info := build.Info{Version: "v1.2.3", Commit: "abc123", BuildDate: "2026-01-01", GoVersion: "go1.24"}

	assert.NotContains(t, r.Render(info, ""), "Engine")
	out := r.Render(info, "webkitgtk 2.48.1")
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "webkitgtk 2.48.1")
	assert.Contains(t, out, build.RepoURL())
}

func TestConfigRenderer(t *testing.T) {
	r := NewConfigRenderer(NewTheme())
	assert.Contains(t, r.RenderPath("/x/config.toml", false), "not created yet")
	assert.Contains(t, r.RenderPath("/x/config.toml", true), "exists")
	assert.Contains(t, r.RenderExists("/x/config.toml"), "--force")
	assert.Contains(t, r.RenderWritten("Wrote", "/x/schema.json"), "/x/schema.json")
}
