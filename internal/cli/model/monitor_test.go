package model

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/nativeview/internal/cli/styles"
	"github.com/bnema/nativeview/internal/domain/entity"
)

func TestMonitorModel_ConsumesFeedUntilClosed(t *testing.T) {
	feed := make(chan MonitorEvent, 2)
	feed <- MonitorEvent{
		Line:  styles.EventLine{Kind: "url", Detail: "https://example.com/"},
		State: entity.WebViewState{CurrentURL: "https://example.com/", PageTitle: "Example"},
	}
	close(feed)

	m := NewMonitorModel(styles.NewTheme(), feed, nil)

	msg := m.waitForEvent()
	next, cmd := m.Update(msg)
	m = next.(MonitorModel)
	require.NotNil(t, cmd, "monitor keeps reading the feed")
	assert.Len(t, m.events, 1)
	assert.Equal(t, "Example", m.state.PageTitle)

	next, _ = m.Update(cmd())
	m = next.(MonitorModel)
	assert.False(t, m.running)

	view := m.View()
	assert.Contains(t, view, "finished")
	assert.Contains(t, view, "https://example.com/")
}

func TestMonitorModel_QuitRunsCallback(t *testing.T) {
	called := false
	m := NewMonitorModel(styles.NewTheme(), make(chan MonitorEvent), func() { called = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, called)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMonitorModel_FollowKeepsTailVisible(t *testing.T) {
	m := NewMonitorModel(styles.NewTheme(), nil, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m = next.(MonitorModel)

	for i := 0; i < 30; i++ {
		next, _ = m.Update(monitorEventMsg{Line: styles.EventLine{Kind: "step", Label: fmt.Sprintf("step-%02d", i)}})
		m = next.(MonitorModel)
	}

	assert.Contains(t, m.renderLog(), "step-29")
	assert.NotContains(t, m.renderLog(), "step-00")

	for i := 0; i < 40; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = next.(MonitorModel)
	}
	assert.Contains(t, m.renderLog(), "step-00")
	assert.False(t, m.follow)
}

func TestMonitorModel_CapsEventHistory(t *testing.T) {
	m := NewMonitorModel(styles.NewTheme(), nil, nil)
	for i := 0; i < maxMonitorEvents+10; i++ {
		next, _ := m.Update(monitorEventMsg{Line: styles.EventLine{Kind: "state"}})
		m = next.(MonitorModel)
	}
	assert.Len(t, m.events, maxMonitorEvents)
}
