// Package model holds the bubbletea models of the nativeview CLI.
package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/nativeview/internal/cli/styles"
	"github.com/bnema/nativeview/internal/domain/entity"
)

const maxMonitorEvents = 500

// MonitorEvent is one simulator observation fed to the monitor.
type MonitorEvent struct {
	Line  styles.EventLine
	State entity.WebViewState
}

// monitorEventMsg wraps an event read from the feed.
type monitorEventMsg MonitorEvent

// monitorClosedMsg is sent once the feed is closed.
type monitorClosedMsg struct{}

// MonitorModel shows a live view state panel above the simulator event log.
type MonitorModel struct {
	spinner spinner.Model
	help    help.Model
	keys    styles.MonitorKeyMap

	events  []styles.EventLine
	state   entity.WebViewState
	offset  int
	follow  bool
	running bool
	width   int
	height  int

	feed     <-chan MonitorEvent
	onQuit   func()
	theme    *styles.Theme
	renderer *styles.EventRenderer
}

// NewMonitorModel reads events from feed until it is closed. onQuit runs when
// the user quits and may be nil.
func NewMonitorModel(theme *styles.Theme, feed <-chan MonitorEvent, onQuit func()) MonitorModel {
	return MonitorModel{
		spinner:  styles.NewDefaultSpinner(theme),
		help:     styles.NewStyledHelp(theme),
		keys:     styles.DefaultMonitorKeyMap(),
		follow:   true,
		running:  true,
		width:    80,
		height:   24,
		feed:     feed,
		onQuit:   onQuit,
		theme:    theme,
		renderer: styles.NewEventRenderer(theme),
	}
}

// Init implements tea.Model.
func (m MonitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent)
}

func (m MonitorModel) waitForEvent() tea.Msg {
	ev, ok := <-m.feed
	if !ok {
		return monitorClosedMsg{}
	}
	return monitorEventMsg(ev)
}

// Update implements tea.Model.
func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.follow = false
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, m.keys.Down):
			m.offset++
			m.clampOffset()
		case key.Matches(msg, m.keys.Follow):
			m.follow = true
			m.clampOffset()
		}

	case monitorEventMsg:
		m.state = msg.State
		m.events = append(m.events, msg.Line)
		if len(m.events) > maxMonitorEvents {
			m.events = m.events[len(m.events)-maxMonitorEvents:]
		}
		m.clampOffset()
		return m, m.waitForEvent

	case monitorClosedMsg:
		m.running = false

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m MonitorModel) logHeight() int {
	// state panel, headers and help take the rest
	h := m.height - 14
	if h < 3 {
		h = 3
	}
	return h
}

func (m *MonitorModel) clampOffset() {
	maxOffset := len(m.events) - m.logHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.follow || m.offset > maxOffset {
		m.offset = maxOffset
	}
}

// View implements tea.Model.
func (m MonitorModel) View() string {
	t := m.theme

	status := t.SuccessStyle.Render("finished")
	if m.running {
		status = m.spinner.View() + " " + t.Highlight.Render("running")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		t.Title.Render("nativeview simulate"), "  ", status,
		"  ", t.BadgeMuted.Render(fmt.Sprintf("%d events", len(m.events))))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.renderState(),
		"",
		m.renderLog(),
		"",
		m.help.View(m.keys),
	)
}

func (m MonitorModel) renderState() string {
	t := m.theme
	st := m.state
	flag := func(label string, on bool) string {
		if on {
			return t.Badge.Render(label)
		}
		return t.BadgeMuted.Render(label)
	}
	orDash := func(s string) string {
		if s == "" {
			return t.Subtle.Render("-")
		}
		return t.Normal.Render(s)
	}

	lines := []string{
		fmt.Sprintf("%s %s", t.Subtle.Width(11).Render("current"), orDash(st.CurrentURL)),
		fmt.Sprintf("%s %s", t.Subtle.Width(11).Render("navigating"), orDash(st.NavigatingURL)),
		fmt.Sprintf("%s %s", t.Subtle.Width(11).Render("title"), orDash(st.PageTitle)),
		fmt.Sprintf("%s %s %s %s %s",
			t.Subtle.Width(11).Render("progress"),
			t.Highlight.Render(fmt.Sprintf("%3.0f%%", st.LoadingProgress*100)),
			flag("loading", st.IsLoading),
			flag("back", st.CanGoBack),
			flag("forward", st.CanGoForward)),
	}
	return t.Box.Render(strings.Join(lines, "\n"))
}

func (m MonitorModel) renderLog() string {
	if len(m.events) == 0 {
		return m.theme.Subtle.Render("Waiting for events...")
	}
	end := m.offset + m.logHeight()
	if end > len(m.events) {
		end = len(m.events)
	}
	lines := make([]string, 0, end-m.offset)
	for _, ev := range m.events[m.offset:end] {
		lines = append(lines, m.renderer.Render(ev))
	}
	return strings.Join(lines, "\n")
}
