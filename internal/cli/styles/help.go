package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// MonitorKeyMap defines keybindings for the simulate monitor.
type MonitorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Follow key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k MonitorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Follow, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k MonitorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Follow},
		{k.Help, k.Quit},
	}
}

// DefaultMonitorKeyMap returns the default monitor keybindings.
func DefaultMonitorKeyMap() MonitorKeyMap {
	return MonitorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f", "end"),
			key.WithHelp("f", "follow"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a help model using the theme's key and hint styles.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	sep := fg(theme.Border)
	h.Styles.ShortKey, h.Styles.FullKey = theme.HelpKey, theme.HelpKey
	h.Styles.ShortDesc, h.Styles.FullDesc = theme.HelpDesc, fg(theme.Text)
	h.Styles.ShortSeparator, h.Styles.FullSeparator = sep, sep
	return h
}
