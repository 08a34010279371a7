// Package styles renders nativeview CLI output with lipgloss.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Dark terminal colors used by every renderer.
const (
	colorBase    = lipgloss.Color("#0a0a0b")
	colorRaised  = lipgloss.Color("#2d2d2d")
	colorText    = lipgloss.Color("#ffffff")
	colorMuted   = lipgloss.Color("#909090")
	colorAccent  = lipgloss.Color("#38bdf8")
	colorBorder  = lipgloss.Color("#333333")
	colorError   = lipgloss.Color("#ef4444")
	colorWarning = lipgloss.Color("#f59e0b")
	colorSuccess = lipgloss.Color("#4ade80")
)

// Theme holds the colors and derived styles shared by the renderers and
// the monitor TUI.
type Theme struct {
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Border lipgloss.Color

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Box       lipgloss.Style
	BoxHeader lipgloss.Style
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// NewTheme returns the dark theme.
func NewTheme() *Theme {
	return &Theme{
		Text:   colorText,
		Muted:  colorMuted,
		Accent: colorAccent,
		Border: colorBorder,

		Title:        fg(colorText).Bold(true),
		Subtitle:     fg(colorMuted).Bold(true),
		Normal:       fg(colorText),
		Subtle:       fg(colorMuted),
		Highlight:    fg(colorAccent).Bold(true),
		ErrorStyle:   fg(colorError),
		WarningStyle: fg(colorWarning),
		SuccessStyle: fg(colorSuccess),

		Badge:      fg(colorBase).Background(colorAccent).Padding(0, 1),
		BadgeMuted: fg(colorText).Background(colorRaised).Padding(0, 1),

		HelpKey:  fg(colorAccent),
		HelpDesc: fg(colorMuted),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2),
		BoxHeader: fg(colorText).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorBorder).
			MarginBottom(1),
	}
}
