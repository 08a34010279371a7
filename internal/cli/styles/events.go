package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// EventLine is one simulator observation in display form.
type EventLine struct {
	At     time.Duration
	Kind   string
	Label  string
	Detail string
}

// EventRenderer renders simulator events as log-like lines.
type EventRenderer struct {
	theme *Theme
}

func NewEventRenderer(theme *Theme) *EventRenderer {
	return &EventRenderer{theme: theme}
}

func (r *EventRenderer) Render(ev EventLine) string {
	at := r.theme.Subtle.Render(fmt.Sprintf("%8s", ev.At.Truncate(time.Millisecond)))
	icon, style := r.kindStyle(ev.Kind)
	kind := style.Width(12).Render(ev.Kind)

	line := fmt.Sprintf("%s %s %s", at, style.Render(icon), kind)
	if ev.Label != "" {
		line += " " + r.theme.Normal.Render(ev.Label)
	}
	if ev.Detail != "" {
		line += " " + r.theme.Subtle.Render(ev.Detail)
	}
	return line
}

func (r *EventRenderer) kindStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case "step":
		return IconPlay, r.theme.Highlight
	case "url":
		return IconGlobe, r.theme.SuccessStyle
	case "rejected":
		return IconBlock, r.theme.WarningStyle
	case "degraded":
		return IconWarning, r.theme.WarningStyle
	case "recreated":
		return IconRestore, r.theme.Highlight
	case "unavailable", "error":
		return IconX, r.theme.ErrorStyle
	case "done":
		return IconStop, r.theme.Title
	default:
		return IconInfo, r.theme.Subtle
	}
}
