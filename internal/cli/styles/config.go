package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config command results.
type ConfigRenderer struct {
	theme *Theme
}

func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderWritten reports a file written by config init or config schema.
func (r *ConfigRenderer) RenderWritten(label, path string) string {
	return fmt.Sprintf("%s %s %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Normal.Render(label),
		r.theme.Highlight.Render(path))
}

// RenderExists reports a config file left untouched.
func (r *ConfigRenderer) RenderExists(path string) string {
	return fmt.Sprintf("%s %s %s\n  %s",
		r.theme.WarningStyle.Render(IconWarning),
		r.theme.Normal.Render("Config already exists"),
		r.theme.Highlight.Render(path),
		r.theme.Subtle.Render("use --force to overwrite"))
}

// RenderPath renders the config file path and whether it exists.
func (r *ConfigRenderer) RenderPath(path string, exists bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	state := r.theme.SuccessStyle.Render("exists")
	if !exists {
		state = r.theme.Subtle.Render("not created yet")
	}
	return fmt.Sprintf("%s %s %s", iconStyle.Render(IconConfig), r.theme.Normal.Render(path), state)
}
