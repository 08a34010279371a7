package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/nativeview/internal/domain/build"
)

// AboutRenderer renders build info in fastfetch style.
type AboutRenderer struct {
	theme *Theme
}

// NewAboutRenderer creates a new about renderer with the given theme.
func NewAboutRenderer(theme *Theme) *AboutRenderer {
	return &AboutRenderer{theme: theme}
}

// Render renders build info with the logo and one line per field.
// engineVersion is omitted when empty.
func (r *AboutRenderer) Render(info build.Info, engineVersion string) string {
	logoStyle := lipgloss.NewStyle().Foreground(r.theme.Accent).Bold(true)
	logo := logoStyle.MarginTop(1).MarginLeft(2).Render(`██▄  ██
██▀█▄██
██  ▀██
██   ██`)

	return lipgloss.JoinHorizontal(lipgloss.Top, logo, "   ", r.renderInfoLines(info, engineVersion))
}

func (r *AboutRenderer) renderInfoLines(info build.Info, engineVersion string) string {
	keyStyle := r.theme.Subtle
	valStyle := r.theme.Highlight
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	line := func(icon, key, val string) string {
		return fmt.Sprintf("%s %s %s", iconStyle.Render(icon), keyStyle.Render(key), valStyle.Render(val))
	}

	lines := []string{
		line(IconVersion, "Version", info.Version),
		line(IconGitBranch, "Commit", info.Commit),
		line(IconCalendar, "Built", info.BuildDate),
		line(IconGo, "Go", info.GoVersion),
	}
	if engineVersion != "" {
		lines = append(lines, line(IconGlobe, "Engine", engineVersion))
	}
	lines = append(lines, "", fmt.Sprintf("%s %s", iconStyle.Render(IconGithub), keyStyle.Render(build.RepoURL())))

	return strings.Join(lines, "\n")
}
