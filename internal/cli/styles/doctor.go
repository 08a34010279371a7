package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/nativeview/internal/domain/entity"
)

// DoctorRenderer renders engine availability reports.
type DoctorRenderer struct {
	theme *Theme
}

func NewDoctorRenderer(theme *Theme) *DoctorRenderer {
	return &DoctorRenderer{theme: theme}
}

// DoctorReport is the input of DoctorRenderer. Engines are listed in probe order.
type DoctorReport struct {
	Selected    string
	Engines     []entity.Availability
	ConfigFile  string
	JournalPath string
}

// OK reports whether at least one engine can create views.
func (r DoctorReport) OK() bool {
	for _, e := range r.Engines {
		if e.Available {
			return true
		}
	}
	return false
}

func (r *DoctorRenderer) Render(report DoctorReport) string {
	header := r.renderHeader(report)

	sections := []string{r.renderEngines(report)}
	if paths := r.renderPaths(report); paths != "" {
		sections = append(sections, paths)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", strings.Join(sections, "\n\n"))
}

func (r *DoctorRenderer) renderHeader(report DoctorReport) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	statusStyle := r.theme.SuccessStyle
	statusText := "OK"
	if !report.OK() {
		statusStyle = r.theme.ErrorStyle
		statusText = "No engine available"
	}

	title := fmt.Sprintf("%s %s", iconStyle.Render(IconDoctor), r.theme.Title.Render("Doctor"))
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(statusText))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge)
}

func (r *DoctorRenderer) renderEngines(report DoctorReport) string {
	lines := make([]string, 0, len(report.Engines))
	for _, e := range report.Engines {
		lines = append(lines, r.renderEngine(e, e.Engine == report.Selected))
	}

	header := r.theme.BoxHeader.Render(fmt.Sprintf("%s Engines", r.theme.Highlight.Render(IconPackage)))
	return r.theme.Box.Render(header + "\n" + strings.Join(lines, "\n"))
}

func (r *DoctorRenderer) renderEngine(e entity.Availability, selected bool) string {
	icon := IconCheck
	statusStyle := r.theme.SuccessStyle
	status := "Available"
	if !e.Available {
		icon = IconX
		statusStyle = r.theme.ErrorStyle
		status = "Unavailable"
	}

	name := r.theme.Normal.Render(e.Engine)
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(status))
	line := fmt.Sprintf("%s %s %s", statusStyle.Render(icon), name, badge)
	if selected {
		line += " " + r.theme.Badge.Render("selected")
	}

	details := []string{}
	if e.Platform != "" {
		details = append(details, e.Platform)
	}
	if e.Version != "" {
		details = append(details, e.Version)
	}
	if len(details) > 0 {
		line += "\n  " + r.theme.Subtle.Render(strings.Join(details, " · "))
	}
	if !e.Available && e.ErrorMessage != "" {
		line += "\n  " + r.theme.WarningStyle.Render(e.ErrorMessage)
	}
	if !e.Available && e.DownloadURL != "" {
		line += fmt.Sprintf("\n  %s %s", r.theme.Subtle.Render("Install from"), r.theme.Highlight.Render(e.DownloadURL))
	}
	return line
}

func (r *DoctorRenderer) renderPaths(report DoctorReport) string {
	lines := []string{}
	if report.ConfigFile != "" {
		lines = append(lines, r.pathLine(IconConfig, "Config", report.ConfigFile))
	}
	if report.JournalPath != "" {
		lines = append(lines, r.pathLine(IconDatabase, "Journal", report.JournalPath))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func (r *DoctorRenderer) pathLine(icon, label, value string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("%s %s %s", iconStyle.Render(icon), r.theme.Subtle.Render(label), r.theme.Normal.Render(value))
}
