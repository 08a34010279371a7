package styles

import (
	"github.com/charmbracelet/bubbles/spinner"
)

// NewDefaultSpinner creates the accent-colored spinner shown while a simulation runs.
func NewDefaultSpinner(theme *Theme) spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(fg(theme.Accent)))
}
