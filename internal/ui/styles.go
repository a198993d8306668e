package ui

import "github.com/charmbracelet/lipgloss"

// ANSI256 color codes.
const (
	colorAccent  = "74"  // blue
	colorCmd     = "250" // light gray
	colorMuted   = "245" // medium gray
	colorTitle   = "220" // yellow
	colorError   = "196" // red
	colorSuccess = "2"   // green
	colorPrompt  = "87"  // cyan
)

var (
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))
	cmdStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorCmd))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorError))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorSuccess))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrompt))
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

var noColor bool

func render(style lipgloss.Style, s string) string {
	if noColor {
		return s
	}
	return style.Render(s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return render(accentStyle, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return render(mutedStyle, s) }

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string { return render(cmdStyle, s) }

// RenderDim returns s faint.
func RenderDim(s string) string { return render(dimStyle, s) }

// RenderTitle returns s as a bold yellow section title.
func RenderTitle(s string) string { return render(titleStyle, s) }

// RenderError returns s in bold red.
func RenderError(s string) string { return render(errorStyle, s) }

// RenderSuccess returns s in bold green.
func RenderSuccess(s string) string { return render(successStyle, s) }

// RenderPrompt returns s in the prompt (cyan) color.
func RenderPrompt(s string) string { return render(promptStyle, s) }

// RenderBold returns s in bold.
func RenderBold(s string) string { return render(boldStyle, s) }

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

// ColorEnabled reports whether Render* functions emit styling.
func ColorEnabled() bool { return !noColor }
