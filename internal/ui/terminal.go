package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is used when the terminal size cannot be determined.
const DefaultWidth = 80

// ShouldUseColor returns true when ANSI colors should be used on stdout.
// It respects NO_COLOR, CLICOLOR_FORCE, CLICOLOR, and TTY detection.
func ShouldUseColor() bool {
	// Any non-empty NO_COLOR disables color (https://no-color.org).
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if forceColor() {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func forceColor() bool {
	return strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1"
}

// ConfigureColor applies the color policy once at startup. disable comes
// from --no-color. When color is forced onto a non-TTY, lipgloss would
// otherwise detect an ASCII profile and drop the styling.
func ConfigureColor(disable bool) {
	if disable || !ShouldUseColor() {
		ForceNoColor()
		return
	}
	if forceColor() {
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the column count of stdout, or DefaultWidth.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
