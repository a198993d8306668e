package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Width returns the display width of s, ignoring ANSI escape sequences.
func Width(s string) int {
	return lipgloss.Width(s)
}

// FitWidth returns the widest display width among values.
func FitWidth(values []string) int {
	max := 0
	for _, v := range values {
		if w := Width(v); w > max {
			max = w
		}
	}
	return max
}

// PadRight pads value with spaces to width+extra columns. A value already
// wider than that is returned unchanged.
func PadRight(value string, width, extra int) string {
	target := width + extra
	if w := Width(value); w < target {
		return value + strings.Repeat(" ", target-w)
	}
	return value
}
