package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randywick/gita/internal/ui"
)

var (
	// Unindented line ending with ":" ("Repositories:", "Flags:").
	reSectionHeader = regexp.MustCompile(`(?m)^([A-Z][^\n]*:)[ \t]*$`)

	// Two-space indent, a command name, then at least two spaces.
	reCommandName = regexp.MustCompile(`(?m)^(  )([a-z][\w-]*)(  )`)

	// Flag value types, e.g. "--config string", "--timeout duration".
	reFlagValue = regexp.MustCompile(`(--?[\w-]+\s+)(string|int|duration|stringSlice)\b`)

	// Cobra's default annotations, e.g. (default "~/.config/gita/config.toml").
	reDefaultValue = regexp.MustCompile(`\(default [^)]*\)`)
)

func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if !ui.ColorEnabled() || !ui.ShouldUseColor() {
			_ = cmd.Usage()
			return
		}

		var buf bytes.Buffer
		cmd.SetOut(&buf)
		_ = cmd.Usage()
		cmd.SetOut(out)

		fmt.Fprint(out, colorizeHelp(buf.String()))
	}
}

// colorizeHelp styles section headers, command names, flag types and
// defaults in cobra's plain usage text. "Usage:" is left alone.
func colorizeHelp(s string) string {
	s = reSectionHeader.ReplaceAllStringFunc(s, func(m string) string {
		m = strings.TrimSpace(m)
		if m == "Usage:" {
			return m
		}
		return ui.RenderAccent(m)
	})
	s = reCommandName.ReplaceAllStringFunc(s, func(m string) string {
		parts := reCommandName.FindStringSubmatch(m)
		return parts[1] + ui.RenderCommand(parts[2]) + parts[3]
	})
	s = reFlagValue.ReplaceAllStringFunc(s, func(m string) string {
		parts := reFlagValue.FindStringSubmatch(m)
		return parts[1] + ui.RenderMuted(parts[2])
	})
	return reDefaultValue.ReplaceAllStringFunc(s, ui.RenderMuted)
}
