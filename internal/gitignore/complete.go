package gitignore

import (
	"sort"
	"strings"
)

// MaxCompletions caps the number of hits Complete returns.
const MaxCompletions = 10

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// Complete returns the types containing partial, ignoring case and spaces.
// Types starting with partial come first. With no hits it returns every
// type.
func Complete(types []string, partial string) []string {
	p := normalize(partial)
	var hits []string
	for _, t := range types {
		if strings.Contains(normalize(t), p) {
			hits = append(hits, t)
		}
	}
	if len(hits) == 0 {
		return append([]string(nil), types...)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return strings.HasPrefix(normalize(hits[i]), p) && !strings.HasPrefix(normalize(hits[j]), p)
	})
	if len(hits) > MaxCompletions {
		hits = hits[:MaxCompletions]
	}
	return hits
}

// Match returns the type equal to input, ignoring case.
func Match(types []string, input string) (string, bool) {
	for _, t := range types {
		if strings.EqualFold(t, input) {
			return t, true
		}
	}
	return "", false
}

// wrap joins words with spaces into lines of at most width columns. A word
// longer than width gets a line of its own.
func wrap(words []string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, w := range words {
		if line.Len() > 0 && line.Len()+1+len(w) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
