package gitignore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/randywick/gita/internal/ui"
)

// TerminalPrompter reads a line from the terminal with <tab> completion.
type TerminalPrompter struct {
	In  io.Reader // nil uses stdin
	Out io.Writer // nil uses stdout
}

// Prompt runs a one-line input program and returns what was entered.
func (p TerminalPrompter) Prompt(ctx context.Context, message string, types []string) (string, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(newPromptModel(message, types), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}
	m := final.(promptModel)
	if m.aborted {
		return "", ErrPromptAborted
	}
	return m.input.Value(), nil
}

type promptModel struct {
	message string
	types   []string
	input   textinput.Model
	hits    []string // shown when a tab press is ambiguous
	aborted bool
	done    bool
}

func newPromptModel(message string, types []string) promptModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 100
	ti.Focus()
	return promptModel{message: message, types: types, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyTab:
			return m.complete(), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// complete fills the input when exactly one type matches, or extends it to
// the common prefix of the hits and lists them otherwise.
func (m promptModel) complete() promptModel {
	value := m.input.Value()
	hits := Complete(m.types, value)
	m.hits = nil

	switch {
	case len(hits) == 1:
		m.input.SetValue(hits[0])
		m.input.CursorEnd()
	case len(hits) > 1:
		if prefix := commonPrefix(hits); len(prefix) > len(value) && strings.HasPrefix(strings.ToLower(prefix), strings.ToLower(value)) {
			m.input.SetValue(prefix)
			m.input.CursorEnd()
		}
		m.hits = hits
	}
	return m
}

func commonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func (m promptModel) View() string {
	if m.done || m.aborted {
		return m.message + "\n" + m.input.Prompt + m.input.Value() + "\n"
	}
	var b strings.Builder
	b.WriteString(m.message)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if len(m.hits) > 0 {
		b.WriteString("\n")
		b.WriteString(ui.RenderDim(strings.Join(m.hits, "  ")))
	}
	return b.String()
}
