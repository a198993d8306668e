package gitignore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/randywick/gita/internal/ui"
)

// ErrPromptAborted is returned by a Prompter when the user cancels.
var ErrPromptAborted = errors.New("prompt aborted")

const listWidth = 65

// PromptMessage is shown above the input line.
const PromptMessage = "Enter a type or blank if done. Press <tab> to complete. Enter `list` to display the list."

// Prompter reads one line of input. types feeds tab completion.
type Prompter interface {
	Prompt(ctx context.Context, message string, types []string) (string, error)
}

// Choose asks the user for a template name until they enter a valid one or
// a blank line. "list" prints the available types again. It returns "" when
// the user skips.
func (s *Service) Choose(ctx context.Context, p Prompter) (string, error) {
	types, err := s.Types(ctx)
	if err != nil {
		return "", err
	}

	showList := true
	for {
		if showList {
			s.printTypes(types)
		}

		input, err := p.Prompt(ctx, ui.RenderPrompt(PromptMessage), types)
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)

		if strings.EqualFold(input, "list") {
			showList = true
			continue
		}
		if input == "" {
			return "", nil
		}
		if t, ok := Match(types, input); ok {
			return t, nil
		}

		fmt.Fprintln(s.out, ui.RenderError(input+" is not a valid type"))
		fmt.Fprintln(s.out)
		showList = false
	}
}

func (s *Service) printTypes(types []string) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, ui.RenderTitle("Available gitignore types"))
	for _, line := range wrap(types, listWidth) {
		fmt.Fprintln(s.out, line)
	}
	fmt.Fprintln(s.out)
}

// Build lets the user choose a template and writes it to path. Skipping
// writes nothing.
func (s *Service) Build(ctx context.Context, path string, p Prompter) error {
	name, err := s.Choose(ctx, p)
	if err != nil {
		return err
	}
	if name == "" {
		s.logger.Debug("no gitignore template chosen")
		return nil
	}
	if err := s.Write(ctx, name, path); err != nil {
		fmt.Fprintln(s.out, ui.RenderError("Error writing gitignore"))
		return err
	}
	fmt.Fprintln(s.out, ui.RenderSuccess("Created .gitignore for"), ui.RenderBold(name))
	fmt.Fprintln(s.out)
	return nil
}

// Builder binds a Service to a Prompter so it can build templates without
// further arguments.
type Builder struct {
	Service  *Service
	Prompter Prompter
}

// Build implements vcs.TemplateBuilder.
func (b Builder) Build(ctx context.Context, path string) error {
	return b.Service.Build(ctx, path, b.Prompter)
}
