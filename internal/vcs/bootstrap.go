package vcs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/randywick/gita/internal/ui"
)

// TemplateBuilder creates a .gitignore at path, possibly interactively.
// Declining to pick a template is not an error.
type TemplateBuilder interface {
	Build(ctx context.Context, path string) error
}

// Bootstrapper turns a directory into a git repository pushed to a newly
// created remote.
type Bootstrapper struct {
	runner    Runner
	templates TemplateBuilder // nil skips the .gitignore step
	dir       string
	branch    string
	logger    *slog.Logger
	out       io.Writer
}

// NewBootstrapper creates a bootstrapper for dir that pushes to branch.
func NewBootstrapper(runner Runner, templates TemplateBuilder, dir, branch string, logger *slog.Logger, out io.Writer) *Bootstrapper {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if out == nil {
		out = io.Discard
	}
	return &Bootstrapper{
		runner:    runner,
		templates: templates,
		dir:       dir,
		branch:    branch,
		logger:    logger,
		out:       out,
	}
}

// Steps returns the git invocations Init runs after the .gitignore check,
// in order.
func (b *Bootstrapper) Steps(sshURL string) [][]string {
	return [][]string{
		{"init"},
		{"add", "--all"},
		{"remote", "add", "origin", sshURL},
		{"commit", "-am", "initial commit"},
		{"branch", "-M", b.branch},
		{"push", "-u", "origin", b.branch},
	}
}

// Init ensures a .gitignore exists, then initializes the repository, commits
// everything and pushes it to sshURL. The first failing step stops the
// chain and its error is returned.
func (b *Bootstrapper) Init(ctx context.Context, sshURL string) error {
	if err := b.ensureGitignore(ctx); err != nil {
		return err
	}

	for _, args := range b.Steps(sshURL) {
		b.logger.Debug("git step", "args", args)
		if err := b.runner.Run(ctx, "git", args...); err != nil {
			b.logger.Error("error initializing vcs", "step", args[0], "err", err)
			return fmt.Errorf("git %s: %w", args[0], err)
		}
	}

	fmt.Fprintln(b.out, ui.RenderSuccess("Initialized version control on directory and pushed initial state!"))
	return nil
}

func (b *Bootstrapper) ensureGitignore(ctx context.Context) error {
	path := filepath.Join(b.dir, ".gitignore")
	exists, err := FileExists(path)
	if err != nil {
		return fmt.Errorf("checking .gitignore: %w", err)
	}
	if exists || b.templates == nil {
		return nil
	}
	if err := b.templates.Build(ctx, path); err != nil {
		return fmt.Errorf("building .gitignore: %w", err)
	}
	return nil
}
