// Package vcs initializes local version control for a newly created remote
// repository.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner runs an external command. It returns nil iff the command exited
// with status 0.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands as child processes in Dir.
type ExecRunner struct {
	Dir    string // working directory; empty means the current one
	Logger *slog.Logger
}

// Run starts the command, waits for it and logs its output at debug level.
// A spawn failure and a non-zero exit are both errors; the message carries
// the command's trimmed output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	log := r.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With("cmd", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("spawning external process", "dir", r.Dir)
	err := cmd.Run()
	if s := strings.TrimSpace(stdout.String()); s != "" {
		log.Debug("child stdout", "output", s)
	}
	if s := strings.TrimSpace(stderr.String()); s != "" {
		log.Debug("child stderr", "output", s)
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		log.Debug("child process closed", "code", 0)
		return nil
	case errors.As(err, &exitErr):
		log.Debug("child process closed", "code", exitErr.ExitCode())
	default:
		log.Debug("child process encountered an error", "err", err)
	}

	output := strings.TrimSpace(stderr.String())
	if output == "" {
		output = strings.TrimSpace(stdout.String())
	}
	command := strings.TrimSpace(name + " " + strings.Join(args, " "))
	if output != "" {
		return fmt.Errorf("%s: %w: %s", command, err, output)
	}
	return fmt.Errorf("%s: %w", command, err)
}
