package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/randywick/gita/internal/gitignore"
	"github.com/randywick/gita/internal/ui"
	"github.com/randywick/gita/internal/vcs"
)

var gitignoreCmd = &cobra.Command{
	Use:         "gitignore",
	Short:       "Write a .gitignore from a template",
	GroupID:     "local",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noSession: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("type")
		force, _ := cmd.Flags().GetBool("force")

		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		path := filepath.Join(dir, ".gitignore")
		exists, err := vcs.FileExists(path)
		if err != nil {
			return err
		}
		if exists && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		svc, err := newGitignoreService(cmd)
		if err != nil {
			return err
		}

		if name == "" {
			if !ui.IsInteractive() {
				return fmt.Errorf("no template given and not a terminal; pass --type")
			}
			return svc.Build(cmd.Context(), path, gitignore.TerminalPrompter{})
		}

		types, err := svc.Types(cmd.Context())
		if err != nil {
			return err
		}
		matched, ok := gitignore.Match(types, name)
		if !ok {
			return fmt.Errorf("%s: %w", name, gitignore.ErrTemplateNotFound)
		}
		if err := svc.Write(cmd.Context(), matched, path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSuccess("Created .gitignore for"), ui.RenderBold(matched))
		return nil
	},
}

func init() {
	gitignoreCmd.Flags().StringP("type", "t", "", "template name; prompts when empty")
	gitignoreCmd.Flags().BoolP("force", "f", false, "overwrite an existing .gitignore")
}
