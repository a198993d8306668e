package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randywick/gita/internal/display"
)

var templatesCmd = &cobra.Command{
	Use:         "templates",
	Short:       "List the available .gitignore templates",
	GroupID:     "local",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noSession: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newGitignoreService(cmd)
		if err != nil {
			return err
		}
		types, err := svc.Types(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return display.JSON(out, types)
		}
		for _, t := range types {
			fmt.Fprintln(out, t)
		}
		return nil
	},
}
