package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randywick/gita/internal/display"
	"github.com/randywick/gita/internal/ui"
)

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the authenticated user",
	GroupID: "repos",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session.AwaitReady(cmd.Context())
		if err != nil {
			return err
		}
		user := s.User()

		out := cmd.OutOrStdout()
		if jsonOutput {
			return display.JSON(out, user)
		}
		fmt.Fprintf(out, "%s %s\n", ui.RenderBold(user.GetLogin()), ui.RenderDim(fmt.Sprintf("(id %d)", user.GetID())))
		if name := user.GetName(); name != "" {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}
