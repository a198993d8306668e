package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randywick/gita/internal/display"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List repositories you own and repositories shared with you",
	GroupID: "repos",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mine, _ := cmd.Flags().GetBool("mine")
		others, _ := cmd.Flags().GetBool("others")

		listing, err := session.GetRepositories(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing repositories: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			switch {
			case mine:
				return display.JSON(out, listing.Mine)
			case others:
				return display.JSON(out, listing.Others)
			}
			return display.JSON(out, listing)
		}

		if !others {
			display.Repos(out, "My Repositories", listing.Mine)
		}
		if !mine {
			display.Repos(out, "Other Repositories", listing.Others)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("mine", false, "only repositories you own")
	listCmd.Flags().Bool("others", false, "only repositories owned by someone else")
	listCmd.MarkFlagsMutuallyExclusive("mine", "others")
}
