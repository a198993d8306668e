package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/google/go-github/v45/github"
	"github.com/spf13/cobra"

	"github.com/randywick/gita/internal/client"
	"github.com/randywick/gita/internal/display"
	"github.com/randywick/gita/internal/gitignore"
	"github.com/randywick/gita/internal/ui"
	"github.com/randywick/gita/internal/vcs"
)

var createCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create a repository, optionally pushing the current directory to it",
	GroupID: "repos",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		private, _ := cmd.Flags().GetBool("private")
		initLocal, _ := cmd.Flags().GetBool("init")

		resp, err := session.CreateRepository(cmd.Context(), &client.CreateRepositoryRequest{
			Name:        args[0],
			Description: description,
			Private:     private,
		})
		if err != nil {
			return fmt.Errorf("creating repository: %w", err)
		}

		out := cmd.OutOrStdout()
		if resp.StatusCode == http.StatusUnprocessableEntity {
			if jsonOutput {
				fmt.Fprintln(out, string(resp.Body))
			} else if err := display.ValidationError(out, resp.Body); err != nil {
				return err
			}
			return fmt.Errorf("repository %s was not created", args[0])
		}
		if err := resp.Err(); err != nil {
			return fmt.Errorf("creating repository: %w", err)
		}

		var repo *github.Repository
		if jsonOutput {
			repo = new(github.Repository)
			if err := json.Unmarshal(resp.Body, repo); err != nil {
				return fmt.Errorf("decoding created repository: %w", err)
			}
			if err := display.JSON(out, repo); err != nil {
				return err
			}
		} else {
			repo, err = display.Created(out, resp.Body)
			if err != nil {
				return err
			}
		}

		if !initLocal {
			return nil
		}
		if repo.GetSSHURL() == "" {
			return fmt.Errorf("created repository has no ssh url; skipping local init")
		}
		return initLocalRepo(cmd, repo.GetSSHURL())
	},
}

func initLocalRepo(cmd *cobra.Command, sshURL string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	var templates vcs.TemplateBuilder
	if ui.IsInteractive() {
		svc, err := newGitignoreService(cmd)
		if err != nil {
			return err
		}
		templates = gitignore.Builder{Service: svc, Prompter: gitignore.TerminalPrompter{}}
	} else {
		logger.Warn("not a terminal; skipping .gitignore template selection")
	}

	runner := &vcs.ExecRunner{Dir: dir, Logger: logger}
	b := vcs.NewBootstrapper(runner, templates, dir, cfg.DefaultBranch, logger, cmd.OutOrStdout())
	if err := b.Init(cmd.Context(), sshURL); err != nil {
		return fmt.Errorf("initializing local repository: %w", err)
	}
	return nil
}

func init() {
	createCmd.Flags().StringP("description", "d", "", "repository description")
	createCmd.Flags().Bool("private", false, "create a private repository")
	createCmd.Flags().Bool("init", false, "initialize git in the current directory and push it to the new repository")
}
