package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/randywick/gita/internal/client"
	"github.com/randywick/gita/internal/config"
	"github.com/randywick/gita/internal/gitignore"
	"github.com/randywick/gita/internal/logging"
	"github.com/randywick/gita/internal/ui"
)

// noSession marks commands that never talk to the authenticated API, so
// PersistentPreRunE does not start a profile fetch for them.
const noSession = "gita/no-session"

var (
	configPath string
	jsonOutput bool
	logLevel   string
	noColor    bool
	timeout    time.Duration

	cfg     *config.Config
	logger  *slog.Logger
	session *client.Session
	cancel  context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:           "gita <command>",
	Short:         "Create and list GitHub repositories from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.ConfigureColor(noColor)

		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if logLevel != "" {
			c.LogLevel = logLevel
		}
		l, err := logging.New(c.LogLevel, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg, logger = c, l

		if timeout > 0 {
			ctx, cancelFn := context.WithTimeout(cmd.Context(), timeout)
			cmd.SetContext(ctx)
			cancel = cancelFn
		}

		if cmd.Annotations[noSession] == "" {
			session = client.NewSession(cmd.Context(), client.Options{
				BaseURL:   cfg.APIURL,
				Token:     cfg.Token,
				UserAgent: cfg.UserAgent,
				Logger:    logger,
			})
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cancel != nil {
			cancel()
			cancel = nil
		}
	},
}

func newGitignoreService(cmd *cobra.Command) (*gitignore.Service, error) {
	return gitignore.NewService(cmd.Context(), gitignore.Options{
		BaseURL:   cfg.APIURL,
		Token:     cfg.Token,
		UserAgent: cfg.UserAgent,
		Logger:    logger,
		Out:       cmd.OutOrStdout(),
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: error, warn, info, verbose, debug, silly (default $LOG_LEVEL or info)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "abort after this long (0 waits indefinitely)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "repos", Title: "Repositories:"},
		&cobra.Group{ID: "local", Title: "Local:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Repositories
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(whoamiCmd)

	// Local
	rootCmd.AddCommand(gitignoreCmd)
	rootCmd.AddCommand(templatesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderError("Error:"), err)
		stop()
		os.Exit(1)
	}
}
