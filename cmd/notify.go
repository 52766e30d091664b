// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/pr-notify/internal/config"
	"github.com/naka-gawa/pr-notify/internal/gateway"
	"github.com/naka-gawa/pr-notify/internal/notify"
	"github.com/naka-gawa/pr-notify/internal/usecase"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Posts a review-status summary for every configured repository",
	Long: `Reads the notification targets from the config file, fetches and classifies
each repository's labeled pull requests, and posts one summary message per
repository to its webhook. A failing repository is logged and skipped; the
remaining repositories are still processed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		// Pick up a local .env if present; secrets usually come from the
		// real environment in CI.
		_ = godotenv.Load()

		configPath, _ := cmd.Flags().GetString("config")
		cfg, targets, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		token, err := config.Token()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		sender := notify.NewWebhookSender(logger)
		notifier := usecase.NewNotifier(githubGateway, sender, cfg.ApprovalThreshold, logger)

		if err := notifier.RunAll(ctx, targets); err != nil {
			fmt.Fprintf(os.Stderr, "Some repositories failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.Flags().StringP("config", "c", ".github/pr-notify.yaml", "Path to the targets config file")
}
