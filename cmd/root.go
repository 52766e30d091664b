// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pr-notify",
	Short: "A CLI tool to notify a chat channel about pull requests awaiting review.",
	Long: `pr-notify polls the GitHub API for the open pull requests of a configured
set of repositories, keeps the non-draft ones carrying a target label, splits
them into awaiting-review and review-complete by counting approving reviewers,
and posts the summary to a Slack-compatible incoming webhook.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
