package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	username  string
	password  string
	verbose   bool
	rootCmd   *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "boardctl",
		Short: "boardctl - terminal client for the opsboard task board",
		Long: `boardctl shows the action-item board as a kanban or a checklist and edits it.

Changes show up immediately and are confirmed against the server; a rejected change is rolled back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("BOARD_URL", "http://localhost:8080"), "Task API base URL")
	rootCmd.PersistentFlags().StringVar(&username, "user", envOr("BOARD_USER", "owner"), "Owner username")
	rootCmd.PersistentFlags().StringVar(&password, "password", os.Getenv("BOARD_PASSWORD"), "Owner password (login is skipped when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command
func Execute(version string) error {
	// Add subcommands here to ensure proper initialization order
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(checklistCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(uncheckCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
