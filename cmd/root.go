package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command; subcommands register themselves in init.
var rootCmd = &cobra.Command{
	Use:   "library-backend",
	Short: "Library management REST backend",
	Long: `Library management REST backend: authentication (local + Google OAuth),
role-based authorization, and CRUD plus lending workflow for books and
authors, persisted to MongoDB.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
