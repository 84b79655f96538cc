package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gatehousectl",
	Short: "Gatehouse admin console",
	Long: `gatehousectl manages the Gatehouse admin console: run the server,
apply database migrations, manage accounts and load access policies.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
