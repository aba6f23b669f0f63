package cli

import (
	"github.com/andy/smartbill/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "smartbill",
	Short: "A local billing and invoicing tool",
	Long: `Smartbill keeps a local, encrypted history of generated bills and
renders them as PDF invoices.

By default, running smartbill without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: launch TUI
		launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(billsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
