package cli

import (
	"fmt"
	"os"

	"github.com/andy/smartbill/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal UI",
	Long:  `Launch the interactive terminal user interface for smartbill.`,
	Run:   launchTUI,
}

func launchTUI(cmd *cobra.Command, args []string) {
	if err := tui.Run(appInstance); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}
