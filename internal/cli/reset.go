package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset data in the store",
	Long: `Reset data in the store.

Examples:
  smartbill reset bills    # Delete the whole bill history
  smartbill reset all      # Wipe everything: bills and settings`,
}

var resetBillsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Delete the whole bill history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL recorded bills. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		ctx := context.Background()
		if err := appInstance.BillRepo.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear bills: %w", err)
		}

		fmt.Println("All bills have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: bills and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL data (bills and settings). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		ctx := context.Background()
		if err := appInstance.BillRepo.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear bills: %w", err)
		}
		if _, err := appInstance.SettingsService.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetBillsCmd)
	resetCmd.AddCommand(resetAllCmd)
}
