package cli

import (
	"context"
	"fmt"

	"github.com/andy/smartbill/internal/domain"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change user preferences",
	Long: `View and change the persisted settings record.

Examples:
  smartbill settings show
  smartbill settings set companyName "ACME Corp"
  smartbill settings set autoSave false
  smartbill settings reset`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		settings, err := appInstance.SettingsService.Get(ctx)
		if err != nil {
			return err
		}

		for _, name := range domain.SettingsFieldNames {
			value, _ := settings.Field(name)
			if value == "" {
				value = "-"
			}
			fmt.Printf("%-20s %s\n", name, value)
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [field] [value]",
	Short: "Set one settings field",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		saved, err := appInstance.SettingsService.UpdateField(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		if !saved {
			// Auto-save is off; persist explicitly so the CLI edit sticks
			if err := appInstance.SettingsService.Save(ctx); err != nil {
				return err
			}
		}

		fmt.Printf("✓ %s updated\n", args[0])
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if !confirmPrompt("This will restore all settings to their defaults. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if _, err := appInstance.SettingsService.Reset(ctx); err != nil {
			return err
		}

		fmt.Println("✓ Settings reset to defaults")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}
