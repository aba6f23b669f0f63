package cli

import (
	"context"
	"fmt"

	"github.com/andy/smartbill/internal/service"
	"github.com/spf13/cobra"
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Browse and manage the bill history",
	Long:  `List, inspect, delete, and re-render past bills.`,
}

var billsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bills with optional search, date filter and sort",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		search, _ := cmd.Flags().GetString("search")
		dateRange, _ := cmd.Flags().GetString("range")
		sortBy, _ := cmd.Flags().GetString("sort")
		order, _ := cmd.Flags().GetString("order")

		filter := service.HistoryFilter{
			SearchTerm: search,
			DateRange:  service.DateRange(dateRange),
			SortBy:     service.SortKey(sortBy),
			Order:      service.SortOrder(order),
		}

		bills, err := appInstance.HistoryService.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list bills: %w", err)
		}

		if len(bills) == 0 {
			fmt.Println("No bills found")
			return nil
		}

		// Print table header
		fmt.Printf("%-8s %-12s %-22s %-6s %-12s\n", "Number", "Date", "Customer", "Items", "Total")
		fmt.Println("-----------------------------------------------------------------")

		for _, bill := range bills {
			customer := bill.CustomerName
			if customer == "" {
				customer = "-"
			}
			fmt.Printf("%-8d %-12s %-22s %-6d $%-11.2f\n",
				bill.BillNumber,
				bill.Date.Format("2006-01-02"),
				truncate(customer, 22),
				len(bill.Items),
				bill.TotalAmount,
			)
		}

		fmt.Printf("\nTotal: %d bill(s)\n", len(bills))
		return nil
	},
}

var billsShowCmd = &cobra.Command{
	Use:   "show [number_or_id]",
	Short: "Show bill details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bill, err := appInstance.BillingService.FindBill(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Bill #%d\n", bill.BillNumber)
		fmt.Printf("  Date:     %s\n", bill.Date.Format("2006-01-02 15:04"))
		if bill.CustomerName != "" {
			fmt.Printf("  Customer: %s\n", bill.CustomerName)
		}
		fmt.Println()
		fmt.Printf("  %-24s %6s %10s %10s\n", "Item", "Qty", "Price", "Total")
		for _, item := range bill.Items {
			fmt.Printf("  %-24s %6d %10.2f %10.2f\n",
				truncate(item.ItemName, 24), item.Quantity, item.Price, item.Total)
		}
		fmt.Println()
		fmt.Printf("  Total: $%.2f\n", bill.TotalAmount)
		return nil
	},
}

var billsDeleteCmd = &cobra.Command{
	Use:   "delete [number_or_id]",
	Short: "Delete a bill from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bill, err := appInstance.BillingService.FindBill(ctx, args[0])
		if err != nil {
			return err
		}

		skipConfirm, _ := cmd.Flags().GetBool("yes")
		if !skipConfirm {
			prompt := fmt.Sprintf("Are you sure you want to delete bill %d ($%.2f)?",
				bill.BillNumber, bill.TotalAmount)
			if !confirmPrompt(prompt) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		deleted, err := appInstance.BillingService.DeleteBill(ctx, bill.ID, nil)
		if err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}
		if !deleted {
			fmt.Println("Nothing deleted.")
			return nil
		}

		fmt.Printf("✓ Bill %d deleted\n", bill.BillNumber)
		return nil
	},
}

var billsPDFCmd = &cobra.Command{
	Use:   "pdf [number_or_id]",
	Short: "Render a past bill to PDF again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bill, err := appInstance.BillingService.FindBill(ctx, args[0])
		if err != nil {
			return err
		}

		path, err := appInstance.BillingService.RegeneratePDF(ctx, bill.ID)
		if err != nil {
			return fmt.Errorf("failed to render PDF: %w", err)
		}

		fmt.Printf("✓ Bill %d rendered -> %s\n", bill.BillNumber, path)
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func init() {
	billsListCmd.Flags().String("search", "", "match item names, bill numbers, or customer names")
	billsListCmd.Flags().String("range", "all", "date filter: all, today, week, month")
	billsListCmd.Flags().String("sort", "date", "sort key: date, amount, items")
	billsListCmd.Flags().String("order", "desc", "sort order: asc, desc")

	billsDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	billsCmd.AddCommand(billsListCmd)
	billsCmd.AddCommand(billsShowCmd)
	billsCmd.AddCommand(billsDeleteCmd)
	billsCmd.AddCommand(billsPDFCmd)
}
