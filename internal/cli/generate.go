package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/andy/smartbill/internal/service"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a bill from line items",
	Long: `Build a draft from --item flags, record it as a bill, and write the PDF.

Each --item is "name:quantity:price". Items with an empty name or a zero
quantity or price are not added.

Examples:
  smartbill generate --item "Widget:2:5.00" --item "Gadget:1:12.50"
  smartbill generate --item "Consulting:8:120" --customer "ACME Corp"
  smartbill generate --item "Widget:2:5.00" --print`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		specs, _ := cmd.Flags().GetStringArray("item")
		customer, _ := cmd.Flags().GetString("customer")
		printOnly, _ := cmd.Flags().GetBool("print")

		draft := appInstance.Draft
		for _, spec := range specs {
			name, quantity, price, err := parseItemSpec(spec)
			if err != nil {
				return err
			}
			// Invalid values are rejected silently, like the form
			draft.AddItem(name, quantity, price)
		}

		if printOnly {
			path, err := appInstance.BillingService.Print(ctx, draft, customer)
			if err != nil {
				return fmt.Errorf("failed to print draft: %w", err)
			}
			fmt.Printf("✓ Draft rendered -> %s\n", path)
			return nil
		}

		bill, path, err := appInstance.BillingService.Generate(ctx, draft, customer)

		var pdfErr *service.PDFError
		if errors.As(err, &pdfErr) {
			// The bill is recorded even though the PDF write failed
			fmt.Printf("✓ Bill %d recorded (total $%.2f)\n", bill.BillNumber, bill.TotalAmount)
			return fmt.Errorf("PDF could not be written: %w", pdfErr.Err)
		}
		if err != nil {
			return fmt.Errorf("failed to generate bill: %w", err)
		}

		fmt.Printf("✓ Bill %d generated\n", bill.BillNumber)
		fmt.Printf("  Items: %d\n", len(bill.Items))
		fmt.Printf("  Total: $%.2f\n", bill.TotalAmount)
		fmt.Printf("  PDF:   %s\n", path)
		return nil
	},
}

// parseItemSpec splits a "name:quantity:price" argument. The quantity and
// price are split off the tail so item names may contain colons.
func parseItemSpec(spec string) (string, int, float64, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 {
		return "", 0, 0, fmt.Errorf("invalid item %q: expected name:quantity:price", spec)
	}

	name := strings.Join(parts[:len(parts)-2], ":")
	quantity, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid quantity in item %q: %w", spec, err)
	}
	price, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid price in item %q: %w", spec, err)
	}

	return name, quantity, price, nil
}

func init() {
	generateCmd.Flags().StringArray("item", nil, `line item as "name:quantity:price" (repeatable)`)
	generateCmd.Flags().String("customer", "", "customer name recorded on the bill")
	generateCmd.Flags().Bool("print", false, "render the draft to PDF without recording a bill")
}
