package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
)

var purchaseCmd = &cobra.Command{
	Use:   "purchase <currency> <day> <amount>",
	Short: "Record a customer currency purchase",
	Long: `Record a single purchase of foreign currency from a customer.

The affected day and every later day with a balance row are recalculated.
Multi-currency receipts with customer details are recorded with the
receipt command instead.

Example:
  fxledger purchase USD 2025-11-06 250.00`,
	Args: cobra.ExactArgs(3),
	RunE: runPurchase,
}

func init() {
	rootCmd.AddCommand(purchaseCmd)
}

func runPurchase(cmd *cobra.Command, args []string) error {
	currency, err := fx.ParseCurrency(args[0])
	if err != nil {
		return err
	}
	day, err := daykey.Parse(args[1])
	if err != nil {
		return err
	}
	amount, err := fx.ParseAmount(args[2])
	if err != nil {
		return err
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.RecordPurchase(currency, day, amount); err != nil {
		return fmt.Errorf("record purchase: %w", err)
	}

	fmt.Printf("✓ Recorded purchase: %s %s on %s\n", amount.StringFixed(2), currency, day)
	return nil
}
