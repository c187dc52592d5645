package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxledger/ledger"
)

var dayCmd = &cobra.Command{
	Use:   "day <currency> <day>",
	Short: "Show the balance row for one currency and day",
	Long: `Print the stored daily balance for (currency, day).

Example:
  fxledger day USD 2025-11-06`,
	Args: cobra.ExactArgs(2),
	RunE: runDay,
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	currency, day, err := parseCurrencyDay(args)
	if err != nil {
		return err
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	b, err := svc.GetDay(currency, day)
	if errors.Is(err, ledger.ErrNotFound) {
		fmt.Printf("No balance row for %s on %s\n", currency, day)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get day: %w", err)
	}

	fmt.Printf("%s %s\n", b.Currency, b.Day)
	fmt.Printf("  Opening:   %s\n", b.Opening.StringFixed(2))
	fmt.Printf("  Purchases: %s\n", b.Purchases.StringFixed(2))
	fmt.Printf("  Exch Buy:  %s\n", b.ExchangeBuy.StringFixed(2))
	fmt.Printf("  Exch Sell: %s\n", b.ExchangeSell.StringFixed(2))
	fmt.Printf("  Sales:     %s\n", b.Sales.StringFixed(2))
	fmt.Printf("  Deposits:  %s\n", b.Deposits.StringFixed(2))
	fmt.Printf("  Closing:   %s\n", b.Closing.StringFixed(2))
	return nil
}
