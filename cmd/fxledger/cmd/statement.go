package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
	"github.com/rustyeddy/fxledger/ledger"
)

var statementCmd = &cobra.Command{
	Use:   "statement <from> <to>",
	Short: "Balance statement over a date range",
	Long: `Print the per-currency balance statement for [from, to] inclusive.

Every supported currency is computed; rows with no balance and no movement
are hidden unless --all is given.

Examples:
  fxledger statement 2025-11-01 2025-11-30
  fxledger statement 2025-11-01 2025-11-30 --currency USD
  fxledger statement 2025-11-01 2025-11-30 --all`,
	Args: cobra.ExactArgs(2),
	RunE: runStatement,
}

var (
	statementCurrency string
	statementAll      bool
)

func init() {
	rootCmd.AddCommand(statementCmd)

	statementCmd.Flags().StringVar(&statementCurrency, "currency", "", "restrict to one currency")
	statementCmd.Flags().BoolVar(&statementAll, "all", false, "include all-zero rows")
}

func runStatement(cmd *cobra.Command, args []string) error {
	from, err := daykey.Parse(args[0])
	if err != nil {
		return err
	}
	to, err := daykey.Parse(args[1])
	if err != nil {
		return err
	}

	var currencies []fx.Currency
	if statementCurrency != "" {
		c, err := fx.ParseCurrency(statementCurrency)
		if err != nil {
			return err
		}
		currencies = []fx.Currency{c}
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	rows, err := svc.GetStatement(from, to, currencies...)
	if err != nil {
		return fmt.Errorf("statement: %w", err)
	}

	fmt.Printf("Balance statement %s .. %s\n\n", from, to)
	printStatement(rows, statementAll)
	return nil
}

func printStatement(rows []ledger.StatementRow, includeZero bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Currency\tOpening\tPurchases\tExch Buy\tExch Sell\tSales\tDeposits\tClosing\t")

	shown := 0
	for _, r := range rows {
		if r.IsZero() && !includeZero {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Currency,
			r.Opening.StringFixed(2),
			r.Purchases.StringFixed(2),
			r.ExchangeBuy.StringFixed(2),
			r.ExchangeSell.StringFixed(2),
			r.Sales.StringFixed(2),
			r.Deposits.StringFixed(2),
			r.Closing.StringFixed(2),
		)
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Println("(no activity in range)")
	}
}
