package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxledger/fx"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Verify the ledger against the transaction log",
	Long: `Recompute every balance row from the full transaction log and report
rows that diverge: broken opening/closing chains, movement totals that no
longer match the log, closing balances that violate the formula.

Deposit totals set with 'deposit set' are reported as divergences; that is
expected until the next transaction re-derives them.

Examples:
  fxledger audit
  fxledger audit --currency USD`,
	RunE: runAudit,
}

var auditCurrency string

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVar(&auditCurrency, "currency", "", "restrict to one currency")
}

func runAudit(cmd *cobra.Command, args []string) error {
	var currencies []fx.Currency
	if auditCurrency != "" {
		c, err := fx.ParseCurrency(auditCurrency)
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

	issues, err := svc.Audit(currencies...)
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if len(issues) == 0 {
		fmt.Println("✓ Ledger consistent with transaction log")
		return nil
	}

	for _, issue := range issues {
		fmt.Println(issue)
	}
	return fmt.Errorf("%d inconsistencies found", len(issues))
}
