package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
)

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Record and inspect custodian deposits",
	Long: `Manage custodian deposits. Deposits reduce a day's closing balance.

Subcommands:
  add   - Record a deposit for a currency and day
  list  - List the deposit entries for a currency and day
  set   - Override a day's deposits total (manual correction)

Examples:
  fxledger deposit add USD 2025-11-06 500.00
  fxledger deposit list USD 2025-11-06
  fxledger deposit set USD 2025-11-06 450.00`,
}

var depositAddCmd = &cobra.Command{
	Use:   "add <currency> <day> <amount>",
	Short: "Record a deposit",
	Args:  cobra.ExactArgs(3),
	RunE:  runDepositAdd,
}

var depositListCmd = &cobra.Command{
	Use:   "list <currency> <day>",
	Short: "List deposit entries for a day",
	Args:  cobra.ExactArgs(2),
	RunE:  runDepositList,
}

var depositSetCmd = &cobra.Command{
	Use:   "set <currency> <day> <total>",
	Short: "Override a day's deposits total",
	Long: `Set the deposits total for a day directly, bypassing the recorded
deposit entries. The day's closing and every later day are recalculated.
The override stands until the next transaction for that day re-derives the
total from the log.`,
	Args: cobra.ExactArgs(3),
	RunE: runDepositSet,
}

func init() {
	rootCmd.AddCommand(depositCmd)
	depositCmd.AddCommand(depositAddCmd)
	depositCmd.AddCommand(depositListCmd)
	depositCmd.AddCommand(depositSetCmd)
}

func parseCurrencyDay(args []string) (fx.Currency, daykey.Day, error) {
	currency, err := fx.ParseCurrency(args[0])
	if err != nil {
		return "", daykey.Day{}, err
	}
	day, err := daykey.Parse(args[1])
	if err != nil {
		return "", daykey.Day{}, err
	}
	return currency, day, nil
}

func runDepositAdd(cmd *cobra.Command, args []string) error {
	currency, day, err := parseCurrencyDay(args)
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

	if err := svc.RecordDeposit(currency, day, amount); err != nil {
		return fmt.Errorf("record deposit: %w", err)
	}

	fmt.Printf("✓ Recorded deposit: %s %s on %s\n", amount.StringFixed(2), currency, day)
	return nil
}

func runDepositList(cmd *cobra.Command, args []string) error {
	currency, day, err := parseCurrencyDay(args)
	if err != nil {
		return err
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := svc.ListDeposits(currency, day)
	if err != nil {
		return fmt.Errorf("list deposits: %w", err)
	}
	if len(entries) == 0 {
		fmt.Printf("No deposits for %s on %s\n", currency, day)
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %s %s  (recorded %s)\n",
			e.ID, e.Amount.StringFixed(2), e.Currency,
			e.RecordedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runDepositSet(cmd *cobra.Command, args []string) error {
	currency, day, err := parseCurrencyDay(args)
	if err != nil {
		return err
	}
	total, err := fx.ParseAmount(args[2])
	if err != nil {
		return err
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.SetDepositOverride(currency, day, total); err != nil {
		return fmt.Errorf("set deposits: %w", err)
	}

	fmt.Printf("✓ Deposits for %s on %s set to %s\n", currency, day, total.StringFixed(2))
	return nil
}
