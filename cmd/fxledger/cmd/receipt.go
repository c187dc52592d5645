package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
	"github.com/rustyeddy/fxledger/ledger"
)

var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Record a customer receipt with one or more currency lines",
	Long: `Record a serial-numbered customer receipt. Each --line adds one
currency purchase; all lines are committed atomically and each affected
currency chain is recalculated.

Example:
  fxledger receipt --serial SN-0042 --day 2025-11-06 \
    --customer "A. Perera" --nic 851234567V --source "bank transfer" \
    --line USD=250.00 --line EUR=100.00`,
	RunE: runReceipt,
}

var (
	receiptSerial   string
	receiptDay      string
	receiptCustomer string
	receiptNIC      string
	receiptSource   string
	receiptRemarks  string
	receiptLines    []string
)

func init() {
	rootCmd.AddCommand(receiptCmd)

	receiptCmd.Flags().StringVar(&receiptSerial, "serial", "", "receipt serial number (required)")
	receiptCmd.Flags().StringVar(&receiptDay, "day", "", "receipt date, YYYY-MM-DD (required)")
	receiptCmd.Flags().StringVar(&receiptCustomer, "customer", "", "customer name (required)")
	receiptCmd.Flags().StringVar(&receiptNIC, "nic", "", "customer NIC or passport number (required)")
	receiptCmd.Flags().StringVar(&receiptSource, "source", "", "source of foreign currency")
	receiptCmd.Flags().StringVar(&receiptRemarks, "remarks", "", "free-form remarks")
	receiptCmd.Flags().StringArrayVar(&receiptLines, "line", nil, "currency line, CODE=AMOUNT (repeatable, required)")

	receiptCmd.MarkFlagRequired("serial")
	receiptCmd.MarkFlagRequired("day")
	receiptCmd.MarkFlagRequired("customer")
	receiptCmd.MarkFlagRequired("nic")
	receiptCmd.MarkFlagRequired("line")
}

func parseReceiptLine(s string) (ledger.ReceiptLine, error) {
	code, amt, ok := strings.Cut(s, "=")
	if !ok {
		return ledger.ReceiptLine{}, fmt.Errorf("line %q: want CODE=AMOUNT", s)
	}
	currency, err := fx.ParseCurrency(code)
	if err != nil {
		return ledger.ReceiptLine{}, err
	}
	amount, err := fx.ParseAmount(amt)
	if err != nil {
		return ledger.ReceiptLine{}, err
	}
	return ledger.ReceiptLine{Currency: currency, Amount: amount}, nil
}

func runReceipt(cmd *cobra.Command, args []string) error {
	day, err := daykey.Parse(receiptDay)
	if err != nil {
		return err
	}

	lines := make([]ledger.ReceiptLine, 0, len(receiptLines))
	for _, s := range receiptLines {
		line, err := parseReceiptLine(s)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	r := ledger.Receipt{
		SerialNumber: receiptSerial,
		Day:          day,
		CustomerName: receiptCustomer,
		NICPassport:  receiptNIC,
		Source:       receiptSource,
		Remarks:      receiptRemarks,
		Lines:        lines,
	}
	if err := svc.RecordReceipt(r); err != nil {
		return fmt.Errorf("record receipt: %w", err)
	}

	fmt.Printf("✓ Recorded receipt %s (%d lines) on %s\n", receiptSerial, len(lines), day)
	return nil
}
