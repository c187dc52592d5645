package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fxledger CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fxledger version %s\n", version)
		fmt.Println("Daily cash ledger for a foreign-currency exchange counter")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
