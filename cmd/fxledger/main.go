package main

import (
	"os"

	"github.com/rustyeddy/fxledger/cmd/fxledger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
