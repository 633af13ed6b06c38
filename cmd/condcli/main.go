package main

import (
	"os"

	"crypto-conditions/cmd/condcli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
