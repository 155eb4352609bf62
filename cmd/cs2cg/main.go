package main

import (
	"os"

	"github.com/edp1096/cs2cg/cmd/cs2cg/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
