package main

import (
	"os"

	"github.com/planetscale/runedata/go/cmd/runedatagen/command"
)

func main() {
	if err := command.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
