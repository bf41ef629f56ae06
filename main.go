package main

import (
	"os"

	"github.com/sheikhrachel/sparse-gol/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
