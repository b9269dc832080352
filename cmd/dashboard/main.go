package main

import (
	"os"

	"github.com/midbel/barchart/cmd/dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
