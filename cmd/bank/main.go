// Package main is the entry point for the bank CLI.
package main

import (
	"os"

	"github.com/JoeShih716/go-mem-bank/cmd/bank/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
