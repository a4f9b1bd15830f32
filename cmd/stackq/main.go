package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, errNoResults) {
			color.New(color.FgRed).Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}
