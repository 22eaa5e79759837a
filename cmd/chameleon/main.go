// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Command chameleon compiles a Greibach-normal-form grammar source file into
// a freestanding C module implementing the mutate/generate/parse ABI.
package main

import (
	"os"

	"github.com/pterm/pterm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
