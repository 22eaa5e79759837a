// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/mdhender/guanabana/internal/gnfsrc"
	"github.com/mdhender/guanabana/internal/grammar"
)

// loadGrammar reads a GNF source file through the CLI's convenience reader
// (internal/gnfsrc) into a *grammar.Grammar, printing any diagnostics it
// collects along the way. It returns an error only for I/O failures or
// fatal (error-level) diagnostics; warnings are printed but non-fatal.
func loadGrammar(path string) (*grammar.Grammar, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	b := grammar.NewBuilder(path)
	sink := grammar.NewBuilderSink(b)
	if err := gnfsrc.Read(path, src, sink); err != nil {
		printDiagnostics(b.Diagnostics())
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	g := b.Finalize()
	printDiagnostics(b.Diagnostics())
	if b.HasErrors() {
		return nil, fmt.Errorf("%s: grammar has fatal errors", path)
	}
	return g, nil
}

func printDiagnostics(diags []grammar.Diagnostic) {
	for _, d := range diags {
		switch d.Level {
		case grammar.DiagError:
			pterm.Error.Println(d.Error())
		case grammar.DiagWarn:
			pterm.Warning.Println(d.Error())
		default:
			pterm.Info.Println(d.Error())
		}
	}
}
