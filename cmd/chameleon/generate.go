// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mdhender/guanabana/internal/emit"
	"github.com/mdhender/guanabana/internal/grammar"
	"github.com/mdhender/guanabana/internal/normalize"
)

func newGenerateCmd() *cobra.Command {
	var (
		prefix     string
		outDir     string
		threadSafe bool
		visible    bool
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "generate <grammar-file>",
		Short: "Normalize a GNF grammar and emit its C mutate/generate/parse module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if prefix == "" {
				return fmt.Errorf("--prefix is required")
			}

			g, err := loadGrammar(args[0])
			if err != nil {
				return err
			}

			ng, diags, err := normalize.Normalize(g)
			if err != nil {
				return fmt.Errorf("normalize: %w", err)
			}
			printDiagnostics(diags)
			if hasFatal(diags) {
				return fmt.Errorf("%s: grammar has fatal errors", args[0])
			}

			res, err := emit.Emit(ng, emit.Options{
				Prefix:     prefix,
				ThreadSafe: threadSafe,
				Visible:    visible,
				Seed:       seed,
			})
			if err != nil {
				return fmt.Errorf("emit: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("mkdir %s: %w", outDir, err)
			}
			headerPath := filepath.Join(outDir, prefix+".h")
			sourcePath := filepath.Join(outDir, prefix+".c")
			if err := os.WriteFile(headerPath, []byte(res.Header), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", headerPath, err)
			}
			if err := os.WriteFile(sourcePath, []byte(res.Source), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", sourcePath, err)
			}

			printSummary(cmd, ng, headerPath, sourcePath, len(diags))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "symbol prefix for the emitted ABI (required)")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory for <prefix>.h and <prefix>.c")
	cmd.Flags().BoolVar(&threadSafe, "thread-safe", false, "emit __thread-qualified PRNG state")
	cmd.Flags().BoolVar(&visible, "visible", false, "emit default-visibility ABI symbols")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "override the default CHAMELEON_SEED constant")
	return cmd
}

func hasFatal(diags []grammar.Diagnostic) bool {
	for _, d := range diags {
		if d.Level == grammar.DiagError {
			return true
		}
	}
	return false
}

func printSummary(cmd *cobra.Command, ng *normalize.NormalizedGrammar, headerPath, sourcePath string, warnCount int) {
	data := pterm.TableData{
		{"field", "value"},
		{"non-terminals", strconv.Itoa(len(ng.NonTerms))},
		{"terminals", strconv.Itoa(len(ng.Terminals))},
		{"number sets", strconv.Itoa(len(ng.NumberSets))},
		{"step type", ng.StepType.CType()},
		{"max_num_of_rules", strconv.Itoa(ng.MaxNumOfRules)},
		{"diagnostics", strconv.Itoa(warnCount)},
		{"header", headerPath},
		{"source", sourcePath},
	}
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Println(err.Error())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
	}
	pterm.Success.Println("generate complete")
}
