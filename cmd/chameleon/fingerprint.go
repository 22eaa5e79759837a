// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdhender/guanabana/internal/normalize"
)

func newFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <grammar-file>",
		Short: "Print the grammar's structhash fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			hash, err := ng.Fingerprint()
			if err != nil {
				return fmt.Errorf("fingerprint: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
