// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chameleon",
		Short:         "Compile GNF grammars into freestanding C mutate/generate/parse modules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newFingerprintCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}
