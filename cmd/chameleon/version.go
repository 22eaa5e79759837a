// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
)

// version is the chameleon compiler's own version, printed by a dedicated
// subcommand rather than a "-x" style flag.
var version = semver.Version{
	Minor:      1,
	PreRelease: "alpha",
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the chameleon compiler version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "chameleon %s\n", version.String())
			return nil
		},
	}
}
