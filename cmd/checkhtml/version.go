package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	registerSubcommand(newVersionCmd)
}

func newVersionCmd(_ *checkOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of checkhtml",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "checkhtml version %s\n", version)
		},
	}
}
