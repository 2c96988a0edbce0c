package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/checkhtml/internal/checks"
	"github.com/jonathan/checkhtml/internal/guard"
	"github.com/jonathan/checkhtml/internal/logger"
)

func init() {
	registerSubcommand(newValidateChecksCmd)
}

func newValidateChecksCmd(opts *checkOptions) *cobra.Command {
	var checksPath string

	cmd := &cobra.Command{
		Use:   "validate-checks",
		Short: "Validate a checks file without loading any HTML",
		Long:  "Validates that a checks file is a JSON array of strings and that every string compiles as a CSS selector.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidateChecks(cmd, opts, checksPath)
		},
	}

	cmd.Flags().StringVarP(&checksPath, "checks", "c", defaultChecksFile, "Path to checks JSON file")

	return cmd
}

func runValidateChecks(cmd *cobra.Command, opts *checkOptions, checksPath string) error {
	ctx, _, err := setup(cmd.Context(), opts)
	if err != nil {
		return err
	}

	path, err := guard.FileExists(checksPath)
	if err != nil {
		return err
	}

	list, err := checks.Load(path)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "checks file is valid")

	unique := len(list.Normalize())
	if unique != len(list) {
		fmt.Fprintf(cmd.OutOrStdout(), "Checks file is valid (%d selectors, %d duplicates)\n", unique, len(list)-unique)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Checks file is valid (%d selectors)\n", unique)
	return nil
}
