package cmd

import (
	"github.com/sarchlab/datagen/gen/sequence"
	"github.com/spf13/cobra"
)

func newSequencesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sequences",
		Short: "List the distributions the numbers command accepts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := append(sequence.NewRegistry().Names(), predefinedName)
			return writeValues(cmd.OutOrStdout(), a.cfg.Format, names)
		},
	}
}
