package cmd

import (
	"github.com/sarchlab/datagen/gen/sample"
	"github.com/spf13/cobra"
)

func newUUIDCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uuid",
		Short: "Emit random UUIDs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := sample.NewUUID(a.v.GetString("name"))
			if err != nil {
				return err
			}

			return emit[string](cmd, a, g)
		},
	}

	cmd.Flags().String("name", "UUID", "name of the generator")

	return cmd
}
