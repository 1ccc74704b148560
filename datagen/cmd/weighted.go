package cmd

import (
	"github.com/sarchlab/datagen/gen/sequence"
	"github.com/spf13/cobra"
)

func newWeightedCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weighted SPEC",
		Short: "Sample numbers from a weight table such as \"0^0,1^3,2^2,3^1\".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.v.GetString("name")

			if a.v.GetBool("float") {
				g, err := sequence.WeightedNumbers[float64](name, args[0])
				if err != nil {
					return err
				}

				return emit[float64](cmd, a, g)
			}

			g, err := sequence.WeightedNumbers[int64](name, args[0])
			if err != nil {
				return err
			}

			return emit[int64](cmd, a, g)
		},
	}

	cmd.Flags().String("name", "Weighted", "name of the generator")
	cmd.Flags().Bool("float", false, "parse and emit floating point numbers")

	return cmd
}
